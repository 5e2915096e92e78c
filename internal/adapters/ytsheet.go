package adapters

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/japanese"

	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
)

const (
	// maxSheetBytes bounds a single sheet response.
	maxSheetBytes = 8 << 20

	reasonStatusCode  = "ステータスコードエラー"
	reasonContentType = "JSON形式ではありません"
	reasonTooLarge    = "サイズ上限超過"
)

// YtsheetClient fetches character sheets in JSON mode.
type YtsheetClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

var _ interfaces.SheetSource = (*YtsheetClient)(nil)

func NewYtsheetClient(cfg config.YtsheetConfig) *YtsheetClient {
	return &YtsheetClient{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// SheetJSONURL returns the JSON endpoint of a sheet.
func SheetJSONURL(baseURL, ytsheetID string) string {
	return fmt.Sprintf("%s?id=%s&mode=json", baseURL, url.QueryEscape(ytsheetID))
}

// FetchSheet downloads one sheet. The body is converted to UTF-8 before it
// is returned.
func (c *YtsheetClient) FetchSheet(ctx context.Context, ytsheetID string) (*interfaces.RawSheet, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", SheetJSONURL(c.baseURL, ytsheetID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ytsheet %s: %w", ytsheetID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read ytsheet %s: %w", ytsheetID, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK {
		return nil, &interfaces.FetchError{
			YtsheetID:   ytsheetID,
			Reason:      reasonStatusCode,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
		}
	}

	if len(raw) > maxSheetBytes {
		return nil, &interfaces.FetchError{
			YtsheetID:   ytsheetID,
			Reason:      reasonTooLarge,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
		}
	}

	body, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ytsheet %s: %w", ytsheetID, err)
	}

	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType != "application/json" {
		return nil, &interfaces.FetchError{
			YtsheetID:   ytsheetID,
			Reason:      reasonContentType,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        string(body),
		}
	}

	return &interfaces.RawSheet{
		YtsheetID: ytsheetID,
		Body:      body,
		FetchedAt: time.Now(),
	}, nil
}

// decodeBody converts a response to UTF-8. A declared charset wins; an
// undeclared body that is not valid UTF-8 is read as Shift_JIS.
func decodeBody(raw []byte, contentType string) ([]byte, error) {
	enc, _, certain := charset.DetermineEncoding(raw, contentType)
	if certain {
		return enc.NewDecoder().Bytes(raw)
	}
	if utf8.Valid(raw) {
		return raw, nil
	}
	return japanese.ShiftJIS.NewDecoder().Bytes(raw)
}
