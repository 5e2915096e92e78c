package interfaces

import (
	"context"
	"fmt"
	"time"
)

// RawSheet is a sheet document as returned by the sheet source, decoded to
// UTF-8.
type RawSheet struct {
	YtsheetID string
	Body      []byte
	FetchedAt time.Time
}

// FetchError reports a response the sheet source should not have sent.
type FetchError struct {
	YtsheetID   string
	Reason      string
	StatusCode  int
	ContentType string
	Body        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("ytsheet %s: %s (status=%d, content-type=%q)", e.YtsheetID, e.Reason, e.StatusCode, e.ContentType)
}

// SheetSource fetches character sheet documents.
type SheetSource interface {
	// FetchSheet returns the JSON document of a sheet. Unexpected responses
	// are reported as *FetchError.
	FetchSheet(ctx context.Context, ytsheetID string) (*RawSheet, error)
}
