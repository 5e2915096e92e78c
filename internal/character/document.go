package character

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidDocument is returned when a sheet body is not a JSON object.
	ErrInvalidDocument = errors.New("sheet document is not a JSON object")
	// ErrUnsupportedValue is returned when a field holds a nested object or array.
	ErrUnsupportedValue = errors.New("unsupported sheet value")
)

// Document is one character sheet as flat key/value text.
type Document map[string]string

// DecodeDocument converts a raw sheet body into a Document. Scalars become
// their text form, nulls are dropped, nested values are rejected.
func DecodeDocument(raw []byte) (Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidDocument
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, ErrInvalidDocument
	}

	doc := make(Document)
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			doc[key.String()] = value.Str
		case gjson.Number:
			doc[key.String()] = value.Raw
		case gjson.True, gjson.False:
			doc[key.String()] = value.String()
		case gjson.Null:
		default:
			decodeErr = fmt.Errorf("%w: %s", ErrUnsupportedValue, key.String())
			return false
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return doc, nil
}

// String returns the field or def when the key is absent.
func (d Document) String(key, def string) string {
	if v, ok := d[key]; ok {
		return v
	}
	return def
}

// Int returns the field as an integer. Missing or non-numeric fields are 0.
func (d Document) Int(key string) int {
	v, ok := d[key]
	if !ok {
		return 0
	}
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}
