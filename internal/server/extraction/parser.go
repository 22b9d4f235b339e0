package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"

	// PreviewRunes bounds how much model output an error message may quote.
	PreviewRunes = 120
)

// ParseError reports model output that is not a usable record. It matches
// common.ErrParse with errors.Is.
type ParseError struct {
	Length  int
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model output (%d bytes, starts %q): %v", e.Length, e.Preview, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{common.ErrParse, e.Err}
}

// Preview returns at most PreviewRunes runes of s, marking truncation.
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= PreviewRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:PreviewRunes]) + "…"
}

// payload picks the JSON text out of raw. With a ```json fence present only
// the first fenced segment counts, running to the end of raw when the fence
// is never closed; otherwise the whole trimmed text is used.
func payload(raw string) string {
	start := strings.Index(raw, fenceOpen)
	if start < 0 {
		return strings.TrimSpace(raw)
	}

	rest := raw[start+len(fenceOpen):]
	if end := strings.Index(rest, fenceClose); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// ParseRecord decodes the model's raw answer into an ExtractedRecord.
// Missing or null fields stay nil. name and description must be strings;
// price may be a string or a number. Any other type, such as {"name":5},
// fails with a *ParseError instead of being passed through.
func ParseRecord(raw string) (*models.ExtractedRecord, error) {
	fail := func(err error) (*models.ExtractedRecord, error) {
		return nil, &ParseError{Length: len(raw), Preview: Preview(raw), Err: err}
	}

	text := payload(raw)
	if !strings.HasPrefix(text, "{") {
		return fail(errors.New("not a JSON object"))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return fail(err)
	}

	rec := &models.ExtractedRecord{}
	var err error

	if rec.Name, err = optionalString(fields["name"]); err != nil {
		return fail(fmt.Errorf("name: %w", err))
	}
	if rec.Description, err = optionalString(fields["description"]); err != nil {
		return fail(fmt.Errorf("description: %w", err))
	}
	if v, ok := fields["price"]; ok && !isNull(v) {
		var p models.Price
		if err := json.Unmarshal(v, &p); err != nil {
			return fail(fmt.Errorf("price: %w", err))
		}
		rec.Price = &p
	}

	return rec, nil
}

func isNull(v json.RawMessage) bool {
	return strings.TrimSpace(string(v)) == "null"
}

func optionalString(v json.RawMessage) (*string, error) {
	if v == nil || isNull(v) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, errors.New("must be a string or null")
	}
	return &s, nil
}
