package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ExtractedRecord is the structured result of analyzing a page. Any field
// the model did not provide stays nil and is encoded as JSON null.
type ExtractedRecord struct {
	Name        *string `json:"name"`
	Price       *Price  `json:"price"`
	Description *string `json:"description"`
}

// Price holds a JSON string or number exactly as it was received.
type Price struct {
	raw json.RawMessage
}

var ErrInvalidPrice = errors.New("price must be a string or a number")

// StringPrice returns a Price holding the JSON string s.
func StringPrice(s string) *Price {
	b, _ := json.Marshal(s)
	return &Price{raw: b}
}

// NumberPrice returns a Price holding the JSON number literal n.
func NumberPrice(n json.Number) *Price {
	return &Price{raw: json.RawMessage(n.String())}
}

// IsNumber reports whether the price was given as a JSON number.
func (p Price) IsNumber() bool {
	return len(p.raw) > 0 && p.raw[0] != '"'
}

// String returns the string value, or the number literal as written.
func (p Price) String() string {
	if p.IsNumber() {
		return string(p.raw)
	}
	var s string
	_ = json.Unmarshal(p.raw, &s)
	return s
}

func (p Price) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ErrInvalidPrice
	}

	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return ErrInvalidPrice
		}
	default:
		return ErrInvalidPrice
	}

	p.raw = append(p.raw[:0], b...)
	return nil
}
