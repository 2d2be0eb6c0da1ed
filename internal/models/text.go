package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a free-text request field. It accepts any JSON value: a string is
// kept as is, anything else as its JSON text, so {"age":25} reads as "25".
// null reads as if the field were absent.
type Text struct {
	value    string
	sent     bool
	isString bool
	falsy    bool
}

// NewText returns a Text as if s had been sent as a JSON string.
func NewText(s string) Text {
	return Text{value: s, sent: true, isString: true, falsy: s == ""}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil

	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NewText(s)

	case data[0] == '{' || data[0] == '[':
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, data); err != nil {
			return err
		}
		t.value, t.sent = compacted.String(), true

	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		t.value, t.sent = string(data), true
		t.falsy = t.value == "false"

	default:
		// A valid JSON number always parses; out of range it yields ±Inf.
		n, _ := strconv.ParseFloat(string(data), 64)
		t.value, t.sent = string(data), true
		t.falsy = n == 0
	}

	return nil
}

// String returns the text of the field, empty when it was not sent.
func (t Text) String() string {
	return t.value
}

// Provided reports whether the field carries a value. "", 0 and false count
// as not provided, like a missing field.
func (t Text) Provided() bool {
	return t.sent && !t.falsy
}

// IsString reports whether the field was sent as a JSON string.
func (t Text) IsString() bool {
	return t.isString
}

// Ptr returns the text to store for the field, or nil when the field was
// not sent. An empty string is kept.
func (t Text) Ptr() *string {
	if !t.sent {
		return nil
	}
	value := t.value
	return &value
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
