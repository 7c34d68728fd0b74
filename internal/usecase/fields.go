package usecase

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

var jsonNull = []byte("null")

// Text is a string body member. Set is true only when the member was a JSON
// string or null; other JSON types are ignored the same way a missing member is.
type Text struct {
	Set   bool
	Null  bool
	Value string
}

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		*t = Text{Set: true, Null: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = Text{}
		return nil
	}
	*t = Text{Set: true, Value: strings.TrimSpace(s)}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Set || t.Null {
		return jsonNull, nil
	}
	return json.Marshal(t.Value)
}

// Get returns the trimmed value when it is a non-empty string.
func (t Text) Get() (string, bool) {
	if !t.Set || t.Null || t.Value == "" {
		return "", false
	}
	return t.Value, true
}

// Ptr is Get as a nullable column value.
func (t Text) Ptr() *string {
	v, ok := t.Get()
	if !ok {
		return nil
	}
	return &v
}

func T(s string) Text { return Text{Set: true, Value: strings.TrimSpace(s)} }

func NullText() Text { return Text{Set: true, Null: true} }

// Number is a numeric body member that also accepts numeric strings, the way
// HTML forms post them. Valid is false when the member was sent but is not a number.
type Number struct {
	Set   bool
	Null  bool
	Valid bool
	Value float64
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		*n = Number{Set: true, Null: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number{Set: true, Valid: true, Value: f}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*n = Number{Set: true}
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*n = Number{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = Number{Set: true}
		return nil
	}
	*n = Number{Set: true, Valid: true, Value: f}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Null || !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

func (n Number) Get() (float64, bool) {
	if !n.Set || n.Null || !n.Valid {
		return 0, false
	}
	return n.Value, true
}

func N(f float64) Number { return Number{Set: true, Valid: true, Value: f} }

// probability rounds to a whole percentage and rejects values outside 0..100.
func probability(n Number) (int, bool) {
	f, ok := n.Get()
	if !ok || f < 0 || f > 100 {
		return 0, false
	}
	return int(math.Round(f)), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts ISO timestamps and the values produced by date and
// datetime-local inputs. Zone-less values are read as UTC.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (t Text) Date() (time.Time, bool) {
	v, ok := t.Get()
	if !ok {
		return time.Time{}, false
	}
	return parseDate(v)
}
