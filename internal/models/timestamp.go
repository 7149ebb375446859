package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp — время из CMS. Принимает несколько распространённых форматов,
// пустая строка и null дают нулевое значение.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// UnmarshalJSON разбирает строку времени, пробуя форматы по очереди.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

// MarshalJSON пишет время в RFC 3339; нулевое значение — как null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// ParseTimestamp пробует набор форматов и возвращает UTC-время.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	var lastErr error
	for _, l := range timestampLayouts {
		t, err := time.Parse(l, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("timestamp %q: %w", value, lastErr)
}
