// Package normalize converts loosely typed model output into canonical
// values. Extracted documents carry dates in mixed formats (Chinese
// calendar text, slash forms, ISO timestamps) and amounts as strings with
// currency glyphs and thousands separators; everything funnels through here
// before it reaches a typed table.
package normalize

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

var (
	cjkDateRe   = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日$`)
	slashDateRe = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// Date converts a date value of unknown shape to canonical YYYY-MM-DD form.
// It accepts ISO strings (a trailing time component is dropped), YYYY/M/D
// slash dates, and YYYY年M月D日 Chinese calendar dates. Returns ("", false)
// for nil, empty, or unrecognized input. Never panics.
func Date(v any) (string, bool) {
	s, ok := asString(v)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if isoPrefixRe.MatchString(s) {
		return s[:10], true
	}
	if m := cjkDateRe.FindStringSubmatch(s); m != nil {
		return padDate(m[1], m[2], m[3]), true
	}
	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		return padDate(m[1], m[2], m[3]), true
	}

	log.Printf("normalize.Date: unrecognized date format %q", s)
	return "", false
}

// Amount converts an amount value of unknown shape to a float64. Strings may
// carry ¥ or ￥ currency markers and thousands commas. Returns (0, false)
// for nil, empty, or non-numeric input. Never panics.
func Amount(v any) (float64, bool) {
	switch a := v.(type) {
	case nil:
		return 0, false
	case float64:
		return a, true
	case float32:
		return float64(a), true
	case int:
		return float64(a), true
	case int64:
		return float64(a), true
	case json.Number:
		f, err := a.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := strings.TrimSpace(a)
		s = strings.ReplaceAll(s, "¥", "")
		s = strings.ReplaceAll(s, "￥", "")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Printf("normalize.Amount: non-numeric amount %q", a)
			return 0, false
		}
		return f, true
	default:
		log.Printf("normalize.Amount: unsupported type %T", v)
		return 0, false
	}
}

// DatePtr is Date returning a nullable string for persistence.
func DatePtr(v any) *string {
	s, ok := Date(v)
	if !ok {
		return nil
	}
	return &s
}

// AmountPtr is Amount returning a nullable float64 for persistence.
func AmountPtr(v any) *float64 {
	f, ok := Amount(v)
	if !ok {
		return nil
	}
	return &f
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

func padDate(year, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}
