package services

import (
	"sort"
	"strconv"
	"time"
)

// Raw payload accessors. Everything the citizen portal wrote is loosely
// typed, so every accessor fails soft: wrong type or missing key yields the
// zero value, never an error.

func AsMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func AsSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func AsString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

// AsMillis converts a raw timestamp value to epoch milliseconds. Numbers are
// taken as milliseconds as stored; strings are tried against the date formats
// the portal has produced over the years. Unparseable values yield 0.
func AsMillis(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "01/02/2006", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UnixMilli()
			}
		}
	}
	return 0
}

// IsNumeric reports whether the raw value carries a usable number.
func IsNumeric(v interface{}) bool {
	switch t := v.(type) {
	case float64:
		return true
	case string:
		_, err := strconv.ParseFloat(t, 64)
		return err == nil
	}
	return false
}

// EntriesInOrder flattens a requirements/chat container into an ordered list.
// Arrays keep their stored order; object containers (older records keyed by
// push ID or name) are ordered by key so the positional requirement IDs stay
// deterministic between reads.
func EntriesInOrder(v interface{}) []interface{} {
	if list := AsSlice(v); list != nil {
		return list
	}
	m := AsMap(v)
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]interface{}, 0, len(m))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
