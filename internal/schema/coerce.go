package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// coerce applies the bulk import policy to one value.
func (f Field[T]) coerce(v any) (any, error) {
	if f.Kind == KindInt {
		return toInt(v)
	}
	if v == nil {
		return nil, nil
	}
	switch f.Kind {
	case KindFloat:
		return toFloat(v)
	case KindBool:
		return truthy(v), nil
	case KindTimestamp, KindTimestampTZ, KindDate:
		return toTime(f.Kind, v)
	default:
		return toText(v)
	}
}

// toInt truncates through a float conversion. Missing or falsy input is 0.
func toInt(v any) (any, error) {
	if v == nil || !truthy(v) {
		return int64(0), nil
	}
	switch n := v.(type) {
	case bool:
		return int64(1), nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	x := f.(float64)
	if math.IsNaN(x) || math.IsInf(x, 0) || x >= math.MaxInt64 || x <= math.MinInt64 {
		return nil, ErrUnparseable
	}
	return int64(x), nil
}

func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case bool:
		if n {
			return float64(1), nil
		}
		return float64(0), nil
	case json.Number:
		return parseFloat(n.String())
	case string:
		return parseFloat(n)
	default:
		return nil, ErrUnparseable
	}
}

func parseFloat(s string) (any, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// truthy mirrors loose truthiness: zero numbers, empty strings and empty
// collections are false, any other non-nil value is true.
func truthy(v any) bool {
	switch n := v.(type) {
	case nil:
		return false
	case bool:
		return n
	case string:
		return n != ""
	case int:
		return n != 0
	case int32:
		return n != 0
	case int64:
		return n != 0
	case float32:
		return n != 0
	case float64:
		return n != 0
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return n != ""
		}
		return !d.IsZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

func toText(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case time.Time:
		return s.Format(time.RFC3339Nano), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		return string(raw), nil
	}
	return fmt.Sprint(v), nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISO parses ISO-8601 text. Values without an offset are read as UTC.
func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: not an ISO-8601 datetime %q", ErrUnparseable, s)
}

// toTime returns nil without an error for raw types that are neither text nor time.
func toTime(kind Kind, v any) (any, error) {
	var t time.Time
	switch x := v.(type) {
	case string:
		parsed, err := parseISO(x)
		if err != nil {
			return nil, err
		}
		t = parsed
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		t = *x
	default:
		return nil, nil
	}
	switch kind {
	case KindTimestamp:
		return t.UTC(), nil
	case KindDate:
		u := t.UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
	default:
		return t, nil
	}
}
