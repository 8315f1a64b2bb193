package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/fleet-manager/internal/models"
)

// YearMonth is a calendar month. Month is zero-based (0 = January).
type YearMonth struct {
	Year  int
	Month int
}

// Key returns the "YYYY-MM" bucket key with a one-based, zero-padded month.
func (ym YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month+1)
}

func yearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month()) - 1}
}

// ISO-8601 layouts carrying their own zone.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
}

// Date-only forms are read as UTC midnight.
var utcLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// Layouts without a zone are read in the configured location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// NormalizeDate converts a date-like field value into the calendar month it
// falls in at loc. It reports false when the value is not representable.
func NormalizeDate(value interface{}, loc *time.Location) (YearMonth, bool) {
	t, ok := parseDateValue(value, loc)
	if !ok {
		return YearMonth{}, false
	}
	return yearMonthOf(t.In(loc)), true
}

// parseDateValue accepts an ISO-8601 string or a structure carrying epoch
// seconds. Anything else is not representable.
func parseDateValue(value interface{}, loc *time.Location) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		return parseDateString(v, loc)
	case models.Timestamp:
		return fromSeconds(v.Seconds)
	case *models.Timestamp:
		if v == nil {
			return time.Time{}, false
		}
		return fromSeconds(v.Seconds)
	case map[string]interface{}:
		return secondsField(v)
	case models.Record:
		return secondsField(v)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func secondsField(m map[string]interface{}) (time.Time, bool) {
	raw, ok := m["seconds"]
	if !ok {
		return time.Time{}, false
	}
	secs, ok := toInt64(raw)
	if !ok {
		return time.Time{}, false
	}
	return fromSeconds(secs)
}

// A zero seconds value is treated as unset.
func fromSeconds(secs int64) (time.Time, bool) {
	if secs == 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// costOf returns a record's numeric cost. Missing, non-numeric and zero
// costs are reported as absent.
func costOf(r models.Record) (float64, bool) {
	var cost float64
	switch n := r["cost"].(type) {
	case float64:
		cost = n
	case float32:
		cost = float64(n)
	case int:
		cost = float64(n)
	case int32:
		cost = float64(n)
	case int64:
		cost = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		cost = f
	default:
		return 0, false
	}
	if cost == 0 {
		return 0, false
	}
	return cost, true
}
