package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

const dateKeyLayout = "2006-01-02"

// DateKey is a calendar date with no time-of-day component. It is comparable
// and usable as a map key; the zero value means "no date". It persists and
// renders as YYYY-MM-DD, so lexicographic order matches chronological order.
type DateKey struct {
	year  int
	month time.Month
	day   int
}

// NewDateKey builds a DateKey from a year, month and day. Out-of-range values
// are normalized the same way time.Date normalizes them.
func NewDateKey(year int, month time.Month, day int) DateKey {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return DateKey{year: t.Year(), month: t.Month(), day: t.Day()}
}

func DateKeyOf(t time.Time) DateKey {
	return DateKey{year: t.Year(), month: t.Month(), day: t.Day()}
}

func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q: %w", s, apperrors.ErrValidation)
	}
	return DateKeyOf(t), nil
}

func (d DateKey) Year() int         { return d.year }
func (d DateKey) Month() time.Month { return d.month }
func (d DateKey) Day() int          { return d.day }
func (d DateKey) IsZero() bool      { return d == DateKey{} }

// Time returns the date at midnight UTC.
func (d DateKey) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d DateKey) Before(other DateKey) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d DateKey) After(other DateKey) bool {
	return other.Before(d)
}

func (d DateKey) AddDays(n int) DateKey {
	return DateKeyOf(d.Time().AddDate(0, 0, n))
}

func (d DateKey) Next() DateKey {
	return d.AddDays(1)
}

func (d DateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateKey(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateKey) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *DateKey) Scan(value any) error {
	if value == nil {
		*d = DateKey{}
		return nil
	}

	switch v := value.(type) {
	case string:
		parsed, err := ParseDateKey(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := ParseDateKey(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	case time.Time:
		*d = DateKeyOf(v)
	default:
		return fmt.Errorf("cannot scan type %T into a date", value)
	}
	return nil
}

func (DateKey) GormDataType() string { return "text" }

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start DateKey
	End   DateKey
}

func NewDateRange(start, end DateKey) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("date range bounds must be set: %w", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("date range start %s is after end %s: %w", start, end, apperrors.ErrValidation)
	}
	return DateRange{Start: start, End: end}, nil
}

// MonthRange covers every day of the given month.
func MonthRange(year int, month time.Month) DateRange {
	return DateRange{
		Start: NewDateKey(year, month, 1),
		End:   NewDateKey(year, month+1, 0),
	}
}

// WeekRange covers the Monday-to-Sunday week containing d.
func WeekRange(d DateKey) DateRange {
	sinceMonday := (int(d.Time().Weekday()) + 6) % 7
	start := d.AddDays(-sinceMonday)
	return DateRange{Start: start, End: start.AddDays(6)}
}

func (r DateRange) Contains(d DateKey) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days is the number of calendar days covered, both bounds included.
func (r DateRange) Days() int {
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Dates enumerates every day in the range in chronological order.
func (r DateRange) Dates() []DateKey {
	dates := make([]DateKey, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.Next() {
		dates = append(dates, d)
	}
	return dates
}
