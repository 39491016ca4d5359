package domain

import (
	"database/sql/driver" // Valuer interface for DB storage
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for rental dates
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component. It marshals to and from
// "2006-01-02" in JSON and is stored in a DATE column.
type Date struct {
	time.Time
}

// ParseDate parses a "2006-01-02" string into a Date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// MarshalJSON renders the date as a quoted "2006-01-02" string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON parses a quoted "2006-01-02" string
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %q", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as its "2006-01-02" string
func (d Date) Value() (driver.Value, error) {
	return d.Format(DateLayout), nil
}

// Scan accepts time.Time, string or []byte column values
func (d *Date) Scan(v any) error {
	switch val := v.(type) {
	case time.Time:
		d.Time = val
		return nil
	case []byte:
		parsed, err := time.Parse(DateLayout, string(val)[:min(len(val), len(DateLayout))])
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	case string:
		parsed, err := time.Parse(DateLayout, val[:min(len(val), len(DateLayout))])
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", v)
}

// String returns the "2006-01-02" form
func (d Date) String() string {
	return d.Format(DateLayout)
}
