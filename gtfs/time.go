package gtfs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const gtfsDateFormat = "20060102"

// ServiceTime is a time-of-day offset on the GTFS service clock, stored as
// seconds since the start of the service day. Unlike a wall clock it may
// exceed 24:00:00 for trips running past midnight.
type ServiceTime int

// ServiceTimeFromMinutes builds a ServiceTime from whole minutes.
func ServiceTimeFromMinutes(minutes int) ServiceTime {
	return ServiceTime(minutes * 60)
}

// Minutes returns the offset in whole minutes.
func (t ServiceTime) Minutes() int {
	return int(t) / 60
}

// String renders the offset as HH:MM:SS.
func (t ServiceTime) String() string {
	sec := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec/60)%60, sec%60)
}

// MarshalCSV marshals the value into the HH:MM:SS format GTFS requires.
func (t ServiceTime) MarshalCSV() (string, error) {
	return t.String(), nil
}

// UnmarshalCSV parses an HH:MM:SS value, tolerating hours beyond 23.
func (t *ServiceTime) UnmarshalCSV(csv string) error {
	parts := strings.Split(strings.TrimSpace(csv), ":")
	if len(parts) != 3 {
		return errors.New("service time must be HH:MM:SS")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil {
		return err
	}
	*t = ServiceTime(h*3600 + m*60 + s)
	return nil
}

// Date is a GTFS calendar date, written as YYYYMMDD.
type Date struct {
	time.Time
}

// NewDate builds a Date from a calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYYMMDD value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(gtfsDateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{d.Time.AddDate(0, 0, days)}
}

// String renders the date in GTFS format.
func (d Date) String() string {
	return d.Format(gtfsDateFormat)
}

// MarshalCSV marshals the value into the YYYYMMDD format GTFS requires.
func (d Date) MarshalCSV() (string, error) {
	return d.Format(gtfsDateFormat), nil
}

// UnmarshalCSV takes the string representation from a CSV file and attempts
// to convert it to a date.
func (d *Date) UnmarshalCSV(csv string) (err error) {
	d.Time, err = time.Parse(gtfsDateFormat, strings.TrimSpace(csv))
	return err
}
