package clock

import (
	"fmt"
	"time"

	// The display zone must resolve even on hosts without a zoneinfo database.
	_ "time/tzdata"
)

// DefaultZone is the fixed zone the page clock is shown in.
const DefaultZone = "Asia/Kolkata"

// layout renders a 12-hour clock: no leading zero on the hour, no seconds.
const layout = "3:04 PM"

// FormattingError reports that a time could not be rendered in the fixed zone.
type FormattingError struct {
	Zone string
	Err  error
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("format time in %q: %v", e.Zone, e.Err)
}

func (e *FormattingError) Unwrap() error {
	return e.Err
}

// TimeFormatter renders an instant for display.
type TimeFormatter interface {
	Format(t time.Time) (string, error)
}

// ZoneFormatter renders instants as wall-clock time in one IANA zone.
type ZoneFormatter struct {
	zone string
	loc  *time.Location
	err  error
}

// NewZoneFormatter resolves zone once. An unsupported zone is not an error
// here; every later Format call reports it instead.
func NewZoneFormatter(zone string) *ZoneFormatter {
	loc, err := time.LoadLocation(zone)
	if err == nil && zone == "" {
		err = fmt.Errorf("empty zone name")
	}
	return &ZoneFormatter{zone: zone, loc: loc, err: err}
}

func (f *ZoneFormatter) Zone() string {
	return f.zone
}

func (f *ZoneFormatter) Format(t time.Time) (string, error) {
	if f.err != nil {
		return "", &FormattingError{Zone: f.zone, Err: f.err}
	}
	return t.In(f.loc).Format(layout), nil
}
