package domain

import (
	"fmt"
	"strings"
	"time"
)

// LoadTimezone loads an IANA zone. Unlike time.LoadLocation it rejects the
// empty name and "Local", both of which would silently bind to the server's
// own zone.
func LoadTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}

	return loc, nil
}

type Resolution struct {
	Local time.Time
	Zone  *time.Location
	// FellBack is set when the requested zone was empty or unknown.
	FellBack bool
}

type TimezoneResolver struct {
	fallback *time.Location
}

// NewTimezoneResolver uses UTC when fallback is nil.
func NewTimezoneResolver(fallback *time.Location) *TimezoneResolver {
	if fallback == nil {
		fallback = time.UTC
	}

	return &TimezoneResolver{fallback: fallback}
}

func (r *TimezoneResolver) Fallback() *time.Location {
	return r.fallback
}

// Resolve converts instant into the wall-clock time of zone. It never fails:
// an empty or unknown zone resolves in the fallback zone.
func (r *TimezoneResolver) Resolve(instant time.Time, zone string) Resolution {
	loc, err := LoadTimezone(zone)
	if err != nil {
		return Resolution{
			Local:    instant.In(r.fallback),
			Zone:     r.fallback,
			FellBack: true,
		}
	}

	return Resolution{
		Local: instant.In(loc),
		Zone:  loc,
	}
}
