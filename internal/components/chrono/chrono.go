package chrono

import "time"

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	Now() time.Time
	Location() *time.Location
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct {
	location *time.Location
}

// NewStandardTime loads the given IANA timezone, an empty name means UTC.
func NewStandardTime(timezone string) (StandardTime, error) {
	if timezone == "" {
		return StandardTime{location: time.UTC}, nil
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return StandardTime{}, err
	}
	return StandardTime{location: location}, nil
}

func (s StandardTime) Now() time.Time {
	return time.Now().In(s.Location())
}

func (s StandardTime) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// FixedTime is a TimeAPI that reports whatever time it was last set to.
type FixedTime struct {
	Time time.Time
}

func (f *FixedTime) Now() time.Time {
	return f.Time
}

func (f *FixedTime) Location() *time.Location {
	return f.Time.Location()
}

// Advance moves the clock forward by d.
func (f *FixedTime) Advance(d time.Duration) {
	f.Time = f.Time.Add(d)
}
