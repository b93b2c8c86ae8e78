package clock

import "time"

// Clock supplies the current time so services never read ambient time.
type Clock interface {
	Now() time.Time
}

// Wall reads the system clock in a fixed location.
type Wall struct {
	Loc *time.Location
}

func (w Wall) Now() time.Time {
	if w.Loc == nil {
		return time.Now()
	}
	return time.Now().In(w.Loc)
}

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
