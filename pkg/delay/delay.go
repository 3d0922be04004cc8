// Package delay parses the relative delays accepted by the remind command,
// e.g. "10s", "15m", "2 hours" or "3d".
package delay

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Unit is the time unit of a delay.
type Unit uint

// Delay units. Only the first letter of the unit word is significant.
const (
	Unknown Unit = iota
	Seconds
	Minutes
	Hours
	Days
)

var unitSeconds = map[Unit]uint64{
	Seconds: 1,
	Minutes: 60,
	Hours:   60 * 60,
	Days:    60 * 60 * 24,
}

// maxSeconds keeps every delay representable as a time.Duration.
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	default:
		return "unknown"
	}
}

func unitOf(s string) Unit {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Unknown
	}
	switch s[0] {
	case 's':
		return Seconds
	case 'm':
		return Minutes
	case 'h':
		return Hours
	case 'd':
		return Days
	default:
		return Unknown
	}
}

// ParseError is returned when no single number can be read from the input.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid delay %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Delay is a parsed relative delay.
type Delay struct {
	Amount uint64
	Unit   Unit
	// Raw is the input as typed, used to describe unknown units.
	Raw string
}

// Seconds returns the delay length in seconds. Unknown units are zero length.
func (d Delay) Seconds() uint64 {
	return d.Amount * unitSeconds[d.Unit]
}

// Duration returns the delay as a time.Duration.
func (d Delay) Duration() time.Duration {
	return time.Duration(d.Seconds()) * time.Second
}

// String describes the delay the way it is echoed back to the user.
func (d Delay) String() string {
	if d.Unit == Unknown {
		return d.Raw
	}
	return fmt.Sprintf("%d %s", d.Amount, d.Unit)
}

// Parse reads a delay of the form <number><unit>.
//
// A string without any digit, or with a unit that is not recognised, yields
// an Unknown delay of zero length and no error. Split digit groups ("1h30m")
// and numbers that overflow are reported as *ParseError.
func Parse(s string) (Delay, error) {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return Delay{Unit: Unknown, Raw: s}, nil
	}
	end := start + strings.IndexFunc(s[start:], func(r rune) bool { return !unicode.IsDigit(r) })
	if end < start {
		end = len(s)
	}
	rest := s[end:]
	if strings.IndexFunc(rest, unicode.IsDigit) >= 0 {
		return Delay{}, &ParseError{Input: s, Err: fmt.Errorf("more than one number")}
	}

	amount, err := strconv.ParseUint(s[start:end], 10, 64)
	if err != nil {
		return Delay{}, &ParseError{Input: s, Err: err}
	}

	unit := unitOf(s[:start] + rest)
	if unit == Unknown {
		return Delay{Unit: Unknown, Raw: s}, nil
	}
	if amount > maxSeconds/unitSeconds[unit] {
		return Delay{}, &ParseError{Input: s, Err: fmt.Errorf("delay too large")}
	}
	return Delay{Amount: amount, Unit: unit, Raw: s}, nil
}
