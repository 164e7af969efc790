// Package duration implements exact rational note durations, measured in
// whole-note units. A Duration is always kept in lowest terms, and all
// comparisons used in control flow are exact cross-multiplications; float
// conversion exists for display and debugging only.
package duration

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// ErrUnsupportedNotation is returned by Notation for ratios that have no
// single-token representation (anything but binary and single-dotted values).
var ErrUnsupportedNotation = errors.New("duration: unsupported notation ratio")

// Duration is a reduced non-negative fraction of a whole note. The zero
// value is the zero duration.
type Duration struct {
	num, den uint32
}

// New returns the reduced duration num/den. A zero denominator is a caller
// bug and panics.
func New(num, den uint32) Duration {
	if den == 0 {
		panic("duration: zero denominator")
	}
	return Duration{num, den}.reduce()
}

// Parse reads a duration from "n/d" or a bare integer "n" (whole notes).
func Parse(s string) (Duration, error) {
	var num, den uint32
	if _, err := fmt.Sscanf(s, "%d/%d", &num, &den); err == nil {
		if den == 0 {
			return Duration{}, fmt.Errorf("duration: zero denominator in %q", s)
		}
		return New(num, den), nil
	}
	if _, err := fmt.Sscanf(s, "%d", &num); err == nil {
		return New(num, 1), nil
	}
	return Duration{}, fmt.Errorf("duration: cannot parse %q", s)
}

func (d Duration) reduce() Duration {
	if d.num == 0 {
		return Duration{0, 1}
	}
	g := gcd(d.num, d.den)
	return Duration{d.num / g, d.den / g}
}

// split returns the ratio with the denominator normalized, so that the zero
// value behaves as 0/1.
func (d Duration) split() (uint32, uint32) {
	if d.den == 0 {
		return d.num, 1
	}
	return d.num, d.den
}

// Add returns d + o, reduced.
func (d Duration) Add(o Duration) Duration {
	dn, dd := d.split()
	on, od := o.split()
	m := lcm(dd, od)
	return Duration{dn*(m/dd) + on*(m/od), m}.reduce()
}

// Sub returns d - o, reduced. Subtracting more than is available never
// happens in a valid consumption sequence, so underflow panics.
func (d Duration) Sub(o Duration) Duration {
	dn, dd := d.split()
	on, od := o.split()
	m := lcm(dd, od)
	a := dn * (m / dd)
	b := on * (m / od)
	if b > a {
		panic(fmt.Sprintf("duration: %v - %v underflows", d, o))
	}
	return Duration{a - b, m}.reduce()
}

// Cmp returns -1, 0 or +1 as d is less than, equal to or greater than o.
func (d Duration) Cmp(o Duration) int {
	dn, dd := d.split()
	on, od := o.split()
	l := uint64(dn) * uint64(od)
	r := uint64(on) * uint64(dd)
	switch {
	case l < r:
		return -1
	case l > r:
		return +1
	}
	return 0
}

func (d Duration) Less(o Duration) bool  { return d.Cmp(o) < 0 }
func (d Duration) Equal(o Duration) bool { return d.Cmp(o) == 0 }

// IsZero reports whether the duration is zero.
func (d Duration) IsZero() bool { return d.num == 0 }

// Ratio returns the reduced numerator and denominator.
func (d Duration) Ratio() (uint32, uint32) { return d.split() }

// Float returns the duration as a float64. Display and debugging only.
func (d Duration) Float() float64 {
	n, den := d.split()
	return float64(n) / float64(den)
}

func (d Duration) String() string {
	n, den := d.split()
	return fmt.Sprintf("%d/%d", n, den)
}

// Notation renders the duration as an engraving token: 1/x with x a power
// of two becomes "x" (1/4 -> "4"), 3/x with x a power of two becomes a
// dotted "x." (3/4 -> "4."), and whole-note multiples n/1 become "1*n".
// Any other ratio has no token and returns ErrUnsupportedNotation.
func (d Duration) Notation() (string, error) {
	n, den := d.split()
	switch {
	case n == 1 && isPowerOfTwo(den):
		return strconv.FormatUint(uint64(den), 10), nil
	case n == 3 && isPowerOfTwo(den):
		return strconv.FormatUint(uint64(den), 10) + ".", nil
	case den == 1 && n > 0:
		return "1*" + strconv.FormatUint(uint64(n), 10), nil
	}
	return "", fmt.Errorf("%w: %d/%d", ErrUnsupportedNotation, n, den)
}

func isPowerOfTwo(x uint32) bool {
	return bits.OnesCount32(x) == 1
}

func gcd(a, b uint32) uint32 {
	for a != 0 {
		a, b = b%a, a
	}
	return b
}

func lcm(a, b uint32) uint32 {
	return a / gcd(a, b) * b
}
