package chart

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Degree is a position within a sign expressed as degrees + minutes/100.
//
// This is not decimal degrees: 12°30' is 12.30, not 12.5. The navamsa band table
// is written in the same scale, so the two must stay in step.
// TODO: switch both to minutes/60 once positions come from a real ephemeris.
type Degree struct {
	value decimal.Decimal
}

// NewDegree builds a Degree from whole degrees and minutes.
func NewDegree(degrees, minutes int64) Degree {
	return Degree{value: decimal.NewFromInt(degrees).Add(decimal.New(minutes, -2))}
}

// DegreeFromString parses a plain decimal such as "3.2". It panics on bad input
// and is meant for constant tables and tests.
func DegreeFromString(s string) Degree {
	return Degree{value: decimal.RequireFromString(s)}
}

// Cmp returns -1, 0 or 1 as d is less than, equal to or greater than o.
func (d Degree) Cmp(o Degree) int {
	return d.value.Cmp(o.value)
}

// Between reports whether lo <= d <= hi.
func (d Degree) Between(lo, hi Degree) bool {
	return d.value.GreaterThanOrEqual(lo.value) && d.value.LessThanOrEqual(hi.value)
}

// IsZero reports whether d is 0.
func (d Degree) IsZero() bool {
	return d.value.IsZero()
}

// Float64 returns d as a float, for display only.
func (d Degree) Float64() float64 {
	f, _ := d.value.Float64()
	return f
}

func (d Degree) String() string {
	return d.value.StringFixed(2)
}

var positionPattern = regexp.MustCompile(`(\d+)°(\d+)'(\d+)"`)

// ParsePosition decodes a marker such as `>05°12'45"` into a Degree.
// The leading '+' or '>' is decorative. Seconds are ignored. Input that does not
// match the pattern yields zero; this function never fails.
func ParsePosition(s string) Degree {
	degrees, minutes, _, ok := Components(s)
	if !ok {
		return Degree{}
	}
	return NewDegree(int64(degrees), int64(minutes))
}

// Components splits a marker into degrees, minutes and seconds. ok is false when
// the marker does not match the pattern.
func Components(s string) (degrees, minutes, seconds int, ok bool) {
	cleaned := strings.NewReplacer("+", "", ">", "").Replace(s)
	parts := positionPattern.FindStringSubmatch(cleaned)
	if parts == nil {
		return 0, 0, 0, false
	}
	var err error
	if degrees, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if minutes, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	if seconds, err = strconv.Atoi(parts[3]); err != nil {
		return 0, 0, 0, false
	}
	return degrees, minutes, seconds, true
}
