package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BirthData is the input for generating a kundli.
type BirthData struct {
	Name      string  `json:"name" yaml:"name"`
	Year      int     `json:"year" yaml:"year"`
	Month     int     `json:"month" yaml:"month"`
	Day       int     `json:"day" yaml:"day"`
	Hour      int     `json:"hour" yaml:"hour"`
	Minute    int     `json:"minute" yaml:"minute"`
	UTCOffset string  `json:"utcOffset" yaml:"utc_offset"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Location returns the fixed time zone described by UTCOffset.
func (b BirthData) Location() (*time.Location, error) {
	offset, err := ParseUTCOffset(b.UTCOffset)
	if err != nil {
		return nil, err
	}
	return time.FixedZone(FormatUTCOffset(offset), int(offset/time.Second)), nil
}

// DateTime returns the local birth time in the birth zone.
func (b BirthData) DateTime() (time.Time, error) {
	loc, err := b.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, loc), nil
}

var (
	secondsPerHour = decimal.NewFromInt(3600)

	clockOffsetPattern   = regexp.MustCompile(`^([+-]?)(\d{1,2}):(\d{2})$`)
	decimalOffsetPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

// ParseUTCOffset accepts decimal hours ("+5.5", "-4", "0") or "±HH:MM".
func ParseUTCOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty UTC offset")
	}

	if m := clockOffsetPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[2])
		mins, _ := strconv.Atoi(m[3])
		if mins >= 60 {
			return 0, fmt.Errorf("invalid UTC offset %q: minutes out of range", s)
		}
		d := time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute
		if m[1] == "-" {
			d = -d
		}
		return d, nil
	}

	if !decimalOffsetPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid UTC offset %q", s)
	}
	hours, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	seconds := hours.Mul(secondsPerHour)
	if !seconds.Equal(seconds.Truncate(0)) {
		return 0, fmt.Errorf("invalid UTC offset %q: not a whole number of seconds", s)
	}
	return time.Duration(seconds.IntPart()) * time.Second, nil
}

// FormatUTCOffset renders an offset as "+05:30".
func FormatUTCOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int(d / time.Minute)
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}
