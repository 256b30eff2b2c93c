// Package validation guards the chart engine: birth data and Lagna charts are
// checked here so the engine itself can trust its input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	apperrors "github.com/arvindbhardwaj2003/kundliDesign/internal/errors"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
)

// Validation limits
const (
	MinYear       = 1900
	MaxYear       = 2100
	MaxNameLength = 100
	MinUTCOffset  = -12 * time.Hour
	MaxUTCOffset  = 14 * time.Hour
)

// Position marker with an optional decorative prefix.
var positionPattern = regexp.MustCompile(`^[+>]?(\d{1,2})°(\d{1,2})'(\d{1,2})"$`)

// InputValidator provides input validation functionality.
type InputValidator struct {
	strictMode bool
}

// NewInputValidator creates a new input validator. In strict mode every
// position marker in a chart must be well formed.
func NewInputValidator(strictMode bool) *InputValidator {
	return &InputValidator{strictMode: strictMode}
}

// ValidateBirthData checks the fields needed to generate a kundli.
func (v *InputValidator) ValidateBirthData(b models.BirthData) error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return apperrors.NewValidationError("name", b.Name, "name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return apperrors.NewValidationError("name", b.Name, fmt.Sprintf("name too long (max %d characters)", MaxNameLength))
	}

	if b.Year < MinYear || b.Year > MaxYear {
		return apperrors.NewValidationError("year", b.Year, fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear))
	}
	if b.Month < 1 || b.Month > 12 {
		return apperrors.NewValidationError("month", b.Month, "month must be between 1 and 12")
	}
	if b.Day < 1 || b.Day > 31 {
		return apperrors.NewValidationError("day", b.Day, "day must be between 1 and 31")
	}
	// time.Date normalises 31 April to 1 May
	if d := time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC); d.Day() != b.Day {
		return apperrors.NewValidationError("day", b.Day, "day does not exist in that month")
	}
	if b.Hour < 0 || b.Hour > 23 {
		return apperrors.NewValidationError("hour", b.Hour, "hour must be between 0 and 23")
	}
	if b.Minute < 0 || b.Minute > 59 {
		return apperrors.NewValidationError("minute", b.Minute, "minute must be between 0 and 59")
	}

	if b.Latitude < -90 || b.Latitude > 90 {
		return apperrors.NewValidationError("latitude", b.Latitude, "latitude must be between -90 and 90")
	}
	if b.Longitude < -180 || b.Longitude > 180 {
		return apperrors.NewValidationError("longitude", b.Longitude, "longitude must be between -180 and 180")
	}

	offset, err := models.ParseUTCOffset(b.UTCOffset)
	if err != nil {
		return apperrors.NewValidationError("utcOffset", b.UTCOffset, err.Error())
	}
	if offset < MinUTCOffset || offset > MaxUTCOffset {
		return apperrors.NewValidationError("utcOffset", b.UTCOffset, "offset must be between -12 and +14 hours")
	}

	return nil
}

// ValidatePosition checks a sexagesimal marker such as `>05°12'45"`.
func (v *InputValidator) ValidatePosition(field, pos string) error {
	parts := positionPattern.FindStringSubmatch(strings.TrimSpace(pos))
	if parts == nil {
		return apperrors.NewValidationError(field, pos, `position must look like >DD°MM'SS"`)
	}
	deg, min, sec, _ := chart.Components(parts[0])
	if deg >= 30 {
		return apperrors.NewValidationError(field, pos, "degrees within a sign must be below 30")
	}
	if min >= 60 || sec >= 60 {
		return apperrors.NewValidationError(field, pos, "minutes and seconds must be below 60")
	}
	return nil
}

// ValidateLagnaChart checks that a chart is a whole-sign chart the derivation
// engine can work with: signs rotate through the zodiac, planet codes are
// known and unique, and there is exactly one Moon.
func (v *InputValidator) ValidateLagnaChart(c chart.Chart) error {
	first := c.House(1).Sign
	seen := make(map[chart.PlanetCode]int)

	for n := 1; n <= chart.SignCount; n++ {
		h := c.House(n)
		if !h.Sign.Valid() {
			return apperrors.NewChartError("lagna", n, fmt.Sprintf("sign %d out of range", h.Sign), nil)
		}
		if want := first.Advance(n - 1); h.Sign != want {
			return apperrors.NewChartError("lagna", n, fmt.Sprintf("expected sign %s, got %s", want, h.Sign), nil)
		}
		if n != 1 && h.Ascendant != "" {
			return apperrors.NewChartError("lagna", n, "ascendant marker outside the first house", nil)
		}

		for _, p := range h.Planets {
			if !p.Planet.Known() {
				return apperrors.NewChartError("lagna", n, fmt.Sprintf("unknown planet code %q", p.Planet), nil)
			}
			if prev, dup := seen[p.Planet]; dup {
				return apperrors.NewChartError("lagna", n, fmt.Sprintf("%s already placed in house %d", p.Planet, prev), nil)
			}
			seen[p.Planet] = n

			if v.strictMode && p.Position != "" {
				if err := v.ValidatePosition(string(p.Planet), p.Position); err != nil {
					return err
				}
			}
		}
	}

	if _, ok := seen[chart.Moon]; !ok {
		return apperrors.NewChartError("lagna", 0, "no moon placement", apperrors.ErrMissingMoon)
	}

	if asc := c.House(1).Ascendant; v.strictMode && asc != "" {
		if err := v.ValidatePosition("asc", asc); err != nil {
			return err
		}
	}
	return nil
}
