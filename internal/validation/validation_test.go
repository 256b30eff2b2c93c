package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	apperrors "github.com/arvindbhardwaj2003/kundliDesign/internal/errors"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
)

func validBirth() models.BirthData {
	return models.BirthData{
		Name:      "Asha",
		Year:      1990,
		Month:     1,
		Day:       15,
		Hour:      10,
		Minute:    30,
		UTCOffset: "+5.5",
		Latitude:  28.6139,
		Longitude: 77.2090,
	}
}

func TestValidateBirthData(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *models.BirthData)
		wantErr bool
		field   string
	}{
		{"valid", func(b *models.BirthData) {}, false, ""},
		{"zero coordinates are allowed", func(b *models.BirthData) { b.Latitude, b.Longitude = 0, 0 }, false, ""},
		{"midnight is allowed", func(b *models.BirthData) { b.Hour, b.Minute = 0, 0 }, false, ""},
		{"blank name", func(b *models.BirthData) { b.Name = "   " }, true, "name"},
		{"year too early", func(b *models.BirthData) { b.Year = 1899 }, true, "year"},
		{"year too late", func(b *models.BirthData) { b.Year = 2101 }, true, "year"},
		{"month 13", func(b *models.BirthData) { b.Month = 13 }, true, "month"},
		{"day 0", func(b *models.BirthData) { b.Day = 0 }, true, "day"},
		{"31 april", func(b *models.BirthData) { b.Month, b.Day = 4, 31 }, true, "day"},
		{"29 feb non-leap", func(b *models.BirthData) { b.Year, b.Month, b.Day = 1991, 2, 29 }, true, "day"},
		{"29 feb leap", func(b *models.BirthData) { b.Year, b.Month, b.Day = 1992, 2, 29 }, false, ""},
		{"hour 24", func(b *models.BirthData) { b.Hour = 24 }, true, "hour"},
		{"minute 60", func(b *models.BirthData) { b.Minute = 60 }, true, "minute"},
		{"latitude", func(b *models.BirthData) { b.Latitude = 91 }, true, "latitude"},
		{"longitude", func(b *models.BirthData) { b.Longitude = -181 }, true, "longitude"},
		{"missing offset", func(b *models.BirthData) { b.UTCOffset = "" }, true, "utcOffset"},
		{"offset too large", func(b *models.BirthData) { b.UTCOffset = "+15" }, true, "utcOffset"},
		{"doubled offset sign", func(b *models.BirthData) { b.UTCOffset = "+-5" }, true, "utcOffset"},
	}

	v := NewInputValidator(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBirth()
			tt.mutate(&b)
			err := v.ValidateBirthData(b)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation))
			var ve *apperrors.ValidationError
			require.True(t, apperrors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidatePosition(t *testing.T) {
	v := NewInputValidator(true)
	assert.NoError(t, v.ValidatePosition("Me", `>05°12'45"`))
	assert.NoError(t, v.ValidatePosition("Me", `+29°59'59"`))
	assert.NoError(t, v.ValidatePosition("Me", `00°00'00"`))
	assert.Error(t, v.ValidatePosition("Me", `>30°00'00"`))
	assert.Error(t, v.ValidatePosition("Me", `>12°60'00"`))
	assert.Error(t, v.ValidatePosition("Me", `>12°30'`))
	assert.Error(t, v.ValidatePosition("Me", "12.5"))
}

func lagna() chart.Chart {
	c := chart.WholeSign(chart.Aries)
	c.House(1).Ascendant = `>00°45'23"`
	c.Place(1, chart.Ascendant, `>00°45'23"`)
	c.Place(4, chart.Moon, `>12°30'10"`)
	c.Place(5, chart.Sun, `>18°22'33"`)
	return c
}

func TestValidateLagnaChart(t *testing.T) {
	v := NewInputValidator(true)
	require.NoError(t, v.ValidateLagnaChart(lagna()))

	t.Run("missing moon", func(t *testing.T) {
		c := chart.WholeSign(chart.Aries)
		c.Place(5, chart.Sun, "")
		err := v.ValidateLagnaChart(c)
		assert.True(t, apperrors.Is(err, apperrors.ErrMissingMoon))
	})

	t.Run("broken rotation", func(t *testing.T) {
		c := lagna()
		c.House(6).Sign = chart.Aries
		err := v.ValidateLagnaChart(c)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidChart))
		var ce *apperrors.ChartError
		require.True(t, apperrors.As(err, &ce))
		assert.Equal(t, 6, ce.House)
	})

	t.Run("sign out of range", func(t *testing.T) {
		c := lagna()
		c.House(1).Sign = 0
		assert.True(t, apperrors.Is(v.ValidateLagnaChart(c), apperrors.ErrInvalidChart))
	})

	t.Run("unknown planet", func(t *testing.T) {
		c := lagna()
		c.Place(2, chart.PlanetCode("Pl"), "")
		assert.True(t, apperrors.Is(v.ValidateLagnaChart(c), apperrors.ErrInvalidChart))
	})

	t.Run("duplicate planet", func(t *testing.T) {
		c := lagna()
		c.Place(9, chart.Sun, "")
		assert.True(t, apperrors.Is(v.ValidateLagnaChart(c), apperrors.ErrInvalidChart))
	})

	t.Run("stray ascendant marker", func(t *testing.T) {
		c := lagna()
		c.House(3).Ascendant = `>01°00'00"`
		assert.True(t, apperrors.Is(v.ValidateLagnaChart(c), apperrors.ErrInvalidChart))
	})

	t.Run("bad position only fails in strict mode", func(t *testing.T) {
		c := lagna()
		c.Place(7, chart.Mars, "garbage")
		assert.True(t, apperrors.Is(v.ValidateLagnaChart(c), apperrors.ErrInputValidation))
		assert.NoError(t, NewInputValidator(false).ValidateLagnaChart(c))
	})
}
