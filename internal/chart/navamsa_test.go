package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	want := map[Modality][]ZodiacSign{
		Movable: {Aries, Cancer, Libra, Capricorn},
		Fixed:   {Taurus, Leo, Scorpio, Aquarius},
		Dual:    {Gemini, Virgo, Sagittarius, Pisces},
	}
	for modality, signs := range want {
		for _, s := range signs {
			assert.Equal(t, modality, Classify(s), "sign %s", s)
		}
	}
	assert.Equal(t, ModalityUnknown, Classify(0))
	assert.Equal(t, ModalityUnknown, Classify(13))
}

func TestPada_BoundariesFirstMatchWins(t *testing.T) {
	tests := []struct {
		degree string
		want   int
	}{
		{"0", 1},
		{"3.2", 1},
		{"3.21", 2},
		{"6.4", 2},
		{"6.41", 3},
		{"10", 3},
		{"13.2", 4},
		{"16.4", 5},
		{"20", 6},
		{"20.01", 7},
		{"23.2", 7},
		{"26.4", 8},
		{"29.59", 9},
		{"30", 9},
		{"30.01", 0},
		{"45", 0},
	}
	for _, tt := range tests {
		t.Run(tt.degree, func(t *testing.T) {
			assert.Equal(t, tt.want, Pada(DegreeFromString(tt.degree)))
		})
	}
}

func TestLocateNavamsa(t *testing.T) {
	tests := []struct {
		name      string
		sign      ZodiacSign
		degree    string
		house     int
		wantStart int
		wantCount int
	}{
		{"movable starts next house", Aries, "0.45", 0, 1, 1},
		{"movable does not wrap start", Capricorn, "25.40", 11, 12, 8},
		{"fixed counts from ninth", Taurus, "5.12", 1, 10, 2},
		{"fixed wraps", Leo, "18.22", 4, 1, 6},
		{"dual counts from fifth", Sagittarius, "8.55", 8, 1, 3},
		{"dual no wrap", Gemini, "1", 2, 7, 1},
		{"band boundary lower band", Cancer, "3.2", 3, 4, 1},
		{"band boundary upper band", Cancer, "3.21", 3, 4, 2},
		{"no band falls back", Aries, "31", 0, 1, 1},
		{"unknown sign falls back", ZodiacSign(0), "5", 4, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, count := LocateNavamsa(tt.sign, DegreeFromString(tt.degree), tt.house)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestCountHouses(t *testing.T) {
	assert.Equal(t, 1, CountHouses(1, 1))
	assert.Equal(t, 11, CountHouses(10, 2))
	assert.Equal(t, 2, CountHouses(7, 8))
	assert.Equal(t, 12, CountHouses(4, 9))
	assert.Equal(t, 8, CountHouses(12, 9))
}

func TestBuildNavamsa_SampleChart(t *testing.T) {
	lagna := sampleLagna()
	navamsa := BuildNavamsa(lagna)

	for n := 1; n <= SignCount; n++ {
		assert.Equal(t, ZodiacSign(n), navamsa.House(n).Sign, "house %d", n)
	}
	assert.Equal(t, `>00°45'23"`, navamsa.House(1).Ascendant)

	want := map[int][]PlanetCode{
		1:  {Ascendant},
		2:  {Mars},
		3:  {Jupiter},
		6:  {Sun},
		7:  {Moon, Venus},
		10: {Rahu, Ketu},
		11: {Mercury, Saturn},
	}
	for n := 1; n <= SignCount; n++ {
		if codes, ok := want[n]; ok {
			assert.Equal(t, codes, navamsa.House(n).Codes(), "house %d", n)
		} else {
			assert.Empty(t, navamsa.House(n).Planets, "house %d", n)
		}
	}

	// Derived charts carry planet lists, not positions.
	for _, h := range navamsa.Houses() {
		for _, p := range h.Planets {
			assert.Empty(t, p.Position)
		}
	}
}

func TestBuildNavamsa_MercuryLandsOnce(t *testing.T) {
	navamsa := BuildNavamsa(sampleLagna())

	var houses []int
	for n := 1; n <= SignCount; n++ {
		if navamsa.House(n).Has(Mercury) {
			houses = append(houses, n)
		}
	}
	require.Len(t, houses, 1)
	assert.Equal(t, Aquarius, navamsa.House(houses[0]).Sign)
}

func TestBuildNavamsa_RotatedAscendant(t *testing.T) {
	// Leo rising at 18°22' is fixed, pada 6, counted from the ninth house:
	// start 9, count 6 lands on house 2, which holds Virgo.
	lagna := WholeSign(Leo)
	lagna.House(1).Ascendant = `>18°22'00"`
	lagna.Place(1, Ascendant, `>18°22'00"`)
	lagna.Place(3, Moon, `>01°00'00"`)

	navamsa := BuildNavamsa(lagna)
	assert.Equal(t, Virgo, navamsa.House(1).Sign)
	assert.Equal(t, Leo, navamsa.House(12).Sign)
	assert.Equal(t, `>18°22'00"`, navamsa.House(1).Ascendant)

	// Moon in Libra (movable) house 3, pada 1: start 3, lands on house 3 -> Libra.
	assert.Equal(t, Libra, navamsa.House(navamsa.Find(Moon)).Sign)
}

func TestBuildNavamsa_MissingAscendantMarker(t *testing.T) {
	lagna := WholeSign(Taurus)
	lagna.Place(2, Moon, `>10°00'00"`)

	// No marker parses as 0: fixed sign, pada 1, start 9 -> house 9 (Capricorn).
	navamsa := BuildNavamsa(lagna)
	assert.Equal(t, Capricorn, navamsa.House(1).Sign)
	assert.Empty(t, navamsa.House(1).Ascendant)
}

func TestBuildNavamsa_DoesNotMutateInput(t *testing.T) {
	lagna := sampleLagna()
	before := lagna.Clone()

	_ = BuildNavamsa(lagna)

	assert.Equal(t, before.Houses(), lagna.Houses())
}
