package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// sampleLagna is the fixed chart served by the mock position provider.
func sampleLagna() Chart {
	c := WholeSign(Aries)
	c.House(1).Ascendant = `>00°45'23"`
	c.Place(1, Ascendant, `>00°45'23"`)
	c.Place(2, Mercury, `>05°12'45"`)
	c.Place(4, Moon, `>12°30'10"`)
	c.Place(5, Sun, `>18°22'33"`)
	c.Place(5, Venus, `>20°15'44"`)
	c.Place(7, Mars, `>25°40'12"`)
	c.Place(9, Jupiter, `>08°55'20"`)
	c.Place(11, Saturn, `>15°18'30"`)
	c.Place(12, Rahu, `>22°10'05"`)
	c.Place(12, Ketu, `>22°10'05"`)
	return c
}

func TestWholeSign(t *testing.T) {
	c := WholeSign(Sagittarius)
	assert.Equal(t, Sagittarius, c.House(1).Sign)
	assert.Equal(t, Capricorn, c.House(2).Sign)
	assert.Equal(t, Pisces, c.House(4).Sign)
	assert.Equal(t, Aries, c.House(5).Sign)
	assert.Equal(t, Scorpio, c.House(12).Sign)
}

func TestChart_Find(t *testing.T) {
	c := sampleLagna()
	assert.Equal(t, 4, c.Find(Moon))
	assert.Equal(t, 12, c.Find(Ketu))
	assert.Equal(t, 0, c.Find(PlanetCode("Pl")))
}

func TestChart_CloneIsDeep(t *testing.T) {
	orig := sampleLagna()
	clone := orig.Clone()

	clone.Place(3, Saturn, `>01°00'00"`)
	clone.House(5).Planets[0].Planet = Mars

	assert.Empty(t, orig.House(3).Planets)
	assert.Equal(t, Sun, orig.House(5).Planets[0].Planet)
}

func TestChart_JSONShape(t *testing.T) {
	c := sampleLagna()
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, SignCount)
	assert.EqualValues(t, 4, raw["4"]["sign_num"])
	assert.Equal(t, `>00°45'23"`, raw["1"]["asc"])
	assert.Empty(t, raw["3"]["planets"])

	var back Chart
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.Signs(), back.Signs())
	assert.Equal(t, []PlanetCode{Sun, Venus}, back.House(5).Codes())
}

// lagnaWithPlanetObjects keys each house's planets by code, positions as values.
const lagnaWithPlanetObjects = `{
  "1": {"sign_num": 1, "asc": ">00°45'23\"", "planets": {"Asc": ">00°45'23\""}},
  "2": {"sign_num": 2, "planets": {"Me": ">05°12'45\""}},
  "3": {"sign_num": 3, "planets": {}},
  "4": {"sign_num": 4, "planets": {"Mo": ">12°30'10\""}},
  "5": {"sign_num": 5, "planets": {"Su": ">18°22'33\"", "Ve": ">20°15'44\""}},
  "6": {"sign_num": 6, "planets": {}},
  "7": {"sign_num": 7, "planets": {"Ma": ">25°40'12\""}},
  "8": {"sign_num": 8, "planets": {}},
  "9": {"sign_num": 9, "planets": {"Ju": ">08°55'20\""}},
  "10": {"sign_num": 10, "planets": {}},
  "11": {"sign_num": 11, "planets": {"Sa": ">15°18'30\""}},
  "12": {"sign_num": 12, "planets": {"Ra": ">22°10'05\"", "Ke": ">22°10'05\""}}
}`

func TestChart_UnmarshalPlanetObjects(t *testing.T) {
	var c Chart
	require.NoError(t, json.Unmarshal([]byte(lagnaWithPlanetObjects), &c))

	want := sampleLagna()
	assert.Equal(t, want.Houses(), c.Houses())
	assert.Equal(t, []PlanetCode{Rahu, Ketu}, c.House(12).Codes())
	assert.NotNil(t, c.House(3).Planets)
	assert.Empty(t, c.House(3).Planets)
}

func TestChart_UnmarshalPlanetCodeLists(t *testing.T) {
	doc := `{
  "1": {"sign_num": 4, "asc": null, "planets": ["Mo"]},
  "2": {"sign_num": 5, "planets": ["Su", {"planet": "Ve", "position": ">20°15'44\""}]},
  "3": {"sign_num": 6, "planets": []},
  "4": {"sign_num": 7, "planets": null}
}`
	var c Chart
	require.NoError(t, json.Unmarshal([]byte(doc), &c))

	assert.Equal(t, []Placement{{Planet: Moon}}, c.House(1).Planets)
	assert.Empty(t, c.House(1).Ascendant)
	assert.Equal(t, []Placement{{Planet: Sun}, {Planet: Venus, Position: `>20°15'44"`}}, c.House(2).Planets)
	assert.Empty(t, c.House(4).Planets)
}

func TestChart_UnmarshalRejectsScalarPlanets(t *testing.T) {
	var c Chart
	err := json.Unmarshal([]byte(`{"1": {"sign_num": 1, "planets": "Mo"}}`), &c)
	assert.Error(t, err)

	err = yaml.Unmarshal([]byte("1: {sign_num: 1, planets: Mo}\n"), &c)
	assert.Error(t, err)
}

func TestChart_YAMLPlanetShapes(t *testing.T) {
	doc := `
1: {sign_num: 1, asc: ">00°45'23\"", planets: {Asc: ">00°45'23\""}}
2: {sign_num: 2, planets: {Me: ">05°12'45\""}}
3: {sign_num: 3, planets: {}}
4: {sign_num: 4, planets: [Mo]}
5: {sign_num: 5, planets: {Su: ">18°22'33\"", Ve: ">20°15'44\""}}
6: {sign_num: 6}
`
	var c Chart
	require.NoError(t, yaml.Unmarshal([]byte(doc), &c))

	assert.Equal(t, `>00°45'23"`, c.House(1).Ascendant)
	assert.Equal(t, []Placement{{Planet: Ascendant, Position: `>00°45'23"`}}, c.House(1).Planets)
	assert.Equal(t, []Placement{{Planet: Moon}}, c.House(4).Planets)
	assert.Equal(t, []PlanetCode{Sun, Venus}, c.House(5).Codes())
	assert.Empty(t, c.House(6).Planets)
	assert.Equal(t, 4, c.Find(Moon))
}

func TestChart_UnmarshalRejectsBadHouseKey(t *testing.T) {
	var c Chart
	err := json.Unmarshal([]byte(`{"13": {"sign_num": 1, "planets": []}}`), &c)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"one": {"sign_num": 1, "planets": []}}`), &c)
	assert.Error(t, err)
}

func TestChart_YAML(t *testing.T) {
	doc := `
1: {sign_num: 7, asc: ">10°00'00\"", planets: [{planet: Asc, position: ">10°00'00\""}]}
2: {sign_num: 8, planets: []}
3: {sign_num: 9, planets: []}
4: {sign_num: 10, planets: [{planet: Mo, position: ">02°15'00\""}]}
5: {sign_num: 11, planets: []}
6: {sign_num: 12, planets: []}
7: {sign_num: 1, planets: []}
8: {sign_num: 2, planets: []}
9: {sign_num: 3, planets: []}
10: {sign_num: 4, planets: []}
11: {sign_num: 5, planets: []}
12: {sign_num: 6, planets: []}
`
	var c Chart
	require.NoError(t, yaml.Unmarshal([]byte(doc), &c))
	assert.Equal(t, Libra, c.House(1).Sign)
	assert.Equal(t, Virgo, c.House(12).Sign)
	assert.Equal(t, 4, c.Find(Moon))
	assert.Equal(t, `>02°15'00"`, c.House(4).Planets[0].Position)

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	var back Chart
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, c.Signs(), back.Signs())
}
