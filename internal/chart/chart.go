package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PlanetCode identifies a graha, or the Ascendant pseudo-entity.
type PlanetCode string

// Planet codes.
const (
	Sun       PlanetCode = "Su"
	Moon      PlanetCode = "Mo"
	Mars      PlanetCode = "Ma"
	Mercury   PlanetCode = "Me"
	Jupiter   PlanetCode = "Ju"
	Venus     PlanetCode = "Ve"
	Saturn    PlanetCode = "Sa"
	Rahu      PlanetCode = "Ra"
	Ketu      PlanetCode = "Ke"
	Ascendant PlanetCode = "Asc"
)

// PlanetCodes lists every known code in canonical order.
var PlanetCodes = []PlanetCode{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu, Ascendant}

var planetNames = map[PlanetCode]string{
	Sun:       "Sun",
	Moon:      "Moon",
	Mars:      "Mars",
	Mercury:   "Mercury",
	Jupiter:   "Jupiter",
	Venus:     "Venus",
	Saturn:    "Saturn",
	Rahu:      "Rahu",
	Ketu:      "Ketu",
	Ascendant: "Ascendant",
}

// Known reports whether p is one of PlanetCodes.
func (p PlanetCode) Known() bool {
	_, ok := planetNames[p]
	return ok
}

// Name returns the long name of the code, or the code itself if unknown.
func (p PlanetCode) Name() string {
	if n, ok := planetNames[p]; ok {
		return n
	}
	return string(p)
}

// Placement puts a planet in a house. Position is the sexagesimal marker
// (e.g. `>05°12'45"`); derived charts leave it empty.
type Placement struct {
	Planet   PlanetCode `json:"planet" yaml:"planet"`
	Position string     `json:"position,omitempty" yaml:"position,omitempty"`
}

// Degree parses the placement's position marker.
func (p Placement) Degree() Degree {
	return ParsePosition(p.Position)
}

// House is one whole-sign house.
type House struct {
	Sign      ZodiacSign  `json:"sign_num" yaml:"sign_num"`
	Ascendant string      `json:"asc,omitempty" yaml:"asc,omitempty"`
	Planets   []Placement `json:"planets" yaml:"planets"`
}

// Has reports whether code is placed in the house.
func (h House) Has(code PlanetCode) bool {
	for _, p := range h.Planets {
		if p.Planet == code {
			return true
		}
	}
	return false
}

// Codes returns the planet codes of the house in placement order.
func (h House) Codes() []PlanetCode {
	codes := make([]PlanetCode, 0, len(h.Planets))
	for _, p := range h.Planets {
		codes = append(codes, p.Planet)
	}
	return codes
}

// UnmarshalJSON accepts planets as a list of placements, a list of bare codes,
// or an object mapping code to position. Object order is kept.
func (h *House) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sign      ZodiacSign      `json:"sign_num"`
		Ascendant string          `json:"asc"`
		Planets   json.RawMessage `json:"planets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	planets, err := placementsFromJSON(raw.Planets)
	if err != nil {
		return fmt.Errorf("house %d planets: %w", raw.Sign, err)
	}
	*h = House{Sign: raw.Sign, Ascendant: raw.Ascendant, Planets: planets}
	return nil
}

func placementsFromJSON(data json.RawMessage) ([]Placement, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		out := make([]Placement, 0, len(items))
		for _, item := range items {
			var p Placement
			if item = bytes.TrimSpace(item); len(item) > 0 && item[0] == '"' {
				var code string
				if err := json.Unmarshal(item, &code); err != nil {
					return nil, err
				}
				p.Planet = PlanetCode(code)
			} else if err := json.Unmarshal(item, &p); err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil

	case '{':
		// Walk tokens; a map would lose the document order.
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		out := []Placement{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			var position string
			if err := dec.Decode(&position); err != nil {
				return nil, err
			}
			out = append(out, Placement{Planet: PlanetCode(tok.(string)), Position: position})
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list or an object, got %s", data)
}

// UnmarshalYAML accepts the same planet shapes as UnmarshalJSON.
func (h *House) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Sign      ZodiacSign `yaml:"sign_num"`
		Ascendant string     `yaml:"asc"`
		Planets   yaml.Node  `yaml:"planets"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	planets, err := placementsFromYAML(&raw.Planets)
	if err != nil {
		return fmt.Errorf("house %d planets: %w", raw.Sign, err)
	}
	*h = House{Sign: raw.Sign, Ascendant: raw.Ascendant, Planets: planets}
	return nil
}

func placementsFromYAML(node *yaml.Node) ([]Placement, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	case yaml.SequenceNode:
		out := make([]Placement, 0, len(node.Content))
		for _, item := range node.Content {
			var p Placement
			if item.Kind == yaml.ScalarNode {
				p.Planet = PlanetCode(item.Value)
			} else if err := item.Decode(&p); err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	case yaml.MappingNode:
		out := make([]Placement, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var position string
			if err := node.Content[i+1].Decode(&position); err != nil {
				return nil, err
			}
			out = append(out, Placement{Planet: PlanetCode(node.Content[i].Value), Position: position})
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: expected a list or a mapping", node.Line)
}

// Chart is a set of exactly twelve houses numbered 1..12.
type Chart struct {
	houses [SignCount]House
}

// House returns a pointer to house n (1..12). It panics if n is out of range.
func (c *Chart) House(n int) *House {
	return &c.houses[n-1]
}

// Houses returns a copy of the houses in order 1..12.
func (c Chart) Houses() []House {
	out := make([]House, SignCount)
	copy(out, c.houses[:])
	return out
}

// Place appends a placement to house n.
func (c *Chart) Place(n int, planet PlanetCode, position string) {
	h := c.House(n)
	h.Planets = append(h.Planets, Placement{Planet: planet, Position: position})
}

// Signs returns the sign of each house, index 0 being house 1.
func (c Chart) Signs() [SignCount]ZodiacSign {
	var signs [SignCount]ZodiacSign
	for i, h := range c.houses {
		signs[i] = h.Sign
	}
	return signs
}

// Find returns the number of the first house holding code, or 0.
func (c Chart) Find(code PlanetCode) int {
	for i, h := range c.houses {
		if h.Has(code) {
			return i + 1
		}
	}
	return 0
}

// Clone returns a deep copy of c.
func (c Chart) Clone() Chart {
	var out Chart
	for i, h := range c.houses {
		out.houses[i] = House{Sign: h.Sign, Ascendant: h.Ascendant}
		if h.Planets != nil {
			out.houses[i].Planets = append(make([]Placement, 0, len(h.Planets)), h.Planets...)
		}
	}
	return out
}

// WholeSign returns an empty whole-sign chart whose first house is rising.
// House 1 keeps rising as given, even when it is not a valid sign.
func WholeSign(rising ZodiacSign) Chart {
	var c Chart
	c.houses[0] = House{Sign: rising, Planets: []Placement{}}
	for i := 1; i < SignCount; i++ {
		c.houses[i] = House{Sign: rising.Advance(i), Planets: []Placement{}}
	}
	return c
}

// MarshalJSON encodes the chart as an object keyed "1".."12".
func (c Chart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.keyed())
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (c *Chart) UnmarshalJSON(data []byte) error {
	var keyed map[string]House
	if err := json.Unmarshal(data, &keyed); err != nil {
		return err
	}
	return c.fromKeyed(keyed)
}

// MarshalYAML encodes the chart as a mapping keyed 1..12.
func (c Chart) MarshalYAML() (interface{}, error) {
	return c.keyed(), nil
}

// UnmarshalYAML decodes the mapping form written by MarshalYAML.
func (c *Chart) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var keyed map[string]House
	if err := unmarshal(&keyed); err != nil {
		return err
	}
	return c.fromKeyed(keyed)
}

func (c Chart) keyed() map[string]House {
	keyed := make(map[string]House, SignCount)
	for i, h := range c.houses {
		if h.Planets == nil {
			h.Planets = []Placement{}
		}
		keyed[strconv.Itoa(i+1)] = h
	}
	return keyed
}

func (c *Chart) fromKeyed(keyed map[string]House) error {
	var out Chart
	for key, h := range keyed {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > SignCount {
			return fmt.Errorf("invalid house key %q", key)
		}
		out.houses[n-1] = h
	}
	*c = out
	return nil
}
