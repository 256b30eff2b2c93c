package chart

// BuildMoon derives the Moon (Chandra) chart: a whole-sign chart whose first
// house is the sign the Moon occupies in the Lagna chart.
//
// The Lagna ascendant marker is copied to the house holding the Lagna rising
// sign, and every Lagna placement moves to the house with the same sign.
//
// The Lagna chart must contain a Moon. Without one the anchor sign is 0, house 1
// carries sign 0 and placements in the twelfth sign have nowhere to go; callers
// validate their input before deriving.
func BuildMoon(lagna Chart) Chart {
	var anchor ZodiacSign
	if n := lagna.Find(Moon); n != 0 {
		anchor = lagna.House(n).Sign
	}

	moon := WholeSign(anchor)
	index := signIndex(moon)

	first := lagna.House(1)
	if house := index[signSlot(first.Sign)]; house != 0 && first.Ascendant != "" {
		moon.House(house).Ascendant = first.Ascendant
	}

	for n := 1; n <= SignCount; n++ {
		h := lagna.House(n)
		if len(h.Planets) == 0 {
			continue
		}
		house := index[signSlot(h.Sign)]
		if house == 0 {
			continue
		}
		for _, p := range h.Planets {
			moon.Place(house, p.Planet, "")
		}
	}
	return moon
}
