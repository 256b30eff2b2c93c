package chart

// PadaCount is the number of navamsa bands (padas) in a sign.
const PadaCount = 9

// padaBands holds the inclusive [lower, upper] bounds of each pada in the
// degrees + minutes/100 scale. Adjacent bands share an endpoint; the first
// matching band wins.
var padaBands = func() [PadaCount][2]Degree {
	lower := [PadaCount]string{"0", "3.2", "6.4", "10", "13.2", "16.4", "20", "23.2", "26.4"}
	upper := [PadaCount]string{"3.2", "6.4", "10", "13.2", "16.4", "20", "23.2", "26.4", "30"}
	var bands [PadaCount][2]Degree
	for i := range bands {
		bands[i] = [2]Degree{DegreeFromString(lower[i]), DegreeFromString(upper[i])}
	}
	return bands
}()

// Pada returns the 1-based band that d falls in, or 0 if it is outside every band.
func Pada(d Degree) int {
	for i, band := range padaBands {
		if d.Between(band[0], band[1]) {
			return i + 1
		}
	}
	return 0
}

// LocateNavamsa returns the house counting starts from and the number of houses
// to count for an item at degree in sign, where currentHouse is the zero-based
// index of the Lagna house holding it.
//
// Movable signs start from the next house, Fixed signs from the ninth and Dual
// signs from the fifth. When no band matches, (1, 1) is returned.
func LocateNavamsa(sign ZodiacSign, degree Degree, currentHouse int) (start, count int) {
	pada := Pada(degree)
	if pada == 0 {
		return 1, 1
	}
	switch Classify(sign) {
	case Movable:
		return currentHouse + 1, pada
	case Fixed:
		return wrapOnce(currentHouse + 9), pada
	case Dual:
		return wrapOnce(currentHouse + 5), pada
	default:
		return 1, 1
	}
}

// CountHouses starts just before start and steps count houses forward,
// wrapping 13 -> 1 at each step, and returns the house reached.
func CountHouses(start, count int) int {
	return wrap(start - 1 + count)
}

func wrapOnce(house int) int {
	if house > SignCount {
		return house - SignCount
	}
	return house
}

// BuildNavamsa derives the Navamsa (D9) chart from a Lagna chart.
//
// Layout comes first: the ascendant's pada picks an anchor Lagna house, whose
// sign rises in the Navamsa chart, and the remaining houses follow in zodiacal
// order. Placement then moves every Lagna placement, ascendant included, into
// the Navamsa house holding the sign of its target Lagna house.
func BuildNavamsa(lagna Chart) Chart {
	first := lagna.House(1)
	start, count := LocateNavamsa(first.Sign, ParsePosition(first.Ascendant), 0)
	anchor := lagna.House(CountHouses(start, count)).Sign

	navamsa := WholeSign(anchor)
	navamsa.House(1).Ascendant = first.Ascendant
	index := signIndex(navamsa)

	for n := 1; n <= SignCount; n++ {
		h := lagna.House(n)
		for _, p := range h.Planets {
			start, count := LocateNavamsa(h.Sign, p.Degree(), n-1)
			target := lagna.House(CountHouses(start, count)).Sign
			if house := index[signSlot(target)]; house != 0 {
				navamsa.Place(house, p.Planet, "")
			}
		}
	}
	return navamsa
}

// signIndex maps each sign to the house holding it in c (0 when absent).
// Slot 0 collects signs outside [1,12].
func signIndex(c Chart) [SignCount + 1]int {
	var index [SignCount + 1]int
	for n := SignCount; n >= 1; n-- {
		index[signSlot(c.House(n).Sign)] = n
	}
	return index
}

func signSlot(s ZodiacSign) int {
	if !s.Valid() {
		return 0
	}
	return int(s)
}
