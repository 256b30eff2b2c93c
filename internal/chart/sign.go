// Package chart implements the whole-sign chart model and the derivation of the
// Moon (Chandra) and Navamsa (D9) charts from a Lagna chart.
//
// Everything in this package is pure: builders take a chart by value, allocate a
// new one and never touch their input. The lookup tables below are initialised
// once and never written afterwards, so the builders are safe for concurrent use.
package chart

import "fmt"

// SignCount is the number of zodiac signs, and therefore of houses in a chart.
const SignCount = 12

// ZodiacSign is a zodiac sign number in [1,12]. Zero means "unknown".
type ZodiacSign int

// Zodiac signs.
const (
	Aries ZodiacSign = iota + 1
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [SignCount + 1]string{
	"", "Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Valid reports whether s is in [1,12].
func (s ZodiacSign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// Name returns the English sign name, or "" for an invalid sign.
func (s ZodiacSign) Name() string {
	if !s.Valid() {
		return ""
	}
	return signNames[s]
}

func (s ZodiacSign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ZodiacSign(%d)", int(s))
	}
	return signNames[s]
}

// Advance returns the sign n steps after s, wrapping 12 -> 1.
func (s ZodiacSign) Advance(n int) ZodiacSign {
	return ZodiacSign(wrap(int(s) + n))
}

// Modality returns the sign's modality.
func (s ZodiacSign) Modality() Modality {
	return Classify(s)
}

// Modality is the Movable/Fixed/Dual classification of a sign.
type Modality int

const (
	// ModalityUnknown is only returned for signs outside [1,12].
	ModalityUnknown Modality = iota
	Movable
	Fixed
	Dual
)

func (m Modality) String() string {
	switch m {
	case Movable:
		return "Movable"
	case Fixed:
		return "Fixed"
	case Dual:
		return "Dual"
	default:
		return "Unknown"
	}
}

// modalities is indexed by sign number: Movable={1,4,7,10}, Fixed={2,5,8,11}, Dual={3,6,9,12}.
var modalities = [SignCount + 1]Modality{
	ModalityUnknown,
	Movable, Fixed, Dual,
	Movable, Fixed, Dual,
	Movable, Fixed, Dual,
	Movable, Fixed, Dual,
}

// Classify returns the modality of sign.
func Classify(sign ZodiacSign) Modality {
	if !sign.Valid() {
		return ModalityUnknown
	}
	return modalities[sign]
}

// wrap folds any integer onto the 1-based cycle 1..12.
func wrap(n int) int {
	n = (n - 1) % SignCount
	if n < 0 {
		n += SignCount
	}
	return n + 1
}
