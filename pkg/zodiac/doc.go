// Package zodiac classifies sidereal ecliptic longitudes into signs,
// degrees within a sign, nakshatras and padas.
//
// # Overview
//
// Every other package in jyotish consumes the types defined here. A
// longitude is a plain float64 in degrees. It is circular, so producers may
// hand out any real number; consumers reduce it with [Normalize] before
// classifying it:
//
//	pos := zodiac.Classify(zodiac.Normalize(lon))
//	fmt.Println(pos.Sign, pos.Degree, pos.Nakshatra.Nakshatra, pos.Nakshatra.Pada)
//
// [Classify] expects its input in [0,360). Anything else is a programming
// error and panics with an error wrapping [ErrNormalization].
//
// # Signs
//
// [Sign] is a zero-based index from [Aries] to [Pisces]. Zero-based index
// parity is inverted with respect to the traditional numbering: [Sign.IsOdd]
// reports true for Aries, Gemini, Leo and so on. [Sign.Modality] groups signs
// into movable, fixed and dual triplets and [Sign.Element] into fire, earth,
// air and water.
//
// # Planets and the Vimshottari sequence
//
// [Planet] enumerates the nine grahas in the conventional order Sun, Moon,
// Mars, Mercury, Jupiter, Venus, Saturn, Rahu and Ketu. [DashaSequence] is the
// fixed 9-lord order of the Vimshottari system; each lord rules three
// nakshatras, so Nakshatra(i).Lord() == DashaSequence[i%9].
//
// # Serialization
//
// Sign, Planet and Nakshatra marshal to and from their names, so they can be
// used as JSON values and map keys.
package zodiac
