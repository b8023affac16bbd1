package dignity

import "github.com/matzehuels/jyotish/pkg/zodiac"

var profiles = [9]Profile{
	zodiac.Sun: {
		Own:           []zodiac.Sign{zodiac.Leo},
		Exaltation:    zodiac.Aries,
		ExaltationDeg: 10,
		Debilitation:  zodiac.Libra,
		Mooltrikona:   &Range{Sign: zodiac.Leo, Start: 0, End: 20},
		Friends:       []zodiac.Planet{zodiac.Moon, zodiac.Mars, zodiac.Jupiter},
		Enemies:       []zodiac.Planet{zodiac.Venus, zodiac.Saturn},
		Neutrals:      []zodiac.Planet{zodiac.Mercury},
	},
	zodiac.Moon: {
		Own:           []zodiac.Sign{zodiac.Cancer},
		Exaltation:    zodiac.Taurus,
		ExaltationDeg: 3,
		Debilitation:  zodiac.Scorpio,
		Mooltrikona:   &Range{Sign: zodiac.Cancer, Start: 4, End: 30},
		Friends:       []zodiac.Planet{zodiac.Sun, zodiac.Mercury},
		Neutrals:      []zodiac.Planet{zodiac.Mars, zodiac.Jupiter, zodiac.Venus, zodiac.Saturn},
	},
	zodiac.Mars: {
		Own:           []zodiac.Sign{zodiac.Aries, zodiac.Scorpio},
		Exaltation:    zodiac.Capricorn,
		ExaltationDeg: 28,
		Debilitation:  zodiac.Cancer,
		Mooltrikona:   &Range{Sign: zodiac.Aries, Start: 0, End: 12},
		Friends:       []zodiac.Planet{zodiac.Sun, zodiac.Moon, zodiac.Jupiter},
		Enemies:       []zodiac.Planet{zodiac.Mercury},
		Neutrals:      []zodiac.Planet{zodiac.Venus, zodiac.Saturn},
	},
	zodiac.Mercury: {
		Own:           []zodiac.Sign{zodiac.Gemini, zodiac.Virgo},
		Exaltation:    zodiac.Virgo,
		ExaltationDeg: 15,
		Debilitation:  zodiac.Pisces,
		Mooltrikona:   &Range{Sign: zodiac.Virgo, Start: 15, End: 20},
		Friends:       []zodiac.Planet{zodiac.Sun, zodiac.Venus},
		Enemies:       []zodiac.Planet{zodiac.Moon},
		Neutrals:      []zodiac.Planet{zodiac.Mars, zodiac.Jupiter, zodiac.Saturn},
	},
	zodiac.Jupiter: {
		Own:           []zodiac.Sign{zodiac.Sagittarius, zodiac.Pisces},
		Exaltation:    zodiac.Cancer,
		ExaltationDeg: 5,
		Debilitation:  zodiac.Capricorn,
		Mooltrikona:   &Range{Sign: zodiac.Sagittarius, Start: 0, End: 10},
		Friends:       []zodiac.Planet{zodiac.Sun, zodiac.Moon, zodiac.Mars},
		Enemies:       []zodiac.Planet{zodiac.Mercury, zodiac.Venus},
		Neutrals:      []zodiac.Planet{zodiac.Saturn},
	},
	zodiac.Venus: {
		Own:           []zodiac.Sign{zodiac.Taurus, zodiac.Libra},
		Exaltation:    zodiac.Pisces,
		ExaltationDeg: 27,
		Debilitation:  zodiac.Virgo,
		Mooltrikona:   &Range{Sign: zodiac.Libra, Start: 0, End: 15},
		Friends:       []zodiac.Planet{zodiac.Mercury, zodiac.Saturn},
		Enemies:       []zodiac.Planet{zodiac.Sun, zodiac.Moon},
		Neutrals:      []zodiac.Planet{zodiac.Mars, zodiac.Jupiter},
	},
	zodiac.Saturn: {
		Own:           []zodiac.Sign{zodiac.Capricorn, zodiac.Aquarius},
		Exaltation:    zodiac.Libra,
		ExaltationDeg: 20,
		Debilitation:  zodiac.Aries,
		Mooltrikona:   &Range{Sign: zodiac.Aquarius, Start: 0, End: 20},
		Friends:       []zodiac.Planet{zodiac.Mercury, zodiac.Venus},
		Enemies:       []zodiac.Planet{zodiac.Sun, zodiac.Moon, zodiac.Mars},
		Neutrals:      []zodiac.Planet{zodiac.Jupiter},
	},
	zodiac.Rahu: {
		Exaltation:    zodiac.Gemini,
		ExaltationDeg: 20,
		Debilitation:  zodiac.Sagittarius,
		Friends:       []zodiac.Planet{zodiac.Mercury, zodiac.Venus, zodiac.Saturn},
		Enemies:       []zodiac.Planet{zodiac.Sun, zodiac.Moon, zodiac.Mars},
		Neutrals:      []zodiac.Planet{zodiac.Jupiter},
	},
	zodiac.Ketu: {
		Exaltation:    zodiac.Sagittarius,
		ExaltationDeg: 20,
		Debilitation:  zodiac.Gemini,
		Friends:       []zodiac.Planet{zodiac.Mercury, zodiac.Venus, zodiac.Saturn},
		Enemies:       []zodiac.Planet{zodiac.Sun, zodiac.Moon, zodiac.Mars},
		Neutrals:      []zodiac.Planet{zodiac.Jupiter},
	},
}
