package varga

import "github.com/matzehuels/jyotish/pkg/zodiac"

var navamsa = Quadruplicity{
	Fire:  At(zodiac.Aries),
	Earth: At(zodiac.Capricorn),
	Air:   At(zodiac.Libra),
	Water: At(zodiac.Cancer),
}

var definitions = []Definition{
	{D1, "Rasi", "Main birth chart - overall life", Self{}},
	{D2, "Hora", "Wealth and finances", Hora{}},
	{D3, "Drekkana", "Siblings and courage", OddEven{Odd: From(0), Even: From(0), Step: 4}},
	{D4, "Chaturthamsa", "Fortune and property", Triplicity{Movable: From(0), Fixed: From(3), Dual: From(6)}},
	{D7, "Saptamsa", "Children and progeny", OddEven{Odd: From(0), Even: From(6)}},
	{D9, "Navamsa", "Marriage and dharma", navamsa},
	{D10, "Dasamsa", "Career and profession", OddEven{Odd: From(0), Even: From(8)}},
	{D12, "Dwadasamsa", "Parents and ancestry", OddEven{Odd: From(0), Even: From(0)}},
	{D16, "Shodasamsa", "Vehicles and comforts", Triplicity{Movable: At(zodiac.Aries), Fixed: At(zodiac.Leo), Dual: At(zodiac.Sagittarius)}},
	{D20, "Vimsamsa", "Spiritual progress", Triplicity{Movable: At(zodiac.Aries), Fixed: At(zodiac.Sagittarius), Dual: At(zodiac.Leo)}},
	{D24, "Chaturvimsamsa", "Learning and education", OddEven{Odd: At(zodiac.Leo), Even: At(zodiac.Cancer)}},
	{D27, "Saptavimsamsa", "Strengths and weaknesses", Quadruplicity{
		Fire:  At(zodiac.Aries),
		Earth: At(zodiac.Cancer),
		Air:   At(zodiac.Libra),
		Water: At(zodiac.Capricorn),
	}},
	{D30, "Trimsamsa", "Evils and misfortunes", Trimsamsa{
		Odd: []Segment{
			{5, zodiac.Aries}, {5, zodiac.Aquarius}, {8, zodiac.Sagittarius}, {7, zodiac.Gemini}, {5, zodiac.Libra},
		},
		Even: []Segment{
			{5, zodiac.Taurus}, {7, zodiac.Virgo}, {8, zodiac.Pisces}, {5, zodiac.Capricorn}, {5, zodiac.Scorpio},
		},
	}},
	{D40, "Khavedamsa", "Auspicious effects", OddEven{Odd: At(zodiac.Aries), Even: At(zodiac.Libra)}},
	{D45, "Akshavedamsa", "General indications", Triplicity{Movable: At(zodiac.Aries), Fixed: At(zodiac.Leo), Dual: At(zodiac.Sagittarius)}},
	{D60, "Shashtiamsa", "Past life karma", OddEven{Odd: At(zodiac.Aries), Even: At(zodiac.Libra)}},
}

var index = func() map[Code]int {
	m := make(map[Code]int, len(definitions))
	for i, d := range definitions {
		m[d.Code] = i
	}
	return m
}()
