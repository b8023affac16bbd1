package zodiac

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{15, 15},
		{360, 0},
		{370, 10},
		{-10, 350},
		{720.5, 0.5},
		{-1e-20, 0},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassifyRanges(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 0.37 {
		p := Classify(lon)
		if p.Sign < Aries || p.Sign > Pisces {
			t.Fatalf("Classify(%v).Sign = %d, out of range", lon, p.Sign)
		}
		if p.Degree < 0 || p.Degree >= 30 {
			t.Fatalf("Classify(%v).Degree = %v, out of range", lon, p.Degree)
		}
		if p.Nakshatra.Nakshatra < 0 || p.Nakshatra.Nakshatra > 26 {
			t.Fatalf("Classify(%v).Nakshatra = %d, out of range", lon, p.Nakshatra.Nakshatra)
		}
		if p.Nakshatra.Pada < 1 || p.Nakshatra.Pada > 4 {
			t.Fatalf("Classify(%v).Pada = %d, out of range", lon, p.Nakshatra.Pada)
		}
		if p.Nakshatra.Fraction < 0 || p.Nakshatra.Fraction >= 1 {
			t.Fatalf("Classify(%v).Fraction = %v, out of range", lon, p.Nakshatra.Fraction)
		}
	}
}

func TestClassifyUpperEdge(t *testing.T) {
	lon := math.Nextafter(360, 0)
	p := Classify(lon)
	if p.Sign != Pisces {
		t.Errorf("Sign = %v, want Pisces", p.Sign)
	}
	if p.Nakshatra.Nakshatra != 26 || p.Nakshatra.Pada != 4 {
		t.Errorf("Nakshatra = %v pada %d, want Revati pada 4", p.Nakshatra.Nakshatra, p.Nakshatra.Pada)
	}
}

func TestClassifyFullCircleAfterNormalize(t *testing.T) {
	p := Classify(Normalize(360))
	if p.Sign != Aries || p.Nakshatra.Nakshatra != 0 {
		t.Errorf("Classify(Normalize(360)) = %v/%v, want Aries/Ashwini", p.Sign, p.Nakshatra.Nakshatra)
	}
}

func TestClassifyPanicsOnUnnormalized(t *testing.T) {
	for _, lon := range []float64{-0.5, 360, 400, math.NaN()} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("Classify(%v) did not panic", lon)
					return
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrNormalization) {
					t.Errorf("Classify(%v) panic = %v, want ErrNormalization", lon, r)
				}
			}()
			Classify(lon)
		}()
	}
}

func TestNakshatraScenario(t *testing.T) {
	p := PlaceNakshatra(15.0)
	if p.Nakshatra != 1 {
		t.Fatalf("index = %d, want 1", p.Nakshatra)
	}
	if p.Nakshatra.String() != "Bharani" {
		t.Errorf("name = %s, want Bharani", p.Nakshatra)
	}
	if p.Lord != Venus {
		t.Errorf("lord = %s, want Venus", p.Lord)
	}
	if math.Abs(p.Fraction-0.125) > 1e-9 {
		t.Errorf("fraction = %v, want 0.125", p.Fraction)
	}
	if p.Pada != 1 {
		t.Errorf("pada = %d, want 1", p.Pada)
	}
}

func TestNakshatraLordsCycleDashaSequence(t *testing.T) {
	for i := 0; i < NakshatraCount; i++ {
		if got, want := Nakshatra(i).Lord(), DashaSequence[i%9]; got != want {
			t.Errorf("Nakshatra(%d).Lord() = %s, want %s", i, got, want)
		}
	}
}

func TestDashaYearsSumToCycle(t *testing.T) {
	var sum float64
	for _, p := range DashaSequence {
		sum += p.DashaYears()
	}
	if sum != DashaCycleYears {
		t.Errorf("sum of dasha years = %v, want %v", sum, DashaCycleYears)
	}
}

func TestSignGroups(t *testing.T) {
	tests := []struct {
		sign     Sign
		odd      bool
		modality Modality
		element  Element
		ruler    Planet
	}{
		{Aries, true, Movable, Fire, Mars},
		{Taurus, false, Fixed, Earth, Venus},
		{Gemini, true, Dual, Air, Mercury},
		{Cancer, false, Movable, Water, Moon},
		{Leo, true, Fixed, Fire, Sun},
		{Capricorn, false, Movable, Earth, Saturn},
		{Pisces, false, Dual, Water, Jupiter},
	}
	for _, tt := range tests {
		t.Run(tt.sign.String(), func(t *testing.T) {
			if tt.sign.IsOdd() != tt.odd {
				t.Errorf("IsOdd() = %v, want %v", tt.sign.IsOdd(), tt.odd)
			}
			if tt.sign.Modality() != tt.modality {
				t.Errorf("Modality() = %v, want %v", tt.sign.Modality(), tt.modality)
			}
			if tt.sign.Element() != tt.element {
				t.Errorf("Element() = %v, want %v", tt.sign.Element(), tt.element)
			}
			if tt.sign.Ruler() != tt.ruler {
				t.Errorf("Ruler() = %v, want %v", tt.sign.Ruler(), tt.ruler)
			}
		})
	}
}

func TestSignAdd(t *testing.T) {
	if got := Pisces.Add(1); got != Aries {
		t.Errorf("Pisces.Add(1) = %v, want Aries", got)
	}
	if got := Aries.Add(-1); got != Pisces {
		t.Errorf("Aries.Add(-1) = %v, want Pisces", got)
	}
	if got := Leo.Add(25); got != Virgo {
		t.Errorf("Leo.Add(25) = %v, want Virgo", got)
	}
}

func TestHouse(t *testing.T) {
	for asc := Aries; asc <= Pisces; asc++ {
		for s := Aries; s <= Pisces; s++ {
			h := House(s, asc)
			if h < 1 || h > 12 {
				t.Fatalf("House(%v, %v) = %d", s, asc, h)
			}
		}
	}
	if got := House(Aries, Pisces); got != 2 {
		t.Errorf("House(Aries, Pisces) = %d, want 2", got)
	}
	if got := House(Leo, Leo); got != 1 {
		t.Errorf("House(Leo, Leo) = %d, want 1", got)
	}
}

func TestParse(t *testing.T) {
	if p, err := ParsePlanet("jupiter"); err != nil || p != Jupiter {
		t.Errorf("ParsePlanet(jupiter) = %v, %v", p, err)
	}
	if _, err := ParsePlanet("Pluto"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("ParsePlanet(Pluto) error = %v, want ErrUnknownKey", err)
	}
	if s, err := ParseSign("Sagittarius"); err != nil || s != Sagittarius {
		t.Errorf("ParseSign(Sagittarius) = %v, %v", s, err)
	}
	if n, err := ParseNakshatra("purva ashadha"); err != nil || n != 19 {
		t.Errorf("ParseNakshatra(purva ashadha) = %v, %v", n, err)
	}
}

func TestJSONNames(t *testing.T) {
	data, err := json.Marshal(map[Planet]Sign{Sun: Leo, Ketu: Aquarius})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"Ketu":"Aquarius","Sun":"Leo"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back map[Planet]Sign
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back[Ketu] != Aquarius {
		t.Errorf("back[Ketu] = %v, want Aquarius", back[Ketu])
	}
}
