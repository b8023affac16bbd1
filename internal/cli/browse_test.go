package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/varga"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

func testBrowser(t *testing.T) VargaBrowser {
	t.Helper()
	c, err := chart.New(ephemeris.Positions{
		Ascendant: 95.5,
		Bodies: map[zodiac.Planet]ephemeris.Body{
			zodiac.Sun: {Longitude: 40.2}, zodiac.Moon: {Longitude: 15.0},
			zodiac.Mars: {Longitude: 298.0}, zodiac.Mercury: {Longitude: 165.5},
			zodiac.Jupiter: {Longitude: 95.0}, zodiac.Venus: {Longitude: 357.0},
			zodiac.Saturn: {Longitude: 200.0}, zodiac.Rahu: {Longitude: 80.0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewVargaBrowser("Asha", &pipeline.Result{Chart: c, Vargas: varga.ComputeAll(c)})
}

func press(m VargaBrowser, keys ...string) VargaBrowser {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(VargaBrowser)
	}
	return m
}

func TestVargaBrowserOrder(t *testing.T) {
	m := testBrowser(t)
	if len(m.Vargas) != 16 {
		t.Fatalf("vargas = %d, want 16", len(m.Vargas))
	}
	if m.Vargas[0].Code != varga.D1 || m.Vargas[15].Code != varga.D60 {
		t.Errorf("order = %s..%s, want D1..D60", m.Vargas[0].Code, m.Vargas[15].Code)
	}
}

func TestVargaBrowserNavigation(t *testing.T) {
	m := testBrowser(t)

	m = press(m, "k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first chart: %d", m.Cursor)
	}
	m = press(m, "j", "j", "j", "j", "j")
	if m.Cursor != 5 || m.Vargas[m.Cursor].Code != varga.D9 {
		t.Errorf("cursor = %d (%s), want 5 (D9)", m.Cursor, m.Vargas[m.Cursor].Code)
	}

	m = press(m, "enter")
	if !m.Open || !strings.Contains(m.View(), "Navamsa") {
		t.Errorf("enter did not open D9:\n%s", m.View())
	}
	m = press(m, "esc")
	if m.Open || !strings.Contains(m.View(), "[6/16]") {
		t.Errorf("esc did not return to the list:\n%s", m.View())
	}
}

func TestVargaBrowserScrolls(t *testing.T) {
	m := testBrowser(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(VargaBrowser)
	if m.Height != 5 {
		t.Fatalf("height = %d, want 5", m.Height)
	}

	for range 15 {
		m = press(m, "j")
	}
	if m.Cursor != 15 || m.Offset != 11 {
		t.Errorf("cursor, offset = %d, %d, want 15, 11", m.Cursor, m.Offset)
	}
	if !strings.Contains(m.View(), "D60") || strings.Contains(m.View(), "Rasi") {
		t.Errorf("view does not follow the cursor:\n%s", m.View())
	}
}

func TestVargaBrowserQuit(t *testing.T) {
	m := testBrowser(t)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q did not quit")
	}
}
