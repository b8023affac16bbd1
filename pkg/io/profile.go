package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/ephemeris/static"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Format is a profile file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension. Anything other than
// .json is read as TOML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Profile is one person's birth record.
type Profile struct {
	Label string
	Birth ephemeris.BirthData

	// Positions, when set, are used instead of asking a resolver.
	Positions *ephemeris.Positions
}

type document struct {
	profileFile
	People []profileFile `json:"people,omitempty" toml:"people,omitempty"`
}

type profileFile struct {
	Label     string              `json:"label,omitempty" toml:"label,omitempty"`
	Birth     ephemeris.BirthData `json:"birth" toml:"birth"`
	Positions *positionsFile      `json:"positions,omitempty" toml:"positions,omitempty"`
}

type positionsFile struct {
	Ayanamsa  string              `json:"ayanamsa,omitempty" toml:"ayanamsa,omitempty"`
	Ascendant float64             `json:"ascendant" toml:"ascendant"`
	Bodies    map[string]bodyFile `json:"bodies" toml:"bodies"`
}

type bodyFile struct {
	Longitude float64 `json:"longitude" toml:"longitude"`
	Speed     float64 `json:"speed" toml:"speed"`
}

// ReadProfiles decodes one profile or a group of profiles from r.
//
// ReadProfiles returns an error if:
//   - The input is malformed
//   - A label is empty or too long, or two profiles share a label
//   - Birth data is out of range
//   - Embedded positions name an unknown planet or omit a required one
//
// ReadProfiles does not close r.
func ReadProfiles(r io.Reader, f Format) ([]Profile, error) {
	var doc document
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode json profile")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode toml profile")
		}
	default:
		return nil, jerrors.New(jerrors.ErrCodeInvalidFormat, "unsupported profile format %q", f)
	}

	files := doc.People
	if len(files) == 0 {
		files = []profileFile{doc.profileFile}
	}

	out := make([]Profile, 0, len(files))
	seen := make(map[string]bool, len(files))
	for i, pf := range files {
		p, err := pf.profile()
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i+1, err)
		}
		if seen[p.Label] {
			return nil, jerrors.New(jerrors.ErrCodeInvalidInput, "duplicate label %q", p.Label)
		}
		seen[p.Label] = true
		out = append(out, p)
	}
	return out, nil
}

// LoadProfiles reads the profile file at path. The encoding follows the
// extension.
func LoadProfiles(path string) ([]Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jerrors.Wrap(jerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadProfiles(f, FormatOf(path))
}

// LoadProfile reads a file that must hold exactly one profile.
func LoadProfile(path string) (Profile, error) {
	ps, err := LoadProfiles(path)
	if err != nil {
		return Profile{}, err
	}
	if len(ps) != 1 {
		return Profile{}, jerrors.New(jerrors.ErrCodeInvalidInput, "%s holds %d profiles, want 1", path, len(ps))
	}
	return ps[0], nil
}

func (pf profileFile) profile() (Profile, error) {
	if err := jerrors.ValidateLabel(pf.Label); err != nil {
		return Profile{}, err
	}
	if err := pf.Birth.Validate(); err != nil {
		return Profile{}, fmt.Errorf("%s: %w", pf.Label, err)
	}
	p := Profile{Label: pf.Label, Birth: pf.Birth}
	if pf.Positions == nil {
		return p, nil
	}

	pos := ephemeris.Positions{
		Ayanamsa:  pf.Positions.Ayanamsa,
		Ascendant: pf.Positions.Ascendant,
		Bodies:    make(map[zodiac.Planet]ephemeris.Body, len(pf.Positions.Bodies)),
	}
	for name, b := range pf.Positions.Bodies {
		pl, err := zodiac.ParsePlanet(name)
		if err != nil {
			return Profile{}, jerrors.Wrap(jerrors.ErrCodeUnknownKey, err, "%s positions", pf.Label)
		}
		pos.Bodies[pl] = ephemeris.Body{Longitude: b.Longitude, Speed: b.Speed}
	}
	if err := pos.Check(); err != nil {
		return Profile{}, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "%s positions", pf.Label)
	}
	p.Positions = &pos
	return p, nil
}

// Register adds every embedded position set to r, keyed by the profile's
// birth instant and place.
func Register(r *static.Resolver, zf ephemeris.ZoneFinder, profiles ...Profile) int {
	var n int
	for _, p := range profiles {
		if p.Positions == nil {
			continue
		}
		r.Add(p.Birth.Instant(zf), p.Birth.Latitude, p.Birth.Longitude, *p.Positions)
		n++
	}
	return n
}

// WriteProfile encodes p as TOML.
func WriteProfile(p Profile, w io.Writer) error {
	pf := profileFile{Label: p.Label, Birth: p.Birth}
	if p.Positions != nil {
		pf.Positions = &positionsFile{
			Ayanamsa:  p.Positions.Ayanamsa,
			Ascendant: p.Positions.Ascendant,
			Bodies:    make(map[string]bodyFile, len(p.Positions.Bodies)),
		}
		for pl, b := range p.Positions.Bodies {
			pf.Positions.Bodies[pl.String()] = bodyFile{Longitude: b.Longitude, Speed: b.Speed}
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(pf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
