package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jyotish/pkg/ephemeris"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	jio "github.com/matzehuels/jyotish/pkg/io"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// birthFlags describe one birth inline, as an alternative to a profile file.
type birthFlags struct {
	label string
	date  string
	clock string
	lat   float64
	lon   float64
	tz    string
}

func (f *birthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.label, "label", "", "profile label (selects one person from a group file)")
	cmd.Flags().StringVar(&f.date, "date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.clock, "time", "12:00", "local birth time (HH:MM)")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "birth latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "birth longitude")
	cmd.Flags().StringVar(&f.tz, "tz", "", "IANA timezone (default: looked up from coordinates)")
}

// profile builds a profile from the flags.
func (f birthFlags) profile() (jio.Profile, error) {
	d, err := time.Parse(dateLayout, f.date)
	if err != nil {
		return jio.Profile{}, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "--date must be YYYY-MM-DD")
	}
	t, err := time.Parse(timeLayout, f.clock)
	if err != nil {
		return jio.Profile{}, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "--time must be HH:MM")
	}
	if f.tz != "" {
		if _, err := time.LoadLocation(f.tz); err != nil {
			return jio.Profile{}, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "--tz")
		}
	}

	label := f.label
	if label == "" {
		label = "Native"
	}
	b := ephemeris.BirthData{
		Year: d.Year(), Month: int(d.Month()), Day: d.Day(),
		Hour: t.Hour(), Minute: t.Minute(),
		Latitude: f.lat, Longitude: f.lon,
		Timezone: f.tz,
	}
	if err := b.Validate(); err != nil {
		return jio.Profile{}, err
	}
	return jio.Profile{Label: label, Birth: b}, nil
}

// loadProfiles reads every profile file in paths, or builds one profile
// from flags when no path is given.
func loadProfiles(paths []string, f birthFlags) ([]jio.Profile, error) {
	if len(paths) == 0 {
		if f.date == "" {
			return nil, jerrors.New(jerrors.ErrCodeInvalidInput,
				"no birth data: pass a profile file or --date, --time, --lat and --lon")
		}
		p, err := f.profile()
		if err != nil {
			return nil, err
		}
		return []jio.Profile{p}, nil
	}

	var all []jio.Profile
	seen := make(map[string]string)
	for _, path := range paths {
		ps, err := jio.LoadProfiles(path)
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			if prev, dup := seen[p.Label]; dup {
				return nil, jerrors.New(jerrors.ErrCodeInvalidInput,
					"label %q appears in both %s and %s", p.Label, prev, path)
			}
			seen[p.Label] = path
		}
		all = append(all, ps...)
	}
	return all, nil
}

// selectProfile picks the profile named label, or the only profile when
// label is empty.
func selectProfile(ps []jio.Profile, label string) (jio.Profile, error) {
	if label != "" {
		for _, p := range ps {
			if strings.EqualFold(p.Label, label) {
				return p, nil
			}
		}
		return jio.Profile{}, jerrors.New(jerrors.ErrCodeNotFound, "no profile labeled %q", label)
	}
	if len(ps) != 1 {
		labels := make([]string, len(ps))
		for i, p := range ps {
			labels[i] = p.Label
		}
		return jio.Profile{}, jerrors.New(jerrors.ErrCodeInvalidInput,
			"%d profiles given, pick one with --label (%s)", len(ps), strings.Join(labels, ", "))
	}
	return ps[0], nil
}

// loadOne combines loadProfiles and selectProfile. The full list is
// returned so that embedded positions of every profile can be registered.
func loadOne(paths []string, f birthFlags) (jio.Profile, []jio.Profile, error) {
	ps, err := loadProfiles(paths, f)
	if err != nil {
		return jio.Profile{}, nil, err
	}
	label := f.label
	if len(paths) == 0 {
		label = ""
	}
	p, err := selectProfile(ps, label)
	return p, ps, err
}

// parseAt parses an instant given as RFC 3339, "YYYY-MM-DDTHH:MM" or
// "YYYY-MM-DD" (local midnight). Empty means now.
func parseAt(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{dateLayout + "T" + timeLayout, dateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, jerrors.New(jerrors.ErrCodeInvalidInput,
		"--at %q: want RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD", s)
}
