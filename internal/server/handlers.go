package server

import (
	"net/http"
	"time"

	"github.com/matzehuels/jyotish/pkg/buildinfo"
	"github.com/matzehuels/jyotish/pkg/chart"
	"github.com/matzehuels/jyotish/pkg/dasha"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/pipeline"
	"github.com/matzehuels/jyotish/pkg/render/text"
	"github.com/matzehuels/jyotish/pkg/varga"
)

// =============================================================================
// Requests and responses
// =============================================================================

type chartRequest struct {
	ephemeris.BirthData

	// Vargas limits the divisional charts computed. Empty means all.
	Vargas []varga.Code `json:"vargas,omitempty"`

	// Now picks the running dasha. Zero means the time of the request.
	Now time.Time `json:"now,omitzero"`

	Refresh bool `json:"refresh,omitempty"`
}

type basicChartResponse struct {
	Birth    ephemeris.BirthData `json:"birth_data"`
	Timezone string              `json:"timezone"`
	Chart    *chart.Chart        `json:"chart"`
}

type dashaResponse struct {
	Birth   ephemeris.BirthData `json:"birth_data"`
	Dasha   dasha.Timeline      `json:"dasha"`
	Current *dasha.Current      `json:"current_dasha,omitempty"`
}

type synastryRequest struct {
	People  []pipeline.Person `json:"people"`
	Refresh bool              `json:"refresh,omitempty"`
}

type synastryResponse struct {
	*pipeline.SynastryResult
	Text string `json:"text,omitempty"`
}

type alignmentRequest struct {
	Birth   ephemeris.BirthData `json:"birth_data"`
	At      time.Time           `json:"at,omitzero"`
	Refresh bool                `json:"refresh,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": buildinfo.UserAgent(),
	})
}

func (s *Server) vargas(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, varga.Definitions())
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Analyze(r.Context(), req.BirthData, pipeline.Options{
		Now:     s.at(req.Now),
		Codes:   req.Vargas,
		Refresh: req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) basicChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.runner.Chart(r.Context(), req.BirthData, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, basicChartResponse{
		Birth:    req.BirthData,
		Timezone: req.BirthData.Location(s.runner.Zones).String(),
		Chart:    c,
	})
}

func (s *Server) dasha(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Analyze(r.Context(), req.BirthData, pipeline.Options{
		Now:     s.at(req.Now),
		Codes:   []varga.Code{varga.D1},
		Refresh: req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashaResponse{Birth: res.Birth, Dasha: res.Dasha, Current: res.Current})
}

func (s *Server) synastry(w http.ResponseWriter, r *http.Request) {
	var req synastryRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Synastry(r.Context(), req.People, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := synastryResponse{SynastryResult: res}
	if r.URL.Query().Get("format") == "markdown" {
		resp.Text = text.Synastry(res.Members, res.Analysis)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) alignment(w http.ResponseWriter, r *http.Request) {
	var req alignmentRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Alignment(r.Context(), req.Birth, s.at(req.At), req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) at(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}
