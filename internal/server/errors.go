package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error struct {
		Code    jerrors.Code `json:"code"`
		Message string       `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) (int, jerrors.Code) {
	code := jerrors.GetCode(err)
	if code == "" {
		switch {
		case errors.Is(err, zodiac.ErrUnknownKey):
			code = jerrors.ErrCodeUnknownKey
		case errors.Is(err, context.DeadlineExceeded):
			code = jerrors.ErrCodeTimeout
		default:
			code = jerrors.ErrCodeInternal
		}
	}

	switch code {
	case jerrors.ErrCodeInvalidInput, jerrors.ErrCodeInvalidFormat, jerrors.ErrCodeUnknownKey:
		return http.StatusBadRequest, code
	case jerrors.ErrCodeNotFound:
		return http.StatusNotFound, code
	case jerrors.ErrCodeUpstreamResolution, jerrors.ErrCodeNetwork, jerrors.ErrCodeRateLimited:
		return http.StatusBadGateway, code
	case jerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	default:
		return http.StatusInternalServerError, code
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	var body errorBody
	body.Error.Code = code
	body.Error.Message = jerrors.UserMessage(err)
	body.RequestID = RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request", body.RequestID, "err", err)
		if code == jerrors.ErrCodeInternal {
			body.Error.Message = "internal error"
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// decode reads a JSON body into v, rejecting unknown fields and trailing
// data.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode request")
	}
	if dec.More() {
		return jerrors.New(jerrors.ErrCodeInvalidFormat, "decode request: unexpected data after JSON body")
	}
	return nil
}
