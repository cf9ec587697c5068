package server

import (
	"encoding/json"
	"errors"
	"net/http"

	dcerrors "github.com/matzehuels/dagcheck/pkg/errors"
)

type errorBody struct {
	Code    dcerrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
			Code:    dcerrors.ErrCodeInvalidInput,
			Message: "request body too large",
		})
		return
	}

	status := dcerrors.HTTPStatus(err)
	code := dcerrors.GetCode(err)
	msg := dcerrors.UserMessage(err)
	if code == "" {
		code = dcerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, errorBody{Code: code, Message: msg})
}

// decode reads a JSON body limited to MaxBodyBytes into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dcerrors.Wrap(dcerrors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}
