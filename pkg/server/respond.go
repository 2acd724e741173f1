package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

// maxBodyBytes bounds request bodies. Edge strings of a large grid are a
// few megabytes.
const maxBodyBytes = 64 << 20

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

// statusOf maps an error to an HTTP status.
func statusOf(err error) int {
	switch {
	case apperr.IsClientError(err):
		return http.StatusBadRequest
	case apperr.Is(err, apperr.ErrCodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	msg := apperr.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("handler failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into v. An empty body leaves v untouched when
// optional is set.
func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
