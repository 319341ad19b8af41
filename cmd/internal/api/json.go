package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type dataResponse struct {
	Data any `json:"data"`
}

type errorsResponse struct {
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData wraps a successful payload in the {"data": ...} envelope.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataResponse{Data: v})
}

// writeFieldErrors emits the aggregated {"errors": {field: [msgs]}} envelope.
func writeFieldErrors(w http.ResponseWriter, status int, errs FieldErrors) {
	writeJSON(w, status, errorsResponse{Errors: errs})
}

// writeMessageError emits a single non-field-scoped error under the "message" key.
func writeMessageError(w http.ResponseWriter, status int, msg string) {
	writeFieldErrors(w, status, FieldErrors{"message": {msg}})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure there is no extra data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after JSON object")
	}
	return nil
}
