// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"inkpress/internal/blog"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeRaw writes an already encoded JSON body.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// respond wraps data in a success envelope.
func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondMessage sends a success envelope carrying only a message.
func respondMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// encodeSuccess renders the success envelope for data, for responses that
// are cached before being written.
func encodeSuccess(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(envelope{Success: true, Data: data}); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return buf.Bytes(), nil
}

// statusFor maps a service error to its HTTP status and public label.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, blog.ErrValidation):
		return http.StatusBadRequest, "Validation error"
	case errors.Is(err, blog.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, blog.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, blog.ErrNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// respondError writes the error envelope for err. Server-side failures
// are logged and their details withheld from the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, label := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, status, envelope{Error: label})
		return
	}
	writeJSON(w, status, envelope{Error: label, Message: err.Error()})
}

// decodeJSON reads a single JSON object from the request body into dst.
// Unknown fields, trailing data and oversized bodies are validation
// errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is required", blog.ErrValidation)
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: request body is too large", blog.ErrValidation)
		default:
			return fmt.Errorf("%w: malformed JSON: %s", blog.ErrValidation, err.Error())
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", blog.ErrValidation)
	}
	return nil
}
