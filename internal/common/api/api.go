// Package api holds the request and response plumbing shared by the
// submission endpoints.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "cac-forms/internal/common/errors"
)

// MaxBodyBytes bounds a decoded submission body.
const MaxBodyBytes = 64 << 10

// SetCORS writes the JSON content type and the permissive cross-origin
// headers every endpoint returns.
func SetCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandlePreflight answers an OPTIONS request with an empty 200 and reports
// whether it did.
func HandlePreflight(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	SetCORS(w)
	w.WriteHeader(http.StatusOK)
	return true
}

// RequirePost returns METHOD_NOT_ALLOWED for anything but POST.
func RequirePost(r *http.Request) error {
	if r.Method != http.MethodPost {
		return apperrors.NewMethodNotAllowedError(r.Method)
	}
	return nil
}

// WriteJSON encodes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Success writes {success:true, message, <idField>: id}.
func Success(w http.ResponseWriter, message, idField string, id int64) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		idField:   id,
	})
}

// DecodeObject reads the body as a JSON object. Empty bodies, malformed JSON
// and non-object documents are all INVALID_INPUT.
func DecodeObject(r *http.Request) (map[string]interface{}, error) {
	if r.Body == nil {
		return nil, apperrors.NewInvalidJSONError(nil)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, apperrors.NewInvalidJSONError(err)
	}
	if len(raw) > MaxBodyBytes {
		return nil, apperrors.NewInvalidJSONError(fmt.Errorf("body exceeds %d bytes", MaxBodyBytes))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperrors.NewInvalidJSONError(nil)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewInvalidJSONError(err)
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, apperrors.NewInvalidJSONError(fmt.Errorf("expected a JSON object, got %T", doc))
	}
	return obj, nil
}
