package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "cac-forms/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlePreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	handled := HandlePreflight(rec, httptest.NewRequest(http.MethodOptions, "/api/volunteer", nil))

	assert.True(t, handled)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	assert.False(t, HandlePreflight(rec, httptest.NewRequest(http.MethodPost, "/api/volunteer", nil)))
}

func TestRequirePost(t *testing.T) {
	assert.NoError(t, RequirePost(httptest.NewRequest(http.MethodPost, "/", nil)))

	err := RequirePost(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMethodNotAllowed))
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "Donation recorded successfully", "donation_id", 12)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Donation recorded successfully", body["message"])
	assert.Equal(t, float64(12), body["donation_id"])
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"email":"a@b.com"}`, false},
		{"empty", ``, true},
		{"whitespace", "  \n", true},
		{"malformed", `{"email":`, true},
		{"array", `[1,2]`, true},
		{"string", `"hello"`, true},
		{"null", `null`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			obj, err := DecodeObject(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
				assert.Equal(t, "Invalid JSON input", apperrors.From(err).Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@b.com", obj["email"])
		})
	}
}

func TestDecodeObject_TooLarge(t *testing.T) {
	body := `{"message":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	_, err := DecodeObject(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
}
