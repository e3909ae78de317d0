// internal/submissions/volunteer/handler_test.go
package volunteer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/models"
	"cac-forms/internal/submissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertVolunteer(ctx context.Context, app *models.VolunteerApplication) (int64, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(int64), args.Error(1)
}

func newTestHandler(t *testing.T) (*Handler, *MockStore) {
	store := new(MockStore)
	return NewHandler(store, submissions.Deps{Logger: logger.NewTestLogger(t)}), store
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"name":         "Sam Rivera",
		"email":        "sam@example.org",
		"service_area": "food-pantry",
		"availability": []interface{}{"Monday", "Saturday"},
	}
}

func post(t *testing.T, h http.Handler, body map[string]interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/volunteer", strings.NewReader(string(data))))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Success_AvailabilityVerbatim(t *testing.T) {
	h, store := newTestHandler(t)

	store.On("InsertVolunteer", mock.Anything, mock.MatchedBy(func(app *models.VolunteerApplication) bool {
		return assert.ObjectsAreEqual([]string{"Monday", "Saturday"}, app.Availability) &&
			app.ServiceArea == "food-pantry" && app.Phone == ""
	})).Return(int64(11), nil)

	rec, resp := post(t, h, validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Volunteer application submitted successfully", resp["message"])
	assert.Equal(t, float64(11), resp["volunteer_id"])
	store.AssertExpectations(t)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/volunteer", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_NameAndEmailRequired(t *testing.T) {
	h, store := newTestHandler(t)

	body := validBody()
	body["name"] = ""
	rec, resp := post(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name and email are required", resp["error"])
	store.AssertNotCalled(t, "InsertVolunteer", mock.Anything, mock.Anything)
}

func TestHandler_EmptyAvailabilityRejected(t *testing.T) {
	h, store := newTestHandler(t)

	body := validBody()
	body["availability"] = []interface{}{}
	rec, resp := post(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select at least one day of availability", resp["error"])
	store.AssertNotCalled(t, "InsertVolunteer", mock.Anything, mock.Anything)
}

func TestHandler_AvailabilityShape(t *testing.T) {
	h, _ := newTestHandler(t)

	body := validBody()
	body["availability"] = "Monday"
	rec, resp := post(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, submissions.ShapeMessage, resp["error"])

	body["availability"] = []interface{}{"Someday"}
	rec, resp = post(t, h, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Availability must list days of the week", resp["error"])
}

func TestHandler_InvalidEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	body := validBody()
	body["email"] = "a@b"
	rec, resp := post(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", resp["error"])
}

func TestHandler_UnknownServiceArea(t *testing.T) {
	h, _ := newTestHandler(t)

	body := validBody()
	body["service_area"] = "kitchen"
	_, resp := post(t, h, body)

	assert.Equal(t, "Invalid service area", resp["error"])
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_StorageFailure(t *testing.T) {
	h, store := newTestHandler(t)

	store.On("InsertVolunteer", mock.Anything, mock.Anything).
		Return(int64(0), apperrors.NewStorageWriteFailedError("support", errors.New("disk full")))

	rec, resp := post(t, h, validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperrors.GenericStorageMessage, resp["error"])
	assert.NotContains(t, rec.Body.String(), "disk full")
}

func TestMissingMessage(t *testing.T) {
	assert.Equal(t, identityMissingMessage, missingMessage([]string{"email", "availability"}))
	assert.Equal(t, availabilityMissingMessage, missingMessage([]string{"availability"}))
}
