// internal/submissions/donation/handler_test.go
package donation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func (m *MockStore) InsertDonation(ctx context.Context, d *models.Donation) (int64, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(int64), args.Error(1)
}

func newTestHandler(t *testing.T) (*Handler, *MockStore) {
	store := new(MockStore)
	return NewHandler(store, submissions.Deps{Logger: logger.NewTestLogger(t)}), store
}

func post(t *testing.T, h http.Handler, body map[string]interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/donation", strings.NewReader(string(data))))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

// ==========================
// Amount Normalization Tests
// ==========================

func TestHandler_AcceptedAmounts(t *testing.T) {
	tests := []struct {
		amount interface{}
		want   float64
	}{
		{"$25", 25},
		{"25", 25},
		{"$100.50", 100.5},
		{"1,000", 1000},
		{42.75, 42.75},
		{"$0.01", 0.01},
		{"10.006", 10.01},
		{"9,999,999,999.99", 9999999999.99},
	}
	for _, tt := range tests {
		h, store := newTestHandler(t)
		store.On("InsertDonation", mock.Anything, mock.MatchedBy(func(d *models.Donation) bool {
			return d.Amount == tt.want && d.PaymentMethod == "card"
		})).Return(int64(3), nil)

		rec, resp := post(t, h, map[string]interface{}{"amount": tt.amount, "payment_method": "card"})

		assert.Equal(t, http.StatusOK, rec.Code, "amount %v", tt.amount)
		assert.Equal(t, "Donation recorded successfully", resp["message"])
		assert.Equal(t, float64(3), resp["donation_id"])
		store.AssertExpectations(t)
	}
}

func TestHandler_RejectedAmounts(t *testing.T) {
	for _, amount := range []interface{}{"$0", "free", "", "0.00", -5.0, "$0.001", 0.004, "10000000000", 1e10} {
		h, store := newTestHandler(t)

		rec, resp := post(t, h, map[string]interface{}{"amount": amount, "payment_method": "card"})

		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %v", amount)
		assert.Equal(t, "Valid amount and payment method are required", resp["error"])
		store.AssertNotCalled(t, "InsertDonation", mock.Anything, mock.Anything)
	}
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_PaymentMethodRequired(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := post(t, h, map[string]interface{}{"amount": "$50"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Valid amount and payment method are required", resp["error"])
}

func TestHandler_UnknownPaymentMethod(t *testing.T) {
	h, _ := newTestHandler(t)

	_, resp := post(t, h, map[string]interface{}{"amount": "$50", "payment_method": "bitcoin"})

	assert.Equal(t, "Invalid payment method", resp["error"])
}

func TestHandler_OptionalEmailValidatedWhenPresent(t *testing.T) {
	h, store := newTestHandler(t)

	rec, resp := post(t, h, map[string]interface{}{"amount": "$50", "payment_method": "zelle", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", resp["error"])

	store.On("InsertDonation", mock.Anything, mock.Anything).Return(int64(8), nil)
	rec, _ = post(t, h, map[string]interface{}{"amount": "$50", "payment_method": "zelle", "email": ""})
	assert.Equal(t, http.StatusOK, rec.Code)
}
