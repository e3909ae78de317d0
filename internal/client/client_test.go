package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cac-forms/internal/common/config"
	apphttp "cac-forms/internal/common/http"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestClient(t *testing.T, srv *httptest.Server, offline bool) *Client {
	return NewWithHTTP(Config{BaseURL: srv.URL, OfflineMode: offline}, apphttp.NewClientWith(srv.Client()), logger.NewTestLogger(t))
}

// unreachableURL returns the address of a server that has already shut down.
func unreachableURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// ==========================
// Success Path Tests
// ==========================

func TestSubmit_Success(t *testing.T) {
	var gotPath, gotContentType, gotRequestID string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Volunteer application submitted successfully","volunteer_id":17}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, false)
	res := c.Submit(context.Background(), Volunteer, models.VolunteerPayload{
		Name:         "Sam",
		Email:        "sam@example.org",
		Availability: []string{"Monday", "Saturday"},
	})

	assert.True(t, res.Success)
	assert.Equal(t, int64(17), res.ID)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Volunteer application submitted successfully", res.Message)
	assert.Equal(t, "/api/volunteer", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	_, err := uuid.Parse(gotRequestID)
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{"Monday", "Saturday"}, gotBody["availability"])
}

func TestSubmit_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":"This email is already subscribed"}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv, true).Submit(context.Background(), MailingList, models.MailingListPayload{Email: "a@b.com"})

	assert.False(t, res.Success, "offline mode never masks a server answer")
	assert.False(t, res.Offline)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "This email is already subscribed", res.Error)
}

func TestSubmit_FieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"Invalid email format","errors":{"email":"Invalid email format"}}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv, false).Submit(context.Background(), HelpRequest, models.HelpRequestPayload{})

	assert.False(t, res.Success)
	assert.Equal(t, map[string]string{"email": "Invalid email format"}, res.Errors)
}

func TestSubmit_FailureWithoutMessageGetsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv, false).Submit(context.Background(), Donation, models.DonationPayload{})

	assert.False(t, res.Success)
	assert.Equal(t, "Failed to record donation", res.Error)
}

// ==========================
// Transport Failure Tests
// ==========================

func TestSubmit_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>502 Bad Gateway</html>`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv, false).Submit(context.Background(), Donation, models.DonationPayload{Amount: "$25"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "non-JSON response")
}

func TestSubmit_NetworkUnreachable(t *testing.T) {
	c := New(Config{BaseURL: unreachableURL(), Timeout: time.Second}, logger.NewTestLogger(t))

	res := c.Submit(context.Background(), HelpRequest, models.HelpRequestPayload{})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.False(t, res.Offline)
}

func TestSubmit_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, logger.NewTestLogger(t))
	res := c.Submit(context.Background(), Volunteer, models.VolunteerPayload{})

	assert.False(t, res.Success)
}

// ==========================
// Offline Mode Tests
// ==========================

func TestSubmit_OfflineModeSynthesizesSuccess(t *testing.T) {
	c := New(Config{BaseURL: unreachableURL(), OfflineMode: true, Timeout: time.Second}, logger.NewTestLogger(t))
	c.now = func() time.Time { return time.UnixMilli(1700000000123) }

	res := c.Submit(context.Background(), Donation, models.DonationPayload{Amount: "$25", PaymentMethod: "card"})

	assert.True(t, res.Success)
	assert.True(t, res.Offline)
	assert.Equal(t, int64(1700000000123), res.ID)
	assert.Equal(t, "Donation recorded (development mode)", res.Message)
}

func TestSubmit_OfflineModeNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?php echo "hi";`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv, true).Submit(context.Background(), HelpRequest, models.HelpRequestPayload{})

	assert.True(t, res.Success)
	assert.Equal(t, "Request submitted (development mode)", res.Message)
}

func TestSubmit_OfflineModeCancelledContext(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestClient(t, srv, true).Submit(ctx, MailingList, models.MailingListPayload{})

	assert.False(t, res.Success)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestSubmit_UnencodablePayload(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	res := newTestClient(t, srv, true).Submit(context.Background(), Volunteer, map[string]interface{}{"bad": make(chan int)})

	assert.False(t, res.Success)
	assert.Equal(t, "Failed to submit application", res.Error)
}

func TestEndpoint_PathsAndIDFields(t *testing.T) {
	assert.Equal(t, "/api/help-request", HelpRequest.Path())
	assert.Equal(t, "request_id", HelpRequest.IDField())
	assert.Equal(t, "/api/mailing-list", MailingList.Path())
	assert.Equal(t, "subscriber_id", MailingList.IDField())
	assert.Equal(t, "/api/newsletter", Endpoint("newsletter").Path())
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.ClientConfig{BaseURL: "http://forms", OfflineMode: true, Timeout: 2500})
	require.Equal(t, 2500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.OfflineMode)
	assert.Equal(t, "http://forms", cfg.BaseURL)
}
