// Package client submits form payloads to the endpoints and normalizes every
// outcome into a Result. Submit never returns an error.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"cac-forms/internal/common/config"
	apperrors "cac-forms/internal/common/errors"
	apphttp "cac-forms/internal/common/http"
	"cac-forms/internal/common/logger"
	"cac-forms/pkg/registry"

	"github.com/google/uuid"
)

// Endpoint identifies a submission flow.
type Endpoint string

const (
	HelpRequest Endpoint = registry.FlowHelpRequest
	Volunteer   Endpoint = registry.FlowVolunteer
	Donation    Endpoint = registry.FlowDonation
	MailingList Endpoint = registry.FlowMailingList
)

const maxResponseBytes = 1 << 20

type endpointText struct {
	offline  string
	fallback string
}

var texts = map[Endpoint]endpointText{
	HelpRequest: {offline: "Request submitted (development mode)", fallback: "Failed to submit request"},
	Volunteer:   {offline: "Application submitted (development mode)", fallback: "Failed to submit application"},
	Donation:    {offline: "Donation recorded (development mode)", fallback: "Failed to record donation"},
	MailingList: {offline: "Subscribed (development mode)", fallback: "Failed to subscribe"},
}

// Path is the endpoint's route on the form server.
func (e Endpoint) Path() string {
	if f, ok := registry.Default().Find(string(e)); ok {
		return f.Path
	}
	return "/api/" + string(e)
}

// IDField is the response key carrying the generated id.
func (e Endpoint) IDField() string {
	if f, ok := registry.Default().Find(string(e)); ok {
		return f.IDField
	}
	return "id"
}

// Config controls where submissions go. OfflineMode turns transport failures
// into synthetic successes and must never be enabled in production.
type Config struct {
	BaseURL     string
	OfflineMode bool
	Timeout     time.Duration
}

// ConfigFrom converts the client section of the application config.
func ConfigFrom(cfg config.ClientConfig) Config {
	return Config{
		BaseURL:     cfg.BaseURL,
		OfflineMode: cfg.OfflineMode,
		Timeout:     config.GetDuration(cfg.Timeout),
	}
}

// Result is the normalized outcome of a submission.
type Result struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	ID      int64             `json:"id,omitempty"`
	Status  int               `json:"status,omitempty"`
	Offline bool              `json:"offline,omitempty"`
}

type Client struct {
	cfg    Config
	http   *apphttp.Client
	logger logger.Logger
	now    func() time.Time
}

func New(cfg Config, log logger.Logger) *Client {
	return NewWithHTTP(cfg, apphttp.NewClient(cfg.Timeout), log)
}

// NewWithHTTP uses an existing HTTP client, e.g. one from httptest.
func NewWithHTTP(cfg Config, hc *apphttp.Client, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		cfg:    cfg,
		http:   hc,
		logger: log.WithFields(map[string]interface{}{"component": "submission-client"}),
		now:    time.Now,
	}
}

// Submit posts payload as JSON to endpoint and waits for a JSON answer.
func (c *Client) Submit(ctx context.Context, endpoint Endpoint, payload interface{}) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to encode submission", map[string]interface{}{
			"endpoint": string(endpoint),
			"error":    err,
		})
		return Result{Success: false, Error: texts[endpoint].fallbackOr(endpoint)}
	}

	requestID := uuid.NewString()
	url := strings.TrimRight(c.cfg.BaseURL, "/") + endpoint.Path()

	resp, err := c.http.PostJSON(ctx, url, body, map[string]string{"X-Request-ID": requestID})
	if err != nil {
		return c.transportFailure(ctx, endpoint, requestID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportFailure(ctx, endpoint, requestID, err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return c.transportFailure(ctx, endpoint, requestID,
			fmt.Errorf("non-JSON response (status %d): %w", resp.StatusCode, err))
	}

	result := parseResult(endpoint, decoded)
	result.Status = resp.StatusCode
	if !result.Success && result.Error == "" {
		result.Error = texts[endpoint].fallbackOr(endpoint)
	}

	c.logger.Debug("submission answered", map[string]interface{}{
		"endpoint":  string(endpoint),
		"requestId": requestID,
		"status":    resp.StatusCode,
		"success":   result.Success,
	})
	return result
}

func (c *Client) transportFailure(ctx context.Context, endpoint Endpoint, requestID string, err error) Result {
	stdErr := apperrors.NewTransportError(string(endpoint), err)
	c.logger.Warn("submission transport failed", map[string]interface{}{
		"endpoint":  string(endpoint),
		"requestId": requestID,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"offline":   c.cfg.OfflineMode,
	})

	// An abandoned submission stays a failure even in offline mode.
	if c.cfg.OfflineMode && ctx.Err() == nil {
		return Result{
			Success: true,
			Message: texts[endpoint].offlineOr(endpoint),
			ID:      c.now().UnixMilli(),
			Offline: true,
		}
	}
	return Result{Success: false, Error: err.Error()}
}

func parseResult(endpoint Endpoint, decoded map[string]interface{}) Result {
	var r Result
	r.Success, _ = decoded["success"].(bool)
	r.Message, _ = decoded["message"].(string)
	r.Error, _ = decoded["error"].(string)

	if fields, ok := decoded["errors"].(map[string]interface{}); ok {
		r.Errors = make(map[string]string, len(fields))
		for k, v := range fields {
			if s, ok := v.(string); ok {
				r.Errors[k] = s
			}
		}
	}
	if id, ok := decoded[endpoint.IDField()].(float64); ok {
		r.ID = int64(id)
	}
	return r
}

func (t endpointText) offlineOr(e Endpoint) string {
	if t.offline != "" {
		return t.offline
	}
	return fmt.Sprintf("%s submitted (development mode)", e)
}

func (t endpointText) fallbackOr(e Endpoint) string {
	if t.fallback != "" {
		return t.fallback
	}
	return fmt.Sprintf("Failed to submit %s", e)
}
