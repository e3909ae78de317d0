// Package submissions runs the request steps shared by every form endpoint:
// preflight, method check, body parsing, error responses and outcome metrics.
// The flow packages below it supply validation and persistence.
package submissions

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cac-forms/internal/common/api"
	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/common/notify"
	"cac-forms/internal/common/observability"
	"cac-forms/pkg/registry"
)

// AlertTimeout bounds one staff alert sent after a stored submission.
const AlertTimeout = 10 * time.Second

// Notifier receives an alert for every stored submission.
type Notifier interface {
	Notify(ctx context.Context, alert notify.Alert)
}

// Deps are the collaborators every endpoint shares.
type Deps struct {
	Logger        logger.Logger
	Observability *observability.Observability
	Notifier      Notifier
}

// Stored is the result of a successful ProcessFunc.
type Stored struct {
	ID    int64
	Alert notify.Alert
}

// ProcessFunc validates a decoded body and persists it.
type ProcessFunc func(ctx context.Context, doc map[string]interface{}) (Stored, error)

// Endpoint is the http.Handler of one flow.
type Endpoint struct {
	flow    registry.Flow
	process ProcessFunc
	deps    Deps
	logger  logger.Logger
	errors  *apperrors.ErrorHandler
	alerts  sync.WaitGroup
}

func NewEndpoint(flow registry.Flow, deps Deps, process ProcessFunc) *Endpoint {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"flow": flow.ID})
	return &Endpoint{
		flow:    flow,
		process: process,
		deps:    deps,
		logger:  log,
		errors:  apperrors.NewErrorHandler(log),
	}
}

// Flow returns the registry entry the endpoint serves.
func (e *Endpoint) Flow() registry.Flow {
	return e.flow
}

func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if api.HandlePreflight(w, r) {
		return
	}
	api.SetCORS(w)

	start := time.Now()
	ctx := r.Context()

	stored, err := e.handle(ctx, r)
	if err != nil {
		outcome := outcomeOf(err)
		e.deps.Observability.RecordSubmission(ctx, e.flow.ID, outcome)
		e.deps.Observability.RecordSubmissionDuration(ctx, e.flow.ID, time.Since(start), outcome)
		e.errors.HandleRequestError(w, r, err)
		return
	}

	api.Success(w, e.flow.SuccessMessage, e.flow.IDField, stored.ID)

	e.deps.Observability.RecordSubmission(ctx, e.flow.ID, observability.OutcomeStored)
	e.deps.Observability.RecordSubmissionDuration(ctx, e.flow.ID, time.Since(start), observability.OutcomeStored)
	e.logger.Info("submission stored", map[string]interface{}{
		e.flow.IDField: stored.ID,
		"requestId":    r.Header.Get("X-Request-ID"),
		"durationMs":   time.Since(start).Milliseconds(),
	})

	if e.deps.Notifier != nil {
		alert := stored.Alert
		alert.Flow = e.flow.ID
		alert.ID = stored.ID
		alertCtx := context.WithoutCancel(ctx)
		e.alerts.Add(1)
		go func() {
			defer e.alerts.Done()
			ctx, cancel := context.WithTimeout(alertCtx, AlertTimeout)
			defer cancel()
			e.deps.Notifier.Notify(ctx, alert)
		}()
	}
}

// WaitAlerts blocks until every staff alert started by the endpoint returns.
func (e *Endpoint) WaitAlerts() {
	e.alerts.Wait()
}

func (e *Endpoint) handle(ctx context.Context, r *http.Request) (Stored, error) {
	if err := api.RequirePost(r); err != nil {
		return Stored{}, err
	}
	doc, err := api.DecodeObject(r)
	if err != nil {
		return Stored{}, err
	}
	return e.process(ctx, doc)
}

func outcomeOf(err error) string {
	switch apperrors.GetErrorCategory(apperrors.CodeOf(err)) {
	case "INPUT", "METHOD":
		return observability.OutcomeRejected
	case "CONFLICT":
		return observability.OutcomeConflict
	default:
		return observability.OutcomeFailed
	}
}
