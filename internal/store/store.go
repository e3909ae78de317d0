// Package store is the persistence gateway: one parameterized insert per
// submission on a connection acquired for that request only.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cac-forms/internal/common/database"
	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/common/metrics"
)

// Logical store names, also used as metric labels and config keys.
const (
	StoreHelp        = "help"
	StoreSupport     = "support"
	StoreMailingList = "mailing_list"
)

type gateway struct {
	name   string
	db     *sql.DB
	logger logger.Logger
}

func newGateway(name string, db *sql.DB, log logger.Logger) gateway {
	return gateway{
		name:   name,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": name}),
	}
}

// classifyFunc maps a failed insert to a pipeline error. It returns nil when
// the error has no special meaning for the table.
type classifyFunc func(err error) error

// insertReturningID acquires a dedicated connection, runs query and scans the
// generated id. The connection is released on every path.
func (g gateway) insertReturningID(ctx context.Context, table, query string, classify classifyFunc, args ...interface{}) (int64, error) {
	start := time.Now()
	defer func() {
		metrics.StorageInsertDuration.WithLabelValues(g.name).Observe(time.Since(start).Seconds())
	}()

	conn, err := g.db.Conn(ctx)
	if err != nil {
		stdErr := apperrors.NewStorageUnavailableError(g.name, err)
		metrics.StorageErrors.WithLabelValues(g.name, string(stdErr.Code)).Inc()
		return 0, stdErr
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			g.logger.Warn("failed to release connection", map[string]interface{}{
				"table": table,
				"error": cerr,
			})
		}
	}()

	var id int64
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		var mapped error
		if classify != nil {
			mapped = classify(err)
		}
		if mapped == nil {
			mapped = apperrors.NewStorageWriteFailedError(g.name, fmt.Errorf("insert into %s: %w", table, err))
		}
		metrics.StorageErrors.WithLabelValues(g.name, string(apperrors.CodeOf(mapped))).Inc()
		return 0, mapped
	}

	g.logger.Info("row inserted", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	return id, nil
}

// Ping checks that the store accepts connections.
func (g gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

// Name returns the logical store name.
func (g gateway) Name() string {
	return g.name
}

// jsonb renders v for a JSONB column. lib/pq sends []byte as bytea, so the
// document goes over the wire as text.
func jsonb(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isDuplicateEmail(err error) error {
	if database.IsUniqueViolation(err, "email") {
		return apperrors.NewDuplicateSubscriberError(err)
	}
	return nil
}
