// Package dberrs maps driver failures onto the application's error classes.
package dberrs

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"fooddispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Resource names the store in UnavailableError values.
const Resource = "postgres"

// retryableCodes are SQLSTATE codes after which the same statement may
// succeed on a later attempt.
var retryableCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"53300": {}, // too_many_connections
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
}

// Classify wraps transient store failures into *errs.UnavailableError and
// returns every other error unchanged. Context cancellation is never
// reclassified so callers can tell shutdown apart from an outage.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, errs.ErrUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := retryableCodes[pgErr.Code]; ok || strings.HasPrefix(pgErr.Code, "08") {
			return errs.NewUnavailableError(Resource, err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) ||
		errors.As(err, &netErr) {
		return errs.NewUnavailableError(Resource, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errs.NewUnavailableError(Resource, err)
	}

	return err
}
