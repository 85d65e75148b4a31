package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23503"
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTransient reports whether retrying the same statement may succeed:
// connection loss, serialization failures, deadlocks, admin shutdowns and timeouts.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		switch {
		case strings.HasPrefix(pgerr.Code, "08"): // connection exception
			return true
		case pgerr.Code == "40001", pgerr.Code == "40P01": // serialization, deadlock
			return true
		case pgerr.Code == "57P01", pgerr.Code == "57P03": // admin shutdown, cannot connect now
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
