// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates pgx errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/libra/internal/platform/apperr"
)

// SQLSTATE codes the stores react to.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap classifies a database error. action names the failing operation and
// ends up in the logged cause only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if IsUniqueViolation(err) {
		return &apperr.AppError{
			Code:       apperr.CodeConflict,
			Message:    "Resource already exists",
			HTTPStatus: apperr.Conflict("").HTTPStatus,
			Cause:      fmt.Errorf("%s: %w", action, err),
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return &apperr.AppError{
			Code:       apperr.CodeNotFound,
			Message:    "Referenced resource not found",
			HTTPStatus: apperr.NotFound("").HTTPStatus,
			Cause:      fmt.Errorf("%s: %w", action, err),
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// WrapNotFound is [Wrap] with a resource-specific NOT_FOUND message.
func WrapNotFound(err error, resource, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
