// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts path parameters and decodes request bodies with
consistent error values.
*/
package requestutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/taibuivan/libra/internal/platform/apperr"
	"github.com/taibuivan/libra/internal/platform/ctxutil"
	"github.com/taibuivan/libra/internal/platform/sec"
	"github.com/taibuivan/libra/internal/platform/validate"
)

/*
DecodeStrictJSON decodes the request body into target, rejecting unknown
fields. Returns validate.ErrInvalidJSON for malformed bodies.
*/
func DecodeStrictJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if field, ok := unknownField(err); ok {
			return apperr.ValidationError("Unknown field in payload", apperr.FieldError{
				Field:   field,
				Message: "This field cannot be updated",
			})
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

// unknownField pulls the field name out of the decoder's unknown-field error.
func unknownField(err error) (string, bool) {
	const marker = "unknown field "
	message := err.Error()

	index := strings.Index(message, marker)
	if index < 0 {
		return "", false
	}
	return strings.Trim(message[index+len(marker):], `"`), true
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID parses a named URL parameter as a positive integer id.
*/
func IntID(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || value <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return value, nil
}

/*
QueryInt reads an integer query parameter, returning def when absent or invalid.
*/
func QueryInt(request *http.Request, name string, def int) int {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

/*
Claims extracts the authenticated owner claims from the request context.

Returns nil if the request is anonymous.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the claims.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// IsBodyTooLarge reports whether err came from an [http.MaxBytesReader] limit.
func IsBodyTooLarge(err error) bool {
	var maxBytesError *http.MaxBytesError
	return errors.As(err, &maxBytesError)
}
