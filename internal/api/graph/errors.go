package graph

import (
	"errors"

	"github.com/ventascrm/sales-api/internal/api/metrics"
	"github.com/ventascrm/sales-api/internal/core/domain"
)

// Error codes exposed in the "extensions.code" field of GraphQL errors.
const (
	CodeDuplicateIdentity = "DUPLICATE_IDENTITY"
	CodeUnknownIdentity   = "UNKNOWN_IDENTITY"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeExpiredToken      = "EXPIRED_TOKEN"
	CodeInvalidSignature  = "INVALID_SIGNATURE"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeDuplicateClient   = "DUPLICATE_CLIENT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeDuplicateRequest  = "DUPLICATE_REQUEST"
	CodeInternal          = "INTERNAL"
)

// gqlError is what resolvers return; graphql-go copies Extensions into the
// response error.
type gqlError struct {
	code    string
	message string
}

func (e *gqlError) Error() string { return e.message }

func (e *gqlError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var codes = []struct {
	err  error
	code string
}{
	{domain.ErrUserExists, CodeDuplicateIdentity},
	{domain.ErrUserNotFound, CodeUnknownIdentity},
	{domain.ErrInvalidCredentials, CodeInvalidCredential},
	{domain.ErrTokenExpired, CodeExpiredToken},
	{domain.ErrTokenSignature, CodeInvalidSignature},
	{domain.ErrUnauthenticated, CodeUnauthenticated},
	{domain.ErrForbidden, CodeForbidden},
	{domain.ErrNotFound, CodeNotFound},
	{domain.ErrInsufficientStock, CodeInsufficientStock},
	{domain.ErrClientExists, CodeDuplicateClient},
	{domain.ErrValidation, CodeValidation},
	{domain.ErrInvalidTransition, CodeInvalidTransition},
	{domain.ErrDuplicateRequest, CodeDuplicateRequest},
}

// CodeOf maps an error to its GraphQL error code, CodeInternal when unknown.
func CodeOf(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// fail converts a service error into the GraphQL error returned to the
// caller. Unknown errors are logged and replaced by a generic message.
func (r *Resolver) fail(op string, err error) error {
	code := CodeOf(err)
	metrics.ResolverErrorsTotal.WithLabelValues(op, code).Inc()

	if code == CodeInternal {
		r.log.Error().Err(err).Str("operation", op).Msg("resolver failed")
		return &gqlError{code: code, message: "internal server error"}
	}

	var se *domain.StockError
	if errors.As(err, &se) {
		metrics.StockRejectionsTotal.Inc()
	}

	r.log.Debug().Err(err).Str("operation", op).Str("code", code).Msg("request rejected")
	return &gqlError{code: code, message: err.Error()}
}
