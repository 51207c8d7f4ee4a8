package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/nft-registry/internal/acl"
	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/logger"
	"github.com/feral-file/nft-registry/internal/registry"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"
	errCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondForbidden sends a 403 Forbidden response
func respondForbidden(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusForbidden, errCodeForbidden, message, details...)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondDomainError maps the service error taxonomy onto HTTP statuses.
// Unknown errors fall through as internal errors.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrAdminOnly),
		errors.Is(err, acl.ErrNotAdmin),
		errors.Is(err, acl.ErrNotSystemAdmin),
		errors.Is(err, registry.ErrNotWhitelisted):
		respondForbidden(c, err.Error())
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, assets.ErrNotFound),
		errors.Is(err, registry.ErrScheduleNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, registry.ErrMintingDisabled),
		errors.Is(err, registry.ErrNoActiveSchedule),
		errors.Is(err, registry.ErrNoPriceForQty),
		errors.Is(err, registry.ErrSupplyExhausted),
		errors.Is(err, registry.ErrNoAssetsAvailable),
		errors.Is(err, registry.ErrMaxSupplyLocked),
		errors.Is(err, registry.ErrInvalidTimeRange),
		errors.Is(err, registry.ErrZeroQuantity),
		errors.Is(err, acl.ErrLastSystemAdmin),
		errors.Is(err, acl.ErrInvalidType):
		respondWithError(c, http.StatusConflict, errCodeConflict, err.Error())
	default:
		respondInternalError(c, err, "Request failed")
	}
}
