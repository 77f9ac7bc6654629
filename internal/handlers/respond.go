package handlers

import (
	"errors"
	"net/http"

	"supplies-service/internal/repository"
	"supplies-service/internal/services"
)

// statusForError maps service error kinds onto HTTP statuses:
// 401 no/invalid identity, 403 policy denial, 404 missing entity,
// 409 invalid state or lost concurrency race, 400 bad input.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUserInactive):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotAssignedApprover),
		errors.Is(err, services.ErrApprovalOutOfOrder):
		return http.StatusForbidden
	case errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrSupplierNotFound),
		errors.Is(err, services.ErrPurchaseOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRequestAlreadyDecided),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrSingleAdmin),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, repository.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrCommentsRequired),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// pagination clamps limit/offset query values.
func pagination(limit, offset int) (int, int) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
