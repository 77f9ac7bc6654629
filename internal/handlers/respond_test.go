package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"supplies-service/internal/repository"
	"supplies-service/internal/services"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrUserInactive, http.StatusUnauthorized},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrNotAssignedApprover, http.StatusForbidden},
		{services.ErrApprovalOutOfOrder, http.StatusForbidden},
		{services.ErrRequestNotFound, http.StatusNotFound},
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrItemNotFound, http.StatusNotFound},
		{services.ErrSupplierNotFound, http.StatusNotFound},
		{services.ErrPurchaseOrderNotFound, http.StatusNotFound},
		{services.ErrRequestAlreadyDecided, http.StatusConflict},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrSingleAdmin, http.StatusConflict},
		{services.ErrEmailTaken, http.StatusConflict},
		{repository.ErrVersionConflict, http.StatusConflict},
		{services.ErrCommentsRequired, http.StatusBadRequest},
		{services.ErrInvalidDecision, http.StatusBadRequest},
		{services.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusForError(tc.err), "error %v", tc.err)
	}
}

func TestStatusForError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: title is required", services.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, statusForError(wrapped))
}

func TestPagination(t *testing.T) {
	limit, offset := pagination(0, -5)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pagination(500, 40)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, offset = pagination(50, 10)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 10, offset)
}
