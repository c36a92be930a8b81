package leaveerrors

import (
	"fmt"
	"net/http"

	"go-leavehub/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start date cannot be in the past",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeInvalidState,
		"you can only cancel your own leave requests",
		http.StatusBadRequest,
	)
)

// NotPending reports an approve/reject/cancel attempt on a request that has
// already left the Pending state.
func NotPending(status string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("leave request is already %s", status),
		http.StatusBadRequest,
	)
}

// InsufficientBalance reports a paid-leave request exceeding the remaining
// allocation for its year.
func InsufficientBalance(leaveType string, available decimal.Decimal, requested int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("insufficient %s days, available: %s, requested: %d",
			leaveType, available.String(), requested),
		http.StatusBadRequest,
	)
}
