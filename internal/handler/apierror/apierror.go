// Package apierror maps controller and facilitator errors to HTTP statuses.
package apierror

import (
	"errors"
	"net/http"

	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/dex"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/monitoring"
)

var statuses = []struct {
	err    error
	status int
}{
	{monitoring.ErrServiceUnavailable, http.StatusServiceUnavailable},

	{controller.ErrInvalidRequest, http.StatusBadRequest},
	{controller.ErrUnknownToken, http.StatusBadRequest},
	{dex.ErrUnsupportedFee, http.StatusBadRequest},
	{dex.ErrZeroAmount, http.StatusBadRequest},
	{dex.ErrIdenticalTokens, http.StatusBadRequest},
	{facilitator.ErrInvalidOutputAsset, http.StatusBadRequest},

	{facilitator.ErrNotInitialized, http.StatusConflict},
	{facilitator.ErrAlreadyInitialized, http.StatusConflict},
	{facilitator.ErrInvalidConfiguration, http.StatusConflict},
	{controller.ErrDuplicateRequest, http.StatusConflict},

	{facilitator.ErrSlippageExceeded, http.StatusUnprocessableEntity},
	{facilitator.ErrInvalidPayment, http.StatusUnprocessableEntity},
	{dex.ErrPoolNotFound, http.StatusUnprocessableEntity},
	{dex.ErrInsufficientLiquidity, http.StatusUnprocessableEntity},

	{facilitator.ErrRouterFailure, http.StatusBadGateway},
	{facilitator.ErrTransferFailure, http.StatusBadGateway},
	{facilitator.ErrReentrantCall, http.StatusBadGateway},
}

// Status returns the HTTP status for err; unknown errors are 500.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Message is the short message sent alongside the error detail.
func Message(err error) string {
	if kind := facilitator.Kind(err); kind != "" {
		return kind
	}
	switch Status(err) {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "unprocessable request"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	}
	return "internal error"
}

// Outcome labels err for business metrics.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind := facilitator.Kind(err); kind != "" {
		return kind
	}
	if Status(err) < http.StatusInternalServerError {
		return "rejected"
	}
	return "error"
}
