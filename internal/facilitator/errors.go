package facilitator

import "errors"

var (
	ErrNotInitialized       = errors.New("facilitator not initialized")
	ErrAlreadyInitialized   = errors.New("facilitator already initialized")
	ErrInvalidConfiguration = errors.New("invalid facilitator configuration")
	ErrInvalidPayment       = errors.New("invalid payment")
	ErrInvalidOutputAsset   = errors.New("invalid output asset")
	ErrSlippageExceeded     = errors.New("slippage exceeded")
	ErrRouterFailure        = errors.New("router failure")
	ErrTransferFailure      = errors.New("transfer failure")
	ErrReentrantCall        = errors.New("reentrant call")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotInitialized, "not_initialized"},
	{ErrAlreadyInitialized, "already_initialized"},
	{ErrInvalidConfiguration, "invalid_configuration"},
	{ErrInvalidPayment, "invalid_payment"},
	{ErrInvalidOutputAsset, "invalid_output_asset"},
	{ErrSlippageExceeded, "slippage_exceeded"},
	{ErrRouterFailure, "router_failure"},
	{ErrTransferFailure, "transfer_failure"},
	{ErrReentrantCall, "reentrant_call"},
}

// Kind names the failure category of err, or returns "" for errors that did not
// come from the facilitator.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// IsFacilitatorError reports whether err is one of the facilitator failures.
func IsFacilitatorError(err error) bool {
	return Kind(err) != ""
}
