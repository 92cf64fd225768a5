package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrNoQuote is returned when confirming a swap without a quote for the current input.
	ErrNoQuote = errors.New("no quote available for the current input amount")
	// ErrUnresolvedRoute is returned when dispatching a quote or execute call on an invalid swap.
	ErrUnresolvedRoute = errors.New("swap route is not resolved")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		configurationErr ConfigurationError
		tokenNotFoundErr TokenNotFoundError
		poolNotFoundErr  PoolNotFoundError
		unresolvedErr    UnresolvedRouteError
		sameSymbolErr    SameSymbolError
		invalidAmountErr InvalidAmountError
		quoteErr         QuoteError
	)

	switch {
	case errors.Is(err, ErrNotFound), errors.As(err, &tokenNotFoundErr), errors.As(err, &poolNotFoundErr):
		return http.StatusNotFound
	case errors.Is(err, ErrBadParamInput), errors.As(err, &sameSymbolErr), errors.As(err, &invalidAmountErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnresolvedRoute), errors.As(err, &unresolvedErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &quoteErr):
		return http.StatusBadGateway
	case errors.As(err, &configurationErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// ConfigurationError is returned when the static registry or a config value is invalid.
// It is fatal to the requested operation and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for (%s): %s", e.Field, e.Reason)
}

// UnresolvedRouteError is returned when a swap between two tokens has no resolved route.
type UnresolvedRouteError struct {
	From string
	To   string
}

func (e UnresolvedRouteError) Error() string {
	return fmt.Sprintf("no resolved route from (%s) to (%s)", e.From, e.To)
}

// Is allows errors.Is(err, ErrUnresolvedRoute) to match.
func (e UnresolvedRouteError) Is(target error) bool {
	return target == ErrUnresolvedRoute
}

// QuoteError is returned when the ledger fails to quote a swap.
type QuoteError struct {
	SwapType SwapType
	From     string
	To       string
	Err      error
}

func (e QuoteError) Error() string {
	return fmt.Sprintf("failed to quote %s swap from (%s) to (%s): %v", e.SwapType, e.From, e.To, e.Err)
}

func (e QuoteError) Unwrap() error {
	return e.Err
}

// ApprovalError is returned when the allowance check or approval of the input token fails.
type ApprovalError struct {
	Token   string
	Spender string
	TxHash  string
	Err     error
}

func (e ApprovalError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("failed to approve (%s) for spender (%s), tx (%s): %v", e.Token, e.Spender, e.TxHash, e.Err)
	}
	return fmt.Sprintf("failed to approve (%s) for spender (%s): %v", e.Token, e.Spender, e.Err)
}

func (e ApprovalError) Unwrap() error {
	return e.Err
}

// SwapExecutionError is returned when the execute call fails or its receipt is not successful.
// Receipt is set if the transaction was mined.
type SwapExecutionError struct {
	SwapType SwapType
	TxHash   string
	Receipt  *Receipt
	Err      error
}

func (e SwapExecutionError) Error() string {
	return fmt.Sprintf("failed to execute %s swap, tx (%s): %v", e.SwapType, e.TxHash, e.Err)
}

func (e SwapExecutionError) Unwrap() error {
	return e.Err
}

// TokenNotFoundError is returned when a symbol is not in the token registry.
type TokenNotFoundError struct {
	Symbol string
}

func (e TokenNotFoundError) Error() string {
	return fmt.Sprintf("token (%s) is not found", e.Symbol)
}

// PoolNotFoundError is returned when a pool name is not in the pool registry.
type PoolNotFoundError struct {
	PoolName string
}

func (e PoolNotFoundError) Error() string {
	return fmt.Sprintf("pool (%s) is not found", e.PoolName)
}

// SameSymbolError is returned when a quote is requested between the same token.
type SameSymbolError struct {
	Symbol string
}

func (e SameSymbolError) Error() string {
	return fmt.Sprintf("token in and token out must differ, got (%s)", e.Symbol)
}

// InvalidAmountError is returned when an amount string cannot be parsed.
type InvalidAmountError struct {
	Amount string
	Reason string
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount (%s): %s", e.Amount, e.Reason)
}
