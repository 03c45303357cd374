// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Market data provider
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"

	// Ledger client
	ErrCodeWalletUnavailable   ErrorCode = "WALLET_UNAVAILABLE"
	ErrCodeNetworkMismatch     ErrorCode = "NETWORK_MISMATCH"
	ErrCodeContractNotDeployed ErrorCode = "CONTRACT_NOT_DEPLOYED"

	// Quest bridge
	ErrCodeTransactionFailed   ErrorCode = "TRANSACTION_FAILED"
	ErrCodeConfirmationTimeout ErrorCode = "CONFIRMATION_TIMEOUT"
	ErrCodeQuestReadFailed     ErrorCode = "QUEST_READ_FAILED"

	// Orchestrator
	ErrCodeInvalidQuery      ErrorCode = "INVALID_QUERY"
	ErrCodeQueryInFlight     ErrorCode = "QUERY_IN_FLIGHT"
	ErrCodeCompositionFailed ErrorCode = "COMPOSITION_FAILED"

	// Catalog
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewProviderUnavailableError creates a retryable market data provider error.
// Consumers are expected to fall back to the simulated snapshot.
func NewProviderUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "Market data provider unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWalletUnavailableError creates a non-retryable wallet error. The system
// continues in demo mode.
func NewWalletUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWalletUnavailable,
		Message:   "No compatible wallet available",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkMismatchError creates a non-retryable network error.
func NewNetworkMismatchError(got int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkMismatch,
		Message:   "Connected network has no deployed contract",
		Details:   fmt.Sprintf("chainId: %d", got),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContractNotDeployedError creates a non-retryable contract error.
func NewContractNotDeployedError(network string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContractNotDeployed,
		Message:   "No contract address configured for network",
		Details:   fmt.Sprintf("network: %s", network),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransactionFailedError creates a retryable quest submission error.
func NewTransactionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransactionFailed,
		Message:   "Quest submission rejected",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfirmationTimeoutError creates a retryable confirmation wait error.
func NewConfirmationTimeoutError(txHash string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfirmationTimeout,
		Message:   "Transaction confirmation timed out",
		Details:   fmt.Sprintf("tx: %s", txHash),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuestReadFailedError creates a retryable quest read-back error.
func NewQuestReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuestReadFailed,
		Message:   "Quest read-back failed after confirmation",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryError creates a non-retryable input error. This is the only
// condition that keeps the orchestrator in Idle without emitting a message.
func NewInvalidQueryError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQuery,
		Message:   "Query is empty or whitespace-only",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryInFlightError creates a non-retryable re-entrancy error.
func NewQueryInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryInFlight,
		Message:   "A query is already in flight",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompositionFailedError wraps an unexpected composition failure. The
// orchestrator converts it to a degraded assistant message.
func NewCompositionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompositionFailed,
		Message:   "Response composition failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError creates a non-retryable configuration error.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Dimension catalog failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROVIDER"):
		return "MARKET"
	case strings.Contains(codeStr, "WALLET") || strings.Contains(codeStr, "NETWORK") || strings.Contains(codeStr, "CONTRACT"):
		return "LEDGER"
	case strings.Contains(codeStr, "TRANSACTION") || strings.Contains(codeStr, "CONFIRMATION") || strings.Contains(codeStr, "QUEST"):
		return "BRIDGE"
	case strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "COMPOSITION"):
		return "ORCHESTRATOR"
	case strings.Contains(codeStr, "CATALOG"):
		return "CONFIGURATION"
	default:
		return "OTHER"
	}
}

// IsFatal reports whether an error code should abort the process. No condition
// in this subsystem is fatal; every failure degrades to a usable response.
func IsFatal(ErrorCode) bool {
	return false
}
