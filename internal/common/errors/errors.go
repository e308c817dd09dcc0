// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeProfileQueryFailed       ErrorCode = "PROFILE_QUERY_FAILED"
	ErrCodeJobQueryFailed           ErrorCode = "JOB_QUERY_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeJobPoolFetchFailed            ErrorCode = "JOB_POOL_FETCH_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeActivityReadFailed   ErrorCode = "ACTIVITY_READ_FAILED"
	ErrCodeActivityRecordFailed ErrorCode = "ACTIVITY_RECORD_FAILED"

	ErrCodeRecommendationFailed      ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodeInvalidInput              ErrorCode = "INVALID_INPUT"
	ErrCodeResponseValidationFailed  ErrorCode = "RESPONSE_VALIDATION_FAILED"
	ErrCodeInsightsComputationFailed ErrorCode = "INSIGHTS_COMPUTATION_FAILED"
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

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileQueryFailedError creates a retryable profile lookup error.
func NewProfileQueryFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileQueryFailed,
		Message:   "User profile query error",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobQueryFailedError creates a retryable job lookup error.
func NewJobQueryFailedError(jobID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobQueryFailed,
		Message:   "Job record query error",
		Details:   fmt.Sprintf("jobId: %s, error: %s", jobID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobPoolFetchFailedError creates a retryable candidate pool fetch error.
func NewJobPoolFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobPoolFetchFailed,
		Message:   "Candidate job pool fetch error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityReadFailedError creates a retryable activity log read error.
func NewActivityReadFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityReadFailed,
		Message:   "Activity log read error",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityRecordFailedError creates a retryable activity log write error.
func NewActivityRecordFailedError(userID, jobID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityRecordFailed,
		Message:   "Activity log write error",
		Details:   fmt.Sprintf("userId: %s, jobId: %s, error: %s", userID, jobID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecommendationFailedError creates a non-retryable ranking error.
func NewRecommendationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationFailed,
		Message:   "Recommendation ranking failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid worker input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseValidationFailedError creates a non-retryable response schema error.
func NewResponseValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseValidationFailed,
		Message:   "Response failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (identical by
// convention so workflow boundary events match the internal taxonomy).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeProfileQueryFailed:            "PROFILE_QUERY_FAILED",
	ErrCodeJobQueryFailed:                "JOB_QUERY_FAILED",
	ErrCodeQueryTimeout:                  "QUERY_TIMEOUT",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeJobPoolFetchFailed:            "JOB_POOL_FETCH_FAILED",
	ErrCodeSearchTimeout:                 "SEARCH_TIMEOUT",
	ErrCodeActivityReadFailed:            "ACTIVITY_READ_FAILED",
	ErrCodeActivityRecordFailed:          "ACTIVITY_RECORD_FAILED",
	ErrCodeRecommendationFailed:          "RECOMMENDATION_FAILED",
	ErrCodeInvalidInput:                  "INVALID_INPUT",
	ErrCodeResponseValidationFailed:      "RESPONSE_VALIDATION_FAILED",
	ErrCodeInsightsComputationFailed:     "INSIGHTS_COMPUTATION_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeProfileQueryFailed,
		ErrCodeJobQueryFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeJobPoolFetchFailed,
		ErrCodeActivityReadFailed,
		ErrCodeActivityRecordFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "PROFILE") || strings.Contains(codeStr, "JOB_QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "POOL"):
		return "SEARCH"
	case strings.Contains(codeStr, "ACTIVITY"):
		return "ACTIVITY"
	case strings.Contains(codeStr, "RECOMMENDATION") || strings.Contains(codeStr, "INSIGHTS"):
		return "RANKING"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
