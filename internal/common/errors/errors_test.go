// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_Error(t *testing.T) {
	err := NewProfileQueryFailedError("user-1", fmt.Errorf("connection refused"))

	assert.Equal(t, ErrCodeProfileQueryFailed, err.Code)
	assert.True(t, err.Retryable)
	assert.Contains(t, err.Error(), "PROFILE_QUERY_FAILED")
	assert.Contains(t, err.Details, "user-1")
	assert.False(t, err.Timestamp.IsZero())
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		retries int
	}{
		{ErrCodeDatabaseConnectionFailed, 3},
		{ErrCodeJobPoolFetchFailed, 3},
		{ErrCodeActivityRecordFailed, 3},
		{ErrCodeQueryTimeout, 2},
		{ErrCodeSearchTimeout, 2},
		{ErrCodeInvalidInput, 0},
		{ErrCodeRecommendationFailed, 0},
		{ErrCodeResponseValidationFailed, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
			assert.Equal(t, tt.retries > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewJobPoolFetchFailedError(fmt.Errorf("search unavailable"))

	bpmnErr := ConvertToBPMNError(stdErr)

	require.NotNil(t, bpmnErr)
	assert.Equal(t, "JOB_POOL_FETCH_FAILED", bpmnErr.Code)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, "JOB_POOL_FETCH_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_NonRetryable(t *testing.T) {
	stdErr := NewInvalidInputError("userId is required")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "INVALID_INPUT", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	assert.False(t, bpmnErr.Retryable)
}

func TestConvertToBPMNError_UnmappedCode(t *testing.T) {
	stdErr := NewBusinessRuleError("rule violated", "details")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "BUSINESS_RULE_VIOLATION", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewActivityReadFailedError("user-1", fmt.Errorf("redis down")))

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "ACTIVITY_READ_FAILED", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "ACTIVITY_READ_FAILED", vars["originalErrorCode"])
	assert.NotEmpty(t, vars["errorMessage"])
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeProfileQueryFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeJobPoolFetchFailed))
	assert.Equal(t, "ACTIVITY", GetErrorCategory(ErrCodeActivityRecordFailed))
	assert.Equal(t, "RANKING", GetErrorCategory(ErrCodeInsightsComputationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeResponseValidationFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}
