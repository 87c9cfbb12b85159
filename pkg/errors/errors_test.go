package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeMissingField, http.StatusBadRequest},
		{CodeUnsupportedType, http.StatusBadRequest},
		{CodeUnsupportedFormat, http.StatusBadRequest},
		{CodeUnsupportedProvider, http.StatusBadRequest},
		{CodeInvalidType, http.StatusBadRequest},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeInvalidAPIKey, http.StatusUnauthorized},
		{CodeProviderRateLimited, http.StatusTooManyRequests},
		// 提供商侧失败里既非限流也非明确拒绝的归为服务端错误
		{CodeNoImageReturned, http.StatusInternalServerError},
		{CodeProviderError, http.StatusInternalServerError},
		{CodePersistFailed, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "msg").HTTPStatus, string(tt.code))
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CodePersistFailed, "failed to write asset file")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "failed to write asset file")
}

func TestAsAppError(t *testing.T) {
	appErr := New(CodeMissingField, "missing required field: query").WithDetail("query")
	assert.Same(t, appErr, AsAppError(appErr))

	wrapped := AsAppError(fmt.Errorf("boom"))
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeUnknown, wrapped.Code)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
}
