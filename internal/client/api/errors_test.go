package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		status   int
		wantKind Kind
	}{
		{name: "unauthorized", status: 401, message: "bad credentials", wantKind: KindInvalidCredentials},
		{name: "forbidden", status: 403, message: "no access", wantKind: KindAccessDenied},
		{name: "not found", status: 404, message: "missing", wantKind: KindNotFound},
		{name: "bad request", status: 400, message: "invalid", wantKind: KindValidation},
		{name: "unprocessable", status: 422, message: "invalid", wantKind: KindValidation},
		{name: "server error", status: 500, message: "boom", wantKind: KindServiceUnavailable},
		{name: "bad gateway", status: 502, message: "boom", wantKind: KindServiceUnavailable},
		{name: "teapot is unknown", status: 418, message: "short and stout", wantKind: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, tt.message)

			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

// TestClassify_EmptyMessage проверяет подстановку стандартного текста статуса
func TestClassify_EmptyMessage(t *testing.T) {
	err := classify(503, "")

	assert.Equal(t, "Service Unavailable", err.Message)
}

func TestError_Error(t *testing.T) {
	withStatus := &Error{Kind: KindNotFound, StatusCode: 404, Message: "patient not found"}
	assert.Equal(t, "server error (404): patient not found", withStatus.Error())

	network := &Error{Kind: KindNetwork, Message: "connection refused"}
	assert.Equal(t, "request failed: connection refused", network.Error())
}

func TestError_UserMessage(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{kind: KindInvalidCredentials, want: "Invalid username or password."},
		{kind: KindValidation, want: "Please check the entered data and try again."},
		{kind: KindAccessDenied, want: "Access denied. Contact your administrator."},
		{kind: KindNotFound, want: "The requested resource was not found."},
		{kind: KindServiceUnavailable, want: "Server is unavailable. Please try again later."},
		{kind: KindNetwork, want: "Network is unreachable. Check your connection."},
		{kind: KindUnknown, want: "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		err := &Error{Kind: tt.kind}
		assert.Equal(t, tt.want, err.UserMessage())
	}
}

func TestIsKind(t *testing.T) {
	err := classify(403, "no access")

	assert.True(t, IsKind(err, KindAccessDenied))
	assert.False(t, IsKind(err, KindNotFound))

	// Обёрнутая ошибка тоже распознаётся
	wrapped := fmt.Errorf("list patients: %w", err)
	assert.True(t, IsKind(wrapped, KindAccessDenied))

	assert.False(t, IsKind(errors.New("plain"), KindAccessDenied))
	assert.False(t, IsKind(nil, KindAccessDenied))
}
