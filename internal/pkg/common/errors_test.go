package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusValidationError(t *testing.T) {
	status, resp := HTTPStatus(NewValidationError("食材名稱不可為空"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrCodeInvalidRequest, resp.Code)
	assert.Equal(t, "食材名稱不可為空", resp.Message)
}

func TestHTTPStatusStorageUnavailable(t *testing.T) {
	// 儲存層錯誤包裝後仍映射為 503
	wrapped := fmt.Errorf("%w: read ingredients: disk gone", ErrStorageUnavailable)
	assert.True(t, IsStorageUnavailable(wrapped))

	status, resp := HTTPStatus(wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, ErrCodeStorageUnavailable, resp.Code)
}

func TestHTTPStatusCustomError(t *testing.T) {
	status, resp := HTTPStatus(ErrInvalidImageSize)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_IMAGE_SIZE", resp.Code)
}

func TestHTTPStatusUnknownError(t *testing.T) {
	status, resp := HTTPStatus(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrCodeInternalError, resp.Code)
}
