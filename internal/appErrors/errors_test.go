package appErrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	detailed := ErrTooManyAttempts.WithDetails(map[string]int{"attempts_left": 0})

	assert.Nil(t, ErrTooManyAttempts.Details)
	assert.NotNil(t, detailed.Details)
	assert.Equal(t, ErrTooManyAttempts.Code, detailed.Code)
	assert.Equal(t, ErrTooManyAttempts.HTTPCode, detailed.HTTPCode)
}

func TestIs_MatchesByCode(t *testing.T) {
	t.Parallel()

	detailed := ErrInvalidOrExpiredOTP.WithDetails("3 attempts left")
	assert.True(t, Is(detailed, ErrInvalidOrExpiredOTP))
	assert.False(t, Is(detailed, ErrTooManyAttempts))
}

func TestAs_UnwrapsWrappedErrors(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	wrapped := InternalError(inner)

	var appErr *AppError
	assert.True(t, As(wrapped, &appErr))
	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.ErrorIs(t, wrapped, inner)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, rec
}

func TestHandleError_ClientError(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext()
	HandleError(c, ErrSelfTransaction)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(CodeSelfTransaction), body["error"]["code"])
}

func TestHandleError_StripsInternalDetail(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext()
	HandleError(c, InternalError(errors.New("password=hunter2 leaked into error")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestHandleUnknownError_WrapsPlainErrors(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext()
	HandleUnknownError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), string(CodeInternalError))
}
