package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"societyhub/apperrors"
)

func runWriteError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", nil)

	writeError(c, err, "Something went wrong")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWriteErrorRateLimit(t *testing.T) {
	rle := &apperrors.RateLimitError{RetryAfter: 40 * time.Minute}
	code, body := runWriteError(t, rle)

	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, float64(40*60+1), body["retryAfter"])
	// The message tracks the configured cooldown via the error itself.
	assert.Equal(t, rle.Error(), body["message"])
}

func TestWriteErrorValidation(t *testing.T) {
	code, body := runWriteError(t, &apperrors.ValidationError{Missing: []string{"email"}})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []interface{}{"email"}, body["missingFields"])
}

func TestWriteErrorCapacity(t *testing.T) {
	code, body := runWriteError(t, &apperrors.CapacityError{Max: 50})

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Sold out", body["error"])
}

func TestWriteErrorNotFound(t *testing.T) {
	code, _ := runWriteError(t, apperrors.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWriteErrorUnknownHidesDetail(t *testing.T) {
	code, body := runWriteError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Something went wrong", body["error"])
	assert.NotContains(t, body, "message")
}