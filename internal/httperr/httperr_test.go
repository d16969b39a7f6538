package httperr_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
)

func TestBusinessCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", httperr.ErrBusiness("code_generation_failed"))

	code, ok := httperr.BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, "code_generation_failed", code)
	assert.True(t, httperr.IsBusiness(err, "code_generation_failed"))
	assert.False(t, httperr.IsBusiness(err, "invalid_state"))

	_, ok = httperr.BusinessCode(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestWriters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		write  func(c *gin.Context, code, msg string)
		status int
	}{
		{httperr.BadRequest, http.StatusBadRequest},
		{httperr.NotFound, http.StatusNotFound},
		{httperr.Conflict, http.StatusConflict},
		{httperr.Unprocessable, http.StatusUnprocessableEntity},
		{httperr.TooManyRequests, http.StatusTooManyRequests},
		{httperr.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		tt.write(c, "some_code", "Mensagem.")

		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, `{"error_code":"some_code","message":"Mensagem."}`, w.Body.String())
	}
}
