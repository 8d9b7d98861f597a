package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"droproom/internal/mocks"
)

func TestHealthOK(t *testing.T) {
	st := new(mocks.StoreMock)
	st.On("Ping", mock.Anything).Return(nil).Once()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(st, "memory").Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memory")
	st.AssertExpectations(t)
}

func TestHealthDegraded(t *testing.T) {
	st := new(mocks.StoreMock)
	st.On("Ping", mock.Anything).Return(assert.AnError).Once()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(st, "postgres").Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	st.AssertExpectations(t)
}
