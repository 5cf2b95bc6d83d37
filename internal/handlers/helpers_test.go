// internal/handlers/helpers_test.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tokosini/storefront/internal/services"
)

func TestRespondServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", services.ErrNotFound), http.StatusNotFound},
		{"insufficient stock", &services.InsufficientStockError{ProductName: "Widget"}, http.StatusConflict},
		{"empty cart", services.ErrEmptyCart, http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: name required", services.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: category in use", services.ErrConflict), http.StatusConflict},
		{"order failed", fmt.Errorf("%w: rollback", services.ErrOrderFailed), http.StatusInternalServerError},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(c, tc.err, "Thing")
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRespondServiceErrorNamesProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondServiceError(c, &services.InsufficientStockError{ProductName: "Limited"}, "Product")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Limited")
}
