package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "seller-service",
	})
}

// NotImplemented answers for the placeholder route groups that are not
// built out yet (products, orders, cart, payments, reviews, categories).
func NotImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{
		"error": "not implemented",
	})
}
