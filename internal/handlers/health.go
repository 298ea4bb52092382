package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func HealthCheck(e echo.Context) error {
	return e.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "mini-instagram-api",
	})
}

func APIVersion(e echo.Context) error {
	return e.JSON(http.StatusOK, echo.Map{
		"api_name":           "Mini Instagram API",
		"version":            "1.0.0",
		"current_version":    "v1",
		"supported_versions": []string{"v1"},
	})
}
