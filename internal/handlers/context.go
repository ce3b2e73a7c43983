package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
)

// getUserClaims returns the JWT claims stored by the auth middleware, or nil
func getUserClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

func getUserIDFromContext(c echo.Context) string {
	if claims := getUserClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
