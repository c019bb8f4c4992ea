package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/service"
)

// Login authenticates a user and returns a bearer token with a role-scoped
// view of the user.
func Login(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		resp, err := users.Login(req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// CurrentUser returns the authenticated user.
func CurrentUser(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := auth.ActorFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}

		user, err := users.Get(actor.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
