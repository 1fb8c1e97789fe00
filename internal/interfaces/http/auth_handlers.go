package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/auth"
)

// CredentialsRequest is the register/login request body.
type CredentialsRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Department string `json:"department"`
}

// Register handles POST /register.
func (h *Handlers) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Department)
	switch {
	case errors.Is(err, auth.ErrUserExists):
		respondError(c, http.StatusConflict, "User already exists")
		return
	case errors.Is(err, auth.ErrInvalidUsername):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("Registration failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "registration failed")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			Department: user.Department,
		},
	})
}

// Login handles POST /login.
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.authService.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		h.logger.Error("Login failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: UserResponse{
			ID:         user.ID,
			Username:   user.Username,
			Department: user.Department,
		},
	})
}
