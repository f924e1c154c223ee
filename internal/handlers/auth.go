package handlers

import (
	"errors"
	"net/http"

	"github.com/YannisFouzi/blind-test-sub001/internal/models"
	"github.com/YannisFouzi/blind-test-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// Authenticator is the slice of the auth service the HTTP layer needs.
type Authenticator interface {
	Register(username, password string) (*models.Host, string, error)
	Login(username, password string) (*models.Host, string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100" example:"host1"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"host1"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type HostProfile struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"host1"`
}

type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	Host  HostProfile `json:"host"`
}

// Register godoc
// @Summary      Register a new host account
// @Description  Create a host account and return its profile with a JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	host, token, err := h.auth.Register(req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create account"})
	default:
		c.JSON(http.StatusCreated, AuthResponse{
			Token: token,
			Host:  HostProfile{ID: host.ID, Username: host.Username},
		})
	}
}

// Login godoc
// @Summary      Login as host
// @Description  Authenticate a host account and return its profile with a JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login data"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	host, token, err := h.auth.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not log in"})
	default:
		c.JSON(http.StatusOK, AuthResponse{
			Token: token,
			Host:  HostProfile{ID: host.ID, Username: host.Username},
		})
	}
}
