package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cropcast.app/internal/core/user"
	"cropcast.app/internal/ports"
)

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Location string `json:"location" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned after a successful login
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func newUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}

// register handles POST /api/auth/register requests
func (s *HTTPServerAdapter) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	u, err := s.authUseCase.Register(c.Request.Context(), user.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Location: req.Location,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(u))
}

// login handles POST /api/auth/login requests
func (s *HTTPServerAdapter) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	result, err := s.authUseCase.Login(c.Request.Context(), user.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
		User:      newUserResponse(result.User),
	})
}

// logout handles POST /api/auth/logout requests
func (s *HTTPServerAdapter) logout(c *gin.Context) {
	token := c.GetString(sessionTokenKey)
	if err := s.authUseCase.Logout(c.Request.Context(), token); err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Debug("Session ended", ports.F("userID", currentUser(c).ID))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// getSession handles GET /api/auth/session requests
func (s *HTTPServerAdapter) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(currentUser(c))})
}
