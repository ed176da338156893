package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cropcast.app/internal/core/user"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

const (
	currentUserKey  = "current_user"
	sessionTokenKey = "session_token"
)

// requireSession rejects requests without a valid bearer session
func (s *HTTPServerAdapter) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			s.handleError(c, errors.NewUnauthorizedError("authentication required"))
			return
		}

		u, err := s.authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.handleError(c, err)
			return
		}

		c.Set(currentUserKey, u)
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

// optionalSession attaches the user when a valid bearer session is present.
// Missing, expired or unknown tokens leave the request anonymous.
func (s *HTTPServerAdapter) optionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		u, err := s.authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.IsTokenError(err) {
				s.logger.Warn("Session lookup failed, continuing anonymously", ports.F("error", err))
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, u)
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func currentUser(c *gin.Context) *user.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := value.(*user.User)
	return u
}

// viewerID returns the signed in user's ID, or nil for anonymous requests
func viewerID(c *gin.Context) *uint {
	u := currentUser(c)
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}
