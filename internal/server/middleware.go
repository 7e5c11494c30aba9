package server

import (
	"net/http"
	"strings"

	obscontext "github.com/formfillhq/formfill/internal/observability/context"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextUserIDKey  = "user_id"
	entitlementCookie = "formfill_entitlement"
	visitorCookie     = "formfill_visitor"
)

// SessionRequired rejects requests without a live session cookie.
func (s *Server) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Session(c.Request.Context(), sid)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if session == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserIDKey, session.UserID)
		c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), session.UserID))
		c.Next()
	}
}

// SessionOptional resolves the session when present, anonymous otherwise.
func (s *Server) SessionOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, ok := s.sessions.ReadToken(c); ok {
			if session, err := s.authsvc.Session(c.Request.Context(), sid); err == nil && session != nil {
				c.Set(contextUserIDKey, session.UserID)
				c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), session.UserID))
			}
		}
		c.Next()
	}
}

// ProRequired gates a route on the durable pro flag or a live
// entitlement token.
func (s *Server) ProRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.isPro(c) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

// MaxUpload bounds the request body to the configured upload cap.
func (s *Server) MaxUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)
		c.Next()
	}
}

func (s *Server) isPro(c *gin.Context) bool {
	if token, err := c.Cookie(entitlementCookie); err == nil && strings.TrimSpace(token) != "" {
		if _, ok := s.entitlement.Active(token); ok {
			return true
		}
	}

	userID := currentUserID(c)
	if userID == "" {
		return false
	}
	account, err := s.usersvc.GetByID(c.Request.Context(), userID)
	if err != nil || account == nil {
		return false
	}
	return account.IsPro
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

// visitorToken identifies an anonymous browser for the free-tier
// limiter, minting a cookie on first sight.
func (s *Server) visitorToken(c *gin.Context) string {
	if token, err := c.Cookie(visitorCookie); err == nil && strings.TrimSpace(token) != "" {
		return token
	}

	token := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, token, 365*24*3600, "/", "", s.cfg.AuthCookieSecure, true)
	return token
}
