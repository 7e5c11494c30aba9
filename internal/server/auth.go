package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type magicLinkRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestMagicLink issues a login link and mails it. The response never
// reveals whether the address belongs to an account.
func (s *Server) RequestMagicLink(c *gin.Context) {
	var req magicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	token, err := s.authsvc.RequestLink(c.Request.Context(), req.Email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.cfg.BaseURL, token.Token)
	body := fmt.Sprintf(
		"<p>Click the link below to sign in to %s. It expires in %d minutes.</p><p><a href=%q>Sign in</a></p>",
		s.cfg.AppName, int(s.cfg.MagicLinkTTL.Minutes()), link,
	)
	if err := s.email.Send(c.Request.Context(), []string{token.Email}, "Your sign-in link", body); err != nil {
		// The token stays valid; a retry of the request re-issues it.
		s.log.Warn("failed to send magic link email", zap.Error(err))
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// VerifyMagicLink redeems the token and starts a session.
func (s *Server) VerifyMagicLink(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		c.Redirect(http.StatusSeeOther, "/login?error=invalid_link")
		return
	}

	email, ok, err := s.authsvc.Verify(c.Request.Context(), token)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login?error=invalid_link")
		return
	}

	session, _, err := s.authsvc.StartSession(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, session.ID, time.Unix(session.ExpiresAt, 0))
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the session. Safe to call without one.
func (s *Server) Logout(c *gin.Context) {
	if sid, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.EndSession(c.Request.Context(), sid); err != nil {
			AbortWithError(c, err)
			return
		}
	}
	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	account, err := s.usersvc.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         account.ID,
		"email":      account.Email,
		"full_name":  account.FullName,
		"phone":      account.Phone,
		"is_pro":     account.IsPro,
		"created_at": account.CreatedAt,
	})
}

type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func (s *Server) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.usersvc.UpdateContact(c.Request.Context(), currentUserID(c), req.FullName, req.Phone); err != nil {
		AbortWithError(c, err)
		return
	}
	s.Me(c)
}

// DeleteAccount removes the user and everything they own.
func (s *Server) DeleteAccount(c *gin.Context) {
	if err := s.usersvc.DeleteAllData(c.Request.Context(), currentUserID(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}
