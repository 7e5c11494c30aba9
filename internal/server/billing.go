package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const entitlementTTL = 24 * time.Hour

// CreateCheckout asks the billing provider for a hosted checkout session
// and hands the redirect URL to the client.
func (s *Server) CreateCheckout(c *gin.Context) {
	account, err := s.usersvc.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	checkoutURL, err := s.billing.CreateCheckoutSession(
		c.Request.Context(),
		account.CustomerRef,
		account.Email,
		s.cfg.BaseURL+"/billing/success",
		s.cfg.BaseURL+"/",
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if checkoutURL == "" {
		s.log.Warn("billing provider offers no checkout", zap.String("user_id", account.ID))
		AbortWithError(c, ErrInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": checkoutURL})
}

// CheckoutSuccess is the landing route after a completed vendor checkout.
// It re-derives pro status, sets the entitlement cookie, and sends the
// browser home.
func (s *Server) CheckoutSuccess(c *gin.Context) {
	if _, _, err := s.syncEntitlement(c); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// RefreshEntitlement re-derives pro status from the billing provider and
// reissues or clears the client-side entitlement token.
func (s *Server) RefreshEntitlement(c *gin.Context) {
	pro, expiresAt, err := s.syncEntitlement(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !pro {
		c.JSON(http.StatusOK, gin.H{"pro": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pro": true, "expires_at": expiresAt.Unix()})
}

// syncEntitlement reconciles the stored pro flag and the entitlement cookie
// with the billing provider's view of the subscription.
func (s *Server) syncEntitlement(c *gin.Context) (bool, time.Time, error) {
	account, err := s.usersvc.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		return false, time.Time{}, err
	}

	if account.CustomerRef == "" {
		s.clearEntitlement(c)
		return false, time.Time{}, nil
	}

	sub, err := s.billing.SubscriptionForCustomer(c.Request.Context(), account.CustomerRef)
	if err != nil {
		return false, time.Time{}, err
	}

	if sub == nil || !sub.Active {
		if sub != nil {
			s.entitlement.Revoke(sub.ID)
		}
		if err := s.usersvc.SetPro(c.Request.Context(), account.ID, false, account.CustomerRef); err != nil {
			return false, time.Time{}, err
		}
		s.clearEntitlement(c)
		return false, time.Time{}, nil
	}

	if err := s.usersvc.SetPro(c.Request.Context(), account.ID, true, account.CustomerRef); err != nil {
		return false, time.Time{}, err
	}

	expiresAt := time.Now().UTC().Add(entitlementTTL)
	token, err := s.entitlement.Mint(expiresAt, sub.ID, account.CustomerRef)
	if err != nil {
		s.log.Error("failed to mint entitlement token", zap.Error(err))
		return false, time.Time{}, ErrInternal
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(entitlementCookie, token, int(entitlementTTL.Seconds()), "/", "", s.cfg.AuthCookieSecure, true)
	return true, expiresAt, nil
}

func (s *Server) clearEntitlement(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(entitlementCookie, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
}
