package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/formfillhq/formfill/internal/config"
)

func record(secure bool, fn func(c *gin.Context, m *Manager)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m := NewManager(config.Config{AuthCookieSecure: secure})
	fn(c, m)
	return w
}

func TestSetMarksCookieSecureWhenConfigured(t *testing.T) {
	w := record(true, func(c *gin.Context, m *Manager) {
		m.Set(c, "abc", time.Now().Add(time.Hour))
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, DefaultCookieName, cookies[0].Name)
	require.True(t, cookies[0].Secure)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSetPlainCookieInDev(t *testing.T) {
	w := record(false, func(c *gin.Context, m *Manager) {
		m.Set(c, "abc", time.Now().Add(time.Hour))
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.False(t, cookies[0].Secure)
}

func TestClearExpiresCookie(t *testing.T) {
	w := record(false, func(c *gin.Context, m *Manager) {
		m.Clear(c)
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestReadTokenRejectsBlank(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "   "})

	m := NewManager(config.Config{})
	_, ok := m.ReadToken(c)
	require.False(t, ok)
}
