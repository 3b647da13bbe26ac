package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIDMintsCookieForNewVisitor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ClientID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, VisitorID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	// first request: no token in context, cookie set for next time
	assert.Empty(t, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestClientIDReusesExistingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ClientID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, VisitorID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: "existing-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, "existing-token", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}
