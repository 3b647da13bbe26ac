package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/linkgrove/linkgrove-v2/backend/internal/middleware"
	"github.com/linkgrove/linkgrove-v2/backend/internal/service"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

// PageHandler serves the public, anonymous-friendly surface: rendered
// pages, share codes, sandbox documents and checkout redirects.
type PageHandler struct {
	pages    service.IPageService
	profiles service.IProfileService
	share    service.IShareService
	sandbox  service.ISandboxService
	checkout service.ICheckoutService
	siteURL  string

	// SandboxConnectSrc optionally narrows where sandboxed scripts may
	// issue requests; empty leaves egress unrestricted.
	SandboxConnectSrc string
}

func NewPageHandler(pages service.IPageService, profiles service.IProfileService, share service.IShareService, sandbox service.ISandboxService, checkout service.ICheckoutService, siteURL string) *PageHandler {
	return &PageHandler{
		pages:    pages,
		profiles: profiles,
		share:    share,
		sandbox:  sandbox,
		checkout: checkout,
		siteURL:  siteURL,
	}
}

func (h *PageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/pages/:username", h.GetPage)
	router.GET("/pages/:username/share", h.GetShareCode)
	router.POST("/pages/:username/checkout", h.StartCheckout)
	router.GET("/sandbox/:id", h.GetSandboxDocument)
}

// GetPage renders a profile's public page. Works for anonymous
// visitors; the visitor token only matters for view counting.
func (h *PageHandler) GetPage(c *gin.Context) {
	username := c.Param("username")
	page, err := h.pages.GetPage(c.Request.Context(), username, middleware.VisitorID(c))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render page"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetShareCode returns the profile's QR share code as a PNG. Generated
// on demand, never during page render. With ?format=url the code is
// uploaded to the asset bucket and a presigned URL returned instead;
// upload failure falls back to the inline PNG.
func (h *PageHandler) GetShareCode(c *gin.Context) {
	username := c.Param("username")
	if _, err := h.profiles.GetByUsername(c.Request.Context(), username); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	code, err := h.share.GenerateShareCode(c.Request.Context(), h.siteURL+"/"+username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate share code"})
		return
	}

	if c.Query("format") == "url" {
		if url, err := h.share.UploadShareCode(c.Request.Context(), username, code); err == nil {
			c.JSON(http.StatusOK, gin.H{"url": url})
			return
		}
	}
	c.Data(http.StatusOK, "image/png", code)
}

// StartCheckout hands the purchase off to the payment collaborator and
// returns the redirect target.
func (h *PageHandler) StartCheckout(c *gin.Context) {
	username := c.Param("username")
	profile, err := h.profiles.GetByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	var req types.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	redirect, err := h.checkout.CreateCheckout(c.Request.Context(), profile.ID, req.OptionID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "checkout unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect_url": redirect})
}

// scriptCloseRe matches a premature script-close sequence inside a
// script body. HTML closes the element on "</script" regardless of
// case, so the escape has to be case-insensitive too.
var scriptCloseRe = regexp.MustCompile(`(?i)</script`)

// GetSandboxDocument serves a stored script inside a minimal document
// whose CSP confines execution to an isolated browsing context. The
// page embeds it through a sandboxed iframe, so the script never
// touches the host page's DOM or cookies.
func (h *PageHandler) GetSandboxDocument(c *gin.Context) {
	script, err := h.sandbox.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "")
		return
	}
	script = scriptCloseRe.ReplaceAllString(script, `<\/script`)

	csp := "sandbox allow-scripts; default-src 'none'; script-src 'unsafe-inline'"
	if h.SandboxConnectSrc != "" {
		csp += "; connect-src " + h.SandboxConnectSrc
	}
	c.Header("Content-Security-Policy", csp)
	c.Header("X-Frame-Options", "SAMEORIGIN")
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<!doctype html><html><head></head><body><script>"+script+"</script></body></html>"))
}
