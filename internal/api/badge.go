package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linkgrove/linkgrove-v2/backend/internal/middleware"
	"github.com/linkgrove/linkgrove-v2/backend/internal/service"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

// BadgeHandler exposes the badge catalog. Catalog mutation and awards
// are admin-only; listing is open so the dashboard can show what is
// attainable.
type BadgeHandler struct {
	badges service.IBadgeService
}

func NewBadgeHandler(badges service.IBadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

func (h *BadgeHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	badges := router.Group("/badges")
	{
		badges.GET("", h.ListBadges)

		admin := badges.Group("")
		admin.Use(middleware.AuthMiddleware(validator), middleware.AdminMiddleware())
		{
			admin.POST("", h.CreateBadge)
			admin.DELETE("/:id", h.DeleteBadge)
			admin.POST("/:id/award/:profileID", h.AwardBadge)
			admin.DELETE("/:id/award/:profileID", h.RevokeBadge)
		}
	}
}

func (h *BadgeHandler) ListBadges(c *gin.Context) {
	badges, err := h.badges.ListBadges(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list badges"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func (h *BadgeHandler) CreateBadge(c *gin.Context) {
	var req types.CreateBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	badge, err := h.badges.CreateBadge(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBadgeAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "badge already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create badge"})
		return
	}
	c.JSON(http.StatusCreated, badge)
}

func (h *BadgeHandler) DeleteBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}

	if err := h.badges.DeleteBadge(c.Request.Context(), badgeID); err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "badge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete badge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "badge deleted successfully"})
}

func (h *BadgeHandler) AwardBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}
	profileID, err := uuid.Parse(c.Param("profileID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	if err := h.badges.AwardBadge(c.Request.Context(), profileID, badgeID); err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "badge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to award badge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "badge awarded successfully"})
}

func (h *BadgeHandler) RevokeBadge(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid badge id"})
		return
	}
	profileID, err := uuid.Parse(c.Param("profileID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	if err := h.badges.RevokeBadge(c.Request.Context(), profileID, badgeID); err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "badge not awarded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke badge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "badge revoked successfully"})
}
