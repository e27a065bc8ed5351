package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"accounthub/models"
	"accounthub/pkg/activity"
	"accounthub/pkg/billing"
	"accounthub/pkg/profilestore"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// app carries the collaborators shared by all handlers.
type app struct {
	cfg      Config
	logger   *slog.Logger
	profiles profilestore.Store
	activity *activity.Service
	portal   billing.PortalSessionCreator
	catalog  *billing.Catalog
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(a.logger))
	if len(a.cfg.CORSOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = a.cfg.CORSOrigins
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
		r.Use(cors.New(cc))
	}
	setupRoutes(r, a)
	return r
}

func setupRoutes(r *gin.Engine, a *app) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/plans", a.listPlansHandler)
	r.GET("/plans/:name", a.getPlanHandler)
	r.GET("/profiles/:userId", a.getPublicProfileHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware(a.cfg.JWTSecret))
	authGroup.GET("/me", meHandler)
	authGroup.GET("/profile", a.getProfileHandler)
	authGroup.PUT("/profile", a.putProfileHandler)
	authGroup.POST("/profile/avatar", a.uploadAvatarHandler)
	authGroup.POST("/activity", a.logActivityHandler)
	authGroup.GET("/activity", a.recentActivityHandler)
	authGroup.GET("/notifications", a.listNotificationsHandler)
	authGroup.POST("/notifications", a.createNotificationHandler)
	authGroup.GET("/notifications/unread-count", a.unreadCountHandler)
	authGroup.POST("/notifications/:id/read", a.markReadHandler)
	authGroup.POST("/billing/portal", a.createPortalSessionHandler)
}

// writeError maps package errors onto status codes. Store failures are logged
// and reported with the generic message.
func (a *app) writeError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, activity.ErrInvalidInput), errors.Is(err, profilestore.ErrInvalidUserID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, activity.ErrNotFound), errors.Is(err, profilestore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		a.logger.Error(generic, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}

func meHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	c.JSON(http.StatusOK, gin.H{"userId": uid})
}

func (a *app) listPlansHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.catalog.Plans())
}

func (a *app) getPlanHandler(c *gin.Context) {
	p, ok := a.catalog.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown plan"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *app) getProfileHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	p, err := a.profiles.Get(c.Request.Context(), uid)
	if err != nil {
		a.writeError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// getPublicProfileHandler returns another user's profile with hidden contact fields removed.
func (a *app) getPublicProfileHandler(c *gin.Context) {
	p, err := a.profiles.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		a.writeError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, p.Public())
}

func (a *app) putProfileHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = uid
	if err := a.profiles.Set(c.Request.Context(), uid, req); err != nil {
		a.writeError(c, err, "failed to save profile")
		return
	}
	a.recordActivity(c, uid, "profile.updated", "Profile updated", nil)
	c.JSON(http.StatusOK, req)
}

// recordActivity logs a side-effect entry; failures do not fail the request.
func (a *app) recordActivity(c *gin.Context, uid, kind, desc string, meta map[string]any) {
	if a.activity == nil {
		return
	}
	_, err := a.activity.LogActivity(c.Request.Context(), uid, activity.ActivityInput{Type: kind, Description: desc, Metadata: meta})
	if err != nil {
		a.logger.Warn("activity not recorded", "user_id", uid, "type", kind, "error", err)
	}
}

func (a *app) logActivityHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	var req struct {
		Type        string         `json:"type" binding:"required"`
		Description string         `json:"description"`
		Metadata    map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := a.activity.LogActivity(c.Request.Context(), uid, activity.ActivityInput{
		Type:        req.Type,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		a.writeError(c, err, "failed to log activity")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return activity.DefaultLimit
	}
	return n
}

func (a *app) recentActivityHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	items, err := a.activity.GetRecentActivity(c.Request.Context(), uid, queryLimit(c))
	if err != nil {
		a.writeError(c, err, "failed to load activity")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *app) listNotificationsHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	items, err := a.activity.ListNotifications(c.Request.Context(), uid, unreadOnly, queryLimit(c))
	if err != nil {
		a.writeError(c, err, "failed to load notifications")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *app) createNotificationHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	var req struct {
		Type    string `json:"type"`
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		Link    string `json:"link"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := a.activity.CreateNotification(c.Request.Context(), uid, activity.NotificationInput{
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Link:    req.Link,
	})
	if err != nil {
		a.writeError(c, err, "failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, n)
}

// markReadHandler only lets the owner mark a notification; other users get 404.
func (a *app) markReadHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	ctx := c.Request.Context()
	n, err := a.activity.GetNotification(ctx, c.Param("id"))
	if err != nil {
		a.writeError(c, err, "failed to load notification")
		return
	}
	if n.UserID != uid {
		a.writeError(c, activity.ErrNotFound, "")
		return
	}
	if err := a.activity.MarkAsRead(ctx, n.ID); err != nil {
		a.writeError(c, err, "failed to update notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": n.ID, "read": true})
}

func (a *app) unreadCountHandler(c *gin.Context) {
	uid, _ := userIDFromContext(c)
	n, err := a.activity.GetUnreadCount(c.Request.Context(), uid)
	if err != nil {
		a.writeError(c, err, "failed to count notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// createPortalSessionHandler mints a billing portal session for the given
// customer and returns its URL.
func (a *app) createPortalSessionHandler(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CustomerID) == "" {
		portalSessions.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId is required"})
		return
	}
	url, err := a.portal.CreatePortalSession(c.Request.Context(), strings.TrimSpace(req.CustomerID), a.cfg.BillingReturnURL)
	if err != nil {
		portalSessions.WithLabelValues("provider_error").Inc()
		a.logger.Error("billing portal session failed", "customer_id", req.CustomerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": billing.ProviderMessage(err)})
		return
	}
	portalSessions.WithLabelValues("ok").Inc()
	uid, _ := userIDFromContext(c)
	a.recordActivity(c, uid, "billing.portal_opened", "Opened billing portal", map[string]any{"customerId": req.CustomerID})
	c.JSON(http.StatusOK, gin.H{"url": url})
}
