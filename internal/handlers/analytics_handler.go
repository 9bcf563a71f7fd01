package handlers

import (
	"net/http"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/middleware"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the owner dashboard.
type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	owner := r.Group("/owner/analytics")
	owner.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleOwner))
	{
		owner.GET("/dashboard", h.Dashboard)
		owner.GET("/growth", h.UserGrowth)
		owner.GET("/revenue", h.Revenue)
		owner.GET("/retention", h.Retention)
		owner.GET("/cohorts", h.Cohorts)
		owner.GET("/funnel", h.Funnel)
	}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	months := ParseQueryInt(c, "months", 12)

	resp, err := h.analyticsService.GetDashboard(months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) UserGrowth(c *gin.Context) {
	months := ParseQueryInt(c, "months", 12)

	resp, err := h.analyticsService.GetUserGrowth(months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	months := ParseQueryInt(c, "months", 12)

	resp, err := h.analyticsService.GetRevenue(months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Retention(c *gin.Context) {
	resp, err := h.analyticsService.GetRetention()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Cohorts(c *gin.Context) {
	resp, err := h.analyticsService.GetCohorts()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Funnel(c *gin.Context) {
	resp, err := h.analyticsService.GetFunnel()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
