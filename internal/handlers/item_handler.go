package handlers

import (
	"net/http"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/middleware"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	*BaseHandler
	itemService services.ItemService
}

func NewItemHandler(base *BaseHandler, itemService services.ItemService) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		itemService: itemService,
	}
}

func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	items.Use(middleware.OptionalAuthMiddleware())
	{
		items.GET("", h.ListItems)
		items.GET("/:itemId", h.GetItem)
	}

	authed := r.Group("/items")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", h.CreateItem)
		authed.GET("/mine", h.ListMyItems)
		authed.PUT("/:itemId", h.UpdateItem)
		authed.DELETE("/:itemId", h.DeleteItem)
	}

	admin := r.Group("/admin/items")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPendingItems)
		admin.PUT("/:itemId/review", h.ReviewItem)
		admin.PUT("/:itemId/flag", h.FlagItem)
	}
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	var req dto.ItemFilterRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	// Signed-in browsers don't see their own listings in the feed.
	viewerID := middleware.GetUserID(c)

	resp, err := h.itemService.ListApproved(&req, viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID := c.Param("itemId")

	viewerKey := middleware.GetUserID(c)
	if viewerKey == "" {
		viewerKey = c.ClientIP()
	}

	item, err := h.itemService.Get(c.Request.Context(), itemID, viewerKey)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) ListMyItems(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.itemService.ListMine(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(userID, c.Param("itemId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.itemService.Delete(userID, c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted",
	})
}

func (h *ItemHandler) ListPendingItems(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.itemService.ListPendingReview(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) ReviewItem(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.itemService.Review(adminID, c.Param("itemId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review recorded",
	})
}

func (h *ItemHandler) FlagItem(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req struct {
		Flagged bool `json:"flagged"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.itemService.SetFlagged(adminID, c.Param("itemId"), req.Flagged); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flag updated",
	})
}
