package handlers

import (
	"net/http"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/middleware"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	*BaseHandler
	couponService services.CouponService
}

func NewCouponHandler(base *BaseHandler, couponService services.CouponService) *CouponHandler {
	return &CouponHandler{
		BaseHandler:   base,
		couponService: couponService,
	}
}

func (h *CouponHandler) RegisterRoutes(r *gin.RouterGroup) {
	coupons := r.Group("/coupons")
	coupons.Use(middleware.AuthMiddleware())
	{
		coupons.GET("", h.List)
		coupons.POST("/redeem", h.Redeem)
		coupons.POST("/use", h.Use)
	}
}

func (h *CouponHandler) Redeem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RedeemCoinsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	coupon, err := h.couponService.Redeem(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) Use(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UseCouponRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	coupon, err := h.couponService.Use(userID, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.couponService.List(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
