package handlers

import (
	"net/http"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/middleware"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type CoinHandler struct {
	*BaseHandler
	coinService services.CoinService
}

func NewCoinHandler(base *BaseHandler, coinService services.CoinService) *CoinHandler {
	return &CoinHandler{
		BaseHandler: base,
		coinService: coinService,
	}
}

func (h *CoinHandler) RegisterRoutes(r *gin.RouterGroup) {
	coins := r.Group("/coins")
	coins.Use(middleware.AuthMiddleware())
	{
		coins.GET("/balance", h.GetBalance)
		coins.GET("/ledger", h.GetLedger)
	}
}

func (h *CoinHandler) GetBalance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.coinService.GetBalance(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CoinHandler) GetLedger(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.coinService.GetLedger(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
