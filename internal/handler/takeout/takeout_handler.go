// Package takeout 周边商家 HTTP Handler
package takeout

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/campus-life-backend/internal/common/handler"
	"github.com/dumeirei/campus-life-backend/internal/common/response"
	takeoutService "github.com/dumeirei/campus-life-backend/internal/service/takeout"
)

// Handler 周边商家处理器
type Handler struct {
	service *takeoutService.Service
}

// NewHandler 创建周边商家处理器
func NewHandler(service *takeoutService.Service) *Handler {
	return &Handler{service: service}
}

// SearchShops 搜索周边商家
// @Summary 搜索周边商家
// @Tags 外卖
// @Produce json
// @Param keyword query string false "搜索关键词" default(美食)
// @Param category query string false "分类: all/restaurant/supermarket/fruit/pharmacy" default(all)
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=takeoutService.SearchResult}
// @Router /api/v1/takeout/shops [get]
func (h *Handler) SearchShops(c *gin.Context) {
	category := c.DefaultQuery("category", string(takeoutService.CategoryAll))
	if !takeoutService.ValidCategory(category) {
		response.BadRequest(c, "无效的商家分类")
		return
	}

	page := handler.ParsePage(c)

	result, err := h.service.SearchNearby(c.Request.Context(), &takeoutService.SearchRequest{
		Keyword:  c.Query("keyword"),
		Category: takeoutService.Category(category),
		Page:     page,
	})
	handler.MustSucceed(c, err, result)
}
