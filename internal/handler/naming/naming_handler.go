// Package naming 起名 HTTP Handler
package naming

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/campus-life-backend/internal/common/config"
	"github.com/dumeirei/campus-life-backend/internal/common/handler"
	"github.com/dumeirei/campus-life-backend/internal/common/logger"
	"github.com/dumeirei/campus-life-backend/internal/common/qrcode"
	"github.com/dumeirei/campus-life-backend/internal/common/response"
	namingService "github.com/dumeirei/campus-life-backend/internal/service/naming"
)

// Handler 起名处理器
type Handler struct {
	service *namingService.Service
	cfg     *config.NamingConfig
	qrGen   *qrcode.Generator
}

// NewHandler 创建起名处理器
func NewHandler(service *namingService.Service, cfg *config.NamingConfig) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		qrGen:   qrcode.NewGenerator(qrcode.WithSize(256)),
	}
}

// GenerateFreeRequest 免费起名请求
type GenerateFreeRequest struct {
	Surname     string `json:"surname" binding:"required"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female neutral"`
	BirthDate   string `json:"birth_date"`
	Preferences string `json:"preferences"`
}

// GenerateVIPRequest VIP 起名请求
type GenerateVIPRequest struct {
	Surname      string `json:"surname" binding:"required"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female neutral"`
	BirthDate    string `json:"birth_date"`
	Preferences  string `json:"preferences"`
	PaymentProof string `json:"payment_proof"`
}

// NamesResponse 起名响应
type NamesResponse struct {
	Names []namingService.NameResult `json:"names"`
}

// VIPNamesResponse VIP 起名响应
type VIPNamesResponse struct {
	Names           []namingService.NameResult `json:"names"`
	PaymentVerified bool                       `json:"paymentVerified"`
}

// PaymentResponse VIP 支付信息响应
type PaymentResponse struct {
	Price      float64 `json:"price"`
	QRCode     string  `json:"qrCode,omitempty"`
	PaymentTip string  `json:"paymentTip"`
}

// GenerateFree 免费起名
// @Summary 免费起名（5个名字）
// @Tags 起名
// @Accept json
// @Produce json
// @Param request body GenerateFreeRequest true "起名请求"
// @Success 200 {object} response.Response{data=NamesResponse}
// @Router /api/v1/naming/free [post]
func (h *Handler) GenerateFree(c *gin.Context) {
	var req GenerateFreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请输入姓氏")
		return
	}
	if strings.TrimSpace(req.Surname) == "" {
		response.BadRequest(c, "请输入姓氏")
		return
	}

	result, err := h.service.GenerateFree(c.Request.Context(), &namingService.NamingRequest{
		Surname:     strings.TrimSpace(req.Surname),
		Gender:      req.Gender,
		BirthDate:   req.BirthDate,
		Preferences: req.Preferences,
	})
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	logger.Info("免费起名完成",
		logger.Module("naming"),
		logger.Surname(req.Surname),
		logger.Source(result.Source),
	)

	response.Success(c, NamesResponse{Names: result.Names})
}

// GenerateVIP VIP 起名
// @Summary VIP 起名（50个名字）
// @Tags 起名
// @Accept json
// @Produce json
// @Param request body GenerateVIPRequest true "起名请求"
// @Success 200 {object} response.Response{data=VIPNamesResponse}
// @Router /api/v1/naming/vip [post]
func (h *Handler) GenerateVIP(c *gin.Context) {
	var req GenerateVIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请输入姓氏")
		return
	}
	if strings.TrimSpace(req.Surname) == "" {
		response.BadRequest(c, "请输入姓氏")
		return
	}
	// 只要求非空交易单号，不做真实校验
	if strings.TrimSpace(req.PaymentProof) == "" {
		response.BadRequest(c, "请输入支付宝交易单号")
		return
	}

	result, err := h.service.GenerateVIP(c.Request.Context(), &namingService.NamingRequest{
		Surname:     strings.TrimSpace(req.Surname),
		Gender:      req.Gender,
		BirthDate:   req.BirthDate,
		Preferences: req.Preferences,
	})
	if err != nil {
		handler.HandleError(c, err)
		return
	}

	logger.Info("VIP 起名完成",
		logger.Module("naming"),
		logger.Surname(req.Surname),
		logger.Source(result.Source),
	)

	response.Success(c, VIPNamesResponse{
		Names:           result.Names,
		PaymentVerified: true,
	})
}

// Payment 获取 VIP 支付信息
// @Summary 获取 VIP 支付信息（价格与收款二维码）
// @Tags 起名
// @Produce json
// @Success 200 {object} response.Response{data=PaymentResponse}
// @Router /api/v1/naming/vip/payment [get]
func (h *Handler) Payment(c *gin.Context) {
	resp := PaymentResponse{
		Price:      h.cfg.VIPPrice,
		PaymentTip: h.cfg.PaymentTip,
	}

	if h.cfg.AlipayQRText != "" {
		dataURL, err := h.qrGen.GenerateDataURL(h.cfg.AlipayQRText)
		if err != nil {
			logger.Warn("生成收款二维码失败", logger.Module("naming"), logger.Err(err))
		} else {
			resp.QRCode = dataURL
		}
	}

	response.Success(c, resp)
}
