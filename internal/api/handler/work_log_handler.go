package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/service"
	"github.com/Xojiakbar-vscode/seamstress/pkg/response"
)

// WorkLogHandler 工作记录模块 HTTP 处理器
type WorkLogHandler struct {
	workLogSvc service.WorkLogService
}

// NewWorkLogHandler 创建 WorkLogHandler
func NewWorkLogHandler(workLogSvc service.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{workLogSvc: workLogSvc}
}

// CreateWorkLog 录入工作记录（配额校验 + 金额快照计算）
// POST /api/v1/work-logs
func (h *WorkLogHandler) CreateWorkLog(c *gin.Context) {
	var req dto.CreateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	log, err := h.workLogSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.Created(c, log)
}

// GetWorkLog 查询单条工作记录
// GET /api/v1/work-logs/:id
func (h *WorkLogHandler) GetWorkLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	log, err := h.workLogSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, log)
}

// ListWorkLogs 工作记录列表（可按用户/型号/部件/账期/日期范围过滤）
// GET /api/v1/work-logs?user_id=1&month=7&year=2026
func (h *WorkLogHandler) ListWorkLogs(c *gin.Context) {
	filter, ok := h.bindWorkLogFilter(c)
	if !ok {
		return
	}

	logs, err := h.workLogSvc.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, logs)
}

// GetDailyWorkLogs 按日查询工作记录 + 单日统计
// GET /api/v1/work-logs/daily?date=2026-07-15
func (h *WorkLogHandler) GetDailyWorkLogs(c *gin.Context) {
	date := c.Query("date")

	result, err := h.workLogSvc.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, result)
}

// GetMonthlyStatistics 月度统计（按用户分组）
// GET /api/v1/work-logs/statistics?month=7&year=2026
func (h *WorkLogHandler) GetMonthlyStatistics(c *gin.Context) {
	month, year, ok := parsePeriodQuery(c)
	if !ok {
		return
	}

	stats, err := h.workLogSvc.MonthlyStatistics(c.Request.Context(), month, year)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, stats)
}

// UpdateWorkLog 更新工作记录（录入后 24 小时内）
// PUT /api/v1/work-logs/:id
func (h *WorkLogHandler) UpdateWorkLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	log, err := h.workLogSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, log)
}

// DeleteWorkLog 删除工作记录（录入后 24 小时内，回退配额）
// DELETE /api/v1/work-logs/:id
func (h *WorkLogHandler) DeleteWorkLog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workLogSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, nil)
}

// ArchiveWorkLogs 全量归档工作记录（经理）
// POST /api/v1/work-logs/archive
func (h *WorkLogHandler) ArchiveWorkLogs(c *gin.Context) {
	var req dto.ArchiveWorkLogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.workLogSvc.ArchiveAll(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, result)
}

// ListWorkLogHistories 归档记录列表
// GET /api/v1/work-logs/histories?user_id=1
func (h *WorkLogHandler) ListWorkLogHistories(c *gin.Context) {
	userID, err := optionalUintQuery(c, "user_id")
	if err != nil {
		response.BadRequest(c, 10001, "user_id 参数无效")
		return
	}
	modelID, err := optionalUintQuery(c, "model_id")
	if err != nil {
		response.BadRequest(c, 10001, "model_id 参数无效")
		return
	}

	filter := dto.WorkLogHistoryFilter{
		UserID:    userID,
		ModelID:   modelID,
		StartDate: optionalStringQuery(c, "start_date"),
		EndDate:   optionalStringQuery(c, "end_date"),
	}

	histories, err := h.workLogSvc.ListHistories(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, histories)
}

// GetWorkLogHistory 查询单条归档记录
// GET /api/v1/work-logs/histories/:id
func (h *WorkLogHandler) GetWorkLogHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.workLogSvc.GetHistoryByID(c.Request.Context(), id)
	if err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, history)
}

// DeleteWorkLogHistory 删除单条归档记录（经理）
// DELETE /api/v1/work-logs/histories/:id
func (h *WorkLogHandler) DeleteWorkLogHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workLogSvc.DeleteHistory(c.Request.Context(), id); err != nil {
		h.handleWorkLogError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *WorkLogHandler) bindWorkLogFilter(c *gin.Context) (dto.WorkLogFilter, bool) {
	var filter dto.WorkLogFilter

	var err error
	if filter.UserID, err = optionalUintQuery(c, "user_id"); err != nil {
		response.BadRequest(c, 10001, "user_id 参数无效")
		return filter, false
	}
	if filter.ModelID, err = optionalUintQuery(c, "model_id"); err != nil {
		response.BadRequest(c, 10001, "model_id 参数无效")
		return filter, false
	}
	if filter.DetailID, err = optionalUintQuery(c, "detail_id"); err != nil {
		response.BadRequest(c, 10001, "detail_id 参数无效")
		return filter, false
	}
	if filter.Month, err = optionalIntQuery(c, "month"); err != nil {
		response.BadRequest(c, 10001, "month 参数无效")
		return filter, false
	}
	if filter.Year, err = optionalIntQuery(c, "year"); err != nil {
		response.BadRequest(c, 10001, "year 参数无效")
		return filter, false
	}
	filter.StartDate = optionalStringQuery(c, "start_date")
	filter.EndDate = optionalStringQuery(c, "end_date")

	return filter, true
}

func (h *WorkLogHandler) handleWorkLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkLogNotFound):
		response.NotFound(c, 24001, "工作记录不存在")
	case errors.Is(err, service.ErrWorkerNotFound):
		response.NotFound(c, 20001, "用户不存在")
	case errors.Is(err, service.ErrModelNotActive):
		response.BadRequest(c, 24002, "型号不存在或已完工")
	case errors.Is(err, service.ErrQuotaNotFound):
		response.BadRequest(c, 24003, "该部件不在型号配额中")
	case errors.Is(err, service.ErrNoActiveRate):
		response.BadRequest(c, 23002, "当前没有生效中的费率")
	case errors.Is(err, service.ErrQuotaExceeded):
		response.BadRequest(c, 24004, err.Error())
	case errors.Is(err, service.ErrEditWindowExpired):
		response.BadRequest(c, 24005, "录入已超过修改窗口")
	case errors.Is(err, service.ErrInvalidWorkDate):
		response.BadRequest(c, 10001, "work_date 格式无效")
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, 10001, "没有可更新的字段")
	case errors.Is(err, service.ErrNothingToArchive):
		response.BadRequest(c, 24006, "没有可归档的工作记录")
	case errors.Is(err, service.ErrWorkLogHistoryNotFound):
		response.NotFound(c, 24007, "归档记录不存在")
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 10001, "month 参数无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/work_log_handler.go
