package handler

import (
	"net/http"

	"tms/internal/app/dto"
	"tms/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// DecideTenderApproval решение тимлида по тендеру
// @Summary Решение по тендеру
// @Description Одобрение, отклонение или возврат тендера на доработку. При одобрении запускаются таймеры этапов
// @Tags Approvals
// @Accept json
// @Produce json
// @Param tender_id path int true "ID тендера"
// @Param request body dto.TenderApprovalInput true "Решение и его поля"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tenders/{tender_id}/approval [put]
func (h *Handler) DecideTenderApproval(ctx *gin.Context) {
	tenderID, err := uintParam(ctx, "tender_id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.TenderApprovalInput
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	actor := middleware.ActorFromContext(ctx)
	view, err := h.Approvals.Decide(tenderID, &payload, actor)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

// GetTenderApproval текущее решение по тендеру
// @Summary Решение по тендеру
// @Tags Approvals
// @Produce json
// @Param tender_id path int true "ID тендера"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tenders/{tender_id}/approval [get]
func (h *Handler) GetTenderApproval(ctx *gin.Context) {
	tenderID, err := uintParam(ctx, "tender_id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	view, err := h.Approvals.GetByTenderID(tenderID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

// ListTenderApprovals очередь согласования тендеров
// @Summary Список тендеров по решению тимлида
// @Description Тендеры очереди согласования с фильтром по tlStatus, пагинацией и сортировкой
// @Tags Approvals
// @Produce json
// @Param tlStatus query int false "Решение тимлида: 0 pending, 1 approved, 2 rejected, 3 incomplete"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/approvals [get]
func (h *Handler) ListTenderApprovals(ctx *gin.Context) {
	var query dto.ApprovalListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	page, err := h.Approvals.List(&query)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": page})
}
