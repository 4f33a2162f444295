package handler

import (
	"net/http"

	"tms/internal/app/dto"
	"tms/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// TransitionInstrumentStatus перевод инструмента в новый статус
// @Summary Смена статуса инструмента
// @Description Переводит инструмент в новый статус по таблице этапов его типа
// @Tags Instruments
// @Accept json
// @Produce json
// @Param id path int true "ID инструмента"
// @Param request body dto.TransitionStatusInput true "Новый статус и данные формы"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/instruments/{id}/status [put]
func (h *Handler) TransitionInstrumentStatus(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.TransitionStatusInput
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	actor := middleware.ActorFromContext(ctx)
	inst, err := h.Instruments.Transition(id, payload.NewStatus, payload.FormData, actor, payload.Remarks)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": inst})
}

// RejectInstrument отклонение инструмента с указанием причины
// @Summary Отклонение инструмента
// @Tags Instruments
// @Accept json
// @Produce json
// @Param id path int true "ID инструмента"
// @Param request body dto.RejectInstrumentInput true "Причина отклонения"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/instruments/{id}/reject [put]
func (h *Handler) RejectInstrument(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.RejectInstrumentInput
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	actor := middleware.ActorFromContext(ctx)
	inst, err := h.Instruments.Reject(id, payload.RejectionReason, actor)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": inst})
}

// ResubmitInstrument пересоздание отклонённого инструмента
// @Summary Пересоздание инструмента
// @Description Деактивирует отклонённый инструмент и создаёт новый той же заявки
// @Tags Instruments
// @Accept json
// @Produce json
// @Param id path int true "ID отклонённого инструмента"
// @Param request body dto.ResubmitInstrumentInput false "Новые данные формы"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/instruments/{id}/resubmit [post]
func (h *Handler) ResubmitInstrument(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.ResubmitInstrumentInput
	_ = ctx.ShouldBindJSON(&payload)

	actor := middleware.ActorFromContext(ctx)
	inst, err := h.Instruments.Resubmit(id, payload.FormData, actor)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "data": inst})
}

// GetInstrumentActions доступные действия по инструменту
// @Summary Доступные действия
// @Tags Instruments
// @Produce json
// @Param id path int true "ID инструмента"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/instruments/{id}/actions [get]
func (h *Handler) GetInstrumentActions(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	actions, err := h.Instruments.AvailableActions(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": actions})
}

// GetInstrumentHistory история инструмента по всей цепочке пересозданий
// @Summary История инструмента
// @Tags Instruments
// @Produce json
// @Param id path int true "ID инструмента"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/instruments/{id}/history [get]
func (h *Handler) GetInstrumentHistory(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	chain, err := h.Instruments.History(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": chain})
}
