package handler

import (
	"net/http"

	"tms/internal/app/dto"
	"tms/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequest создание платёжных заявок по тендеру
// @Summary Создание платёжных заявок
// @Description Создаёт заявки на EMD, Tender Fee и Processing Fee с платёжными инструментами
// @Tags Payments
// @Accept json
// @Produce json
// @Param tender_id path int true "ID тендера (0 для заявок вне TMS)"
// @Param request body dto.CreatePaymentRequestInput true "Режимы оплаты и поля инструментов"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tenders/{tender_id}/payments [post]
func (h *Handler) CreatePaymentRequest(ctx *gin.Context) {
	tenderID, err := uintParam(ctx, "tender_id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.CreatePaymentRequestInput
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	actor := middleware.ActorFromContext(ctx)
	created, err := h.Payments.Create(tenderID, &payload, actor)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   created,
	})
}

// GetPaymentsByTender заявки тендера с инструментами
// @Summary Платёжные заявки тендера
// @Tags Payments
// @Produce json
// @Param tender_id path int true "ID тендера"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/tenders/{tender_id}/payments [get]
func (h *Handler) GetPaymentsByTender(ctx *gin.Context) {
	tenderID, err := uintParam(ctx, "tender_id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	views, err := h.Payments.FindByTenderID(tenderID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": views})
}

// GetPaymentRequest одна заявка с инструментами, историей и действиями
// @Summary Платёжная заявка
// @Tags Payments
// @Produce json
// @Param id path int true "ID заявки"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/payments/{id} [get]
func (h *Handler) GetPaymentRequest(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	view, err := h.Payments.FindByID(id)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

// UpdatePaymentRequest правка полей активного инструмента заявки
// @Summary Обновление платёжной заявки
// @Description Правит поля инструмента. Смена типа инструмента не допускается
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param request body dto.UpdatePaymentRequestInput true "Поля инструмента"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/payments/{id} [put]
func (h *Handler) UpdatePaymentRequest(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.UpdatePaymentRequestInput
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	view, err := h.Payments.Update(id, &payload)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

// UpdatePaymentRequestStatus административная смена статуса заявки
// @Summary Смена статуса заявки
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param request body dto.UpdateRequestStatusInput true "Новый статус"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/payments/{id}/status [put]
func (h *Handler) UpdatePaymentRequestStatus(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	var payload dto.UpdateRequestStatusInput
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	view, err := h.Payments.UpdateStatus(id, payload.Status, payload.Remarks)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}
