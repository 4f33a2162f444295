package handler

import (
	"net/http"

	"tms/internal/app/dto"
	"tms/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// GetDashboardCounts счётчики вкладок платёжного дашборда
// @Summary Счётчики дашборда
// @Description Возвращает счётчики всех вкладок с учётом роли пользователя
// @Tags Dashboard
// @Produce json
// @Param teamId query int false "Сужение по команде (для администраторов)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboard/counts [get]
func (h *Handler) GetDashboardCounts(ctx *gin.Context) {
	var query dto.DashboardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	actor := middleware.ActorFromContext(ctx)
	counts, err := h.Dashboard.Counts(actor, query.TeamID)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": counts})
}

// GetDashboardTab страница одной вкладки дашборда
// @Summary Вкладка дашборда
// @Description Список вкладки с пагинацией. Счётчик вкладки всегда совпадает с размером полного списка
// @Tags Dashboard
// @Produce json
// @Param tab query string false "pending | sent | approved | rejected | returned | tenderDnb"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/dashboard [get]
func (h *Handler) GetDashboardTab(ctx *gin.Context) {
	var query dto.DashboardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": err.Error()})
		return
	}

	actor := middleware.ActorFromContext(ctx)
	page, err := h.Dashboard.List(actor, &query)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": page})
}
