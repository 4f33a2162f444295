package handler

import (
	"tms/internal/app/middleware"
	"tms/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *Handler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	anyAuthorized := authMiddleware.WithAuthCheck(
		role.Superuser, role.Admin, role.TeamLeader, role.Coordinator, role.Member, role.Engineer,
	)
	paymentRoles := authMiddleware.WithAuthCheck(
		role.Superuser, role.Admin, role.TeamLeader, role.Coordinator, role.Member,
	)
	accountsRoles := authMiddleware.WithAuthCheck(role.Superuser, role.Admin, role.Coordinator)
	adminOnly := authMiddleware.WithAuthCheck(role.Superuser, role.Admin)
	teamLeadRoles := authMiddleware.WithAuthCheck(role.Superuser, role.Admin, role.TeamLeader)

	// ============ Платёжные заявки по тендеру ============
	tenders := api.Group("/tenders")
	{
		tenders.POST("/:tender_id/payments", paymentRoles, h.CreatePaymentRequest)
		tenders.GET("/:tender_id/payments", anyAuthorized, h.GetPaymentsByTender)

		// Решение тимлида
		tenders.PUT("/:tender_id/approval", teamLeadRoles, h.DecideTenderApproval)
		tenders.GET("/:tender_id/approval", anyAuthorized, h.GetTenderApproval)
	}

	// Очередь согласования
	api.GET("/approvals", teamLeadRoles, h.ListTenderApprovals)

	// ============ Заявки и их статусы ============
	payments := api.Group("/payments")
	{
		payments.GET("/:id", anyAuthorized, h.GetPaymentRequest)
		payments.PUT("/:id", paymentRoles, h.UpdatePaymentRequest)

		// Административная смена статуса заявки
		payments.PUT("/:id/status", adminOnly, h.UpdatePaymentRequestStatus)
	}

	// ============ Инструменты ============
	instruments := api.Group("/instruments")
	{
		// Статусами управляет бухгалтерия
		instruments.PUT("/:id/status", accountsRoles, h.TransitionInstrumentStatus)
		instruments.PUT("/:id/reject", accountsRoles, h.RejectInstrument)

		// Пересоздание доступно инициатору заявки
		instruments.POST("/:id/resubmit", paymentRoles, h.ResubmitInstrument)

		instruments.GET("/:id/actions", anyAuthorized, h.GetInstrumentActions)
		instruments.GET("/:id/history", anyAuthorized, h.GetInstrumentHistory)

		// Документы инструмента
		instruments.POST("/:id/attachment", paymentRoles, h.UploadInstrumentAttachment)
		instruments.GET("/:id/document", anyAuthorized, h.GetInstrumentDocument)
	}

	// ============ Дашборд ============
	dashboard := api.Group("/dashboard")
	dashboard.Use(anyAuthorized)
	{
		dashboard.GET("", h.GetDashboardTab)
		dashboard.GET("/counts", h.GetDashboardCounts)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser) // POST регистрация
		auth.POST("/login", h.AuthHandler.LoginUser)       // POST аутентификация JWT

		// Защищенные эндпоинты
		auth.GET("/profile", anyAuthorized, h.AuthHandler.GetUserProfile)
		auth.POST("/logout", anyAuthorized, h.AuthHandler.LogoutUser)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
