package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tms/internal/app/repository"
	"tms/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Repository  *repository.Repository
	Payments    *service.PaymentService
	Instruments *service.InstrumentService
	Approvals   *service.ApprovalService
	Dashboard   *service.DashboardService
	Documents   *service.DocumentService
	AuthHandler *AuthHandler
}

func NewHandler(
	r *repository.Repository,
	payments *service.PaymentService,
	instruments *service.InstrumentService,
	approvals *service.ApprovalService,
	dashboard *service.DashboardService,
	documents *service.DocumentService,
	authHandler *AuthHandler,
) *Handler {
	return &Handler{
		Repository:  r,
		Payments:    payments,
		Instruments: instruments,
		Approvals:   approvals,
		Dashboard:   dashboard,
		Documents:   documents,
		AuthHandler: authHandler,
	}
}

// Централизованная обработка ошибок: классы ошибок сервисного слоя
// переводятся в HTTP коды
func (h *Handler) errorHandler(ctx *gin.Context, err error) {
	logrus.Error(err.Error())
	ctx.JSON(statusCodeFor(err), gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// uintParam читает числовой path-параметр
func uintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("некорректный параметр " + name)
	}
	return uint(v), nil
}
