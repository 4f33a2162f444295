package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadInstrumentAttachment загрузка скан-копии инструмента
// @Summary Загрузка вложения инструмента
// @Description Сохраняет скан или подписанную копию документа инструмента. Предыдущее вложение заменяется
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID инструмента"
// @Param file formData file true "Файл вложения"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/instruments/{id}/attachment [post]
func (h *Handler) UploadInstrumentAttachment(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "description": "файл не передан"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	inst, err := h.Documents.AttachFile(id, fileHeader.Filename, data)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": inst})
}

// GetInstrumentDocument выдача документа инструмента
// @Summary Документ инструмента
// @Description Возвращает временную ссылку на документ (печатная форма, письмо или вложение); с download=true отдаёт содержимое
// @Tags Documents
// @Produce json
// @Param id path int true "ID инструмента"
// @Param kind query string false "Вид документа: form, letter, attachment" default(form)
// @Param download query bool false "Отдать содержимое вместо ссылки"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/instruments/{id}/document [get]
func (h *Handler) GetInstrumentDocument(ctx *gin.Context) {
	id, err := uintParam(ctx, "id")
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	kind := ctx.Query("kind")

	if ctx.Query("download") == "true" {
		data, err := h.Documents.DocumentContent(id, kind)
		if err != nil {
			h.errorHandler(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "application/octet-stream", data)
		return
	}

	url, err := h.Documents.DocumentURL(id, kind)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "url": url})
}
