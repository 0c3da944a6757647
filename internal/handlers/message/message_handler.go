// internal/handlers/message/message_handler.go
package message

import (
	"net/http"
	"strconv"

	"carsales-service/internal/domain/message"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/message"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ========== Public ==========

// CreateMessage receives the website contact form
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req message.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.messageService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to send message", err)
		return
	}
	response.Success(c, http.StatusCreated, "message received", result)
}

// ========== Staff ==========

func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	result, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "message not found", err)
		return
	}
	response.Success(c, http.StatusOK, "message retrieved", result)
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	var filters message.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.messageService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list messages", err)
		return
	}
	response.Success(c, http.StatusOK, "messages retrieved", result)
}

// ListByStatus returns a handler listing the messages in status
func (h *MessageHandler) ListByStatus(status message.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		var page struct {
			Page  int `form:"page" binding:"omitempty,min=1"`
			Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
		}
		if err := c.ShouldBindQuery(&page); err != nil {
			response.ValidationError(c, "invalid query parameters", err)
			return
		}

		result, err := h.messageService.ListByStatus(c.Request.Context(), status, page.Page, page.Limit)
		if err != nil {
			response.FromError(c, "failed to list messages", err)
			return
		}
		response.Success(c, http.StatusOK, "messages retrieved", result)
	}
}

func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	var req message.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.messageService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update message", err)
		return
	}
	response.Success(c, http.StatusOK, "message updated successfully", result)
}

// StartService assigns the responsible employee; a message already taken answers 409
func (h *MessageHandler) StartService(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	var req message.StartServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.messageService.StartService(c.Request.Context(), id, req.ResponsibleID)
	if err != nil {
		response.FromError(c, "failed to start service", err)
		return
	}
	response.Success(c, http.StatusOK, "service started", result)
}

func (h *MessageHandler) UpdateStatus(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	var req message.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.messageService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to update message status", err)
		return
	}
	response.Success(c, http.StatusOK, "message status updated", result)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete message", err)
		return
	}
	response.Success(c, http.StatusOK, "message deleted successfully", nil)
}

func messageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.ValidationError(c, "invalid message ID", err)
		return 0, false
	}
	return id, true
}
