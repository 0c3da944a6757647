// internal/handlers/party/client.go
package party

import (
	"net/http"

	"carsales-service/internal/domain/party"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/party"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req party.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.clientService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create client", err)
		return
	}
	response.Success(c, http.StatusCreated, "client created successfully", result)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid client ID", err)
		return
	}

	result, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "client not found", err)
		return
	}
	response.Success(c, http.StatusOK, "client retrieved", result)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	var filters party.ClientListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.clientService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list clients", err)
		return
	}
	response.Success(c, http.StatusOK, "clients retrieved", result)
}

// SearchClients matches clients whose name contains ?name=
func (h *ClientHandler) SearchClients(c *gin.Context) {
	var filters party.ClientListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.clientService.Search(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to search clients", err)
		return
	}
	response.Success(c, http.StatusOK, "clients retrieved", result)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid client ID", err)
		return
	}

	var req party.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.clientService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update client", err)
		return
	}
	response.Success(c, http.StatusOK, "client updated successfully", result)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid client ID", err)
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete client", err)
		return
	}
	response.Success(c, http.StatusOK, "client deleted successfully", nil)
}
