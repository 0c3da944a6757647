// internal/handlers/party/address.go
package party

import (
	"net/http"

	"carsales-service/internal/domain/party"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/party"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService *service.AddressService
}

func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req party.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.addressService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create address", err)
		return
	}
	response.Success(c, http.StatusCreated, "address created successfully", result)
}

func (h *AddressHandler) GetAddress(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid address ID", err)
		return
	}

	result, err := h.addressService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "address not found", err)
		return
	}
	response.Success(c, http.StatusOK, "address retrieved", result)
}

func (h *AddressHandler) ListAddresses(c *gin.Context) {
	var p party.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.addressService.List(c.Request.Context(), &p)
	if err != nil {
		response.FromError(c, "failed to list addresses", err)
		return
	}
	response.Success(c, http.StatusOK, "addresses retrieved", result)
}

func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid address ID", err)
		return
	}

	var req party.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.addressService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update address", err)
		return
	}
	response.Success(c, http.StatusOK, "address updated successfully", result)
}

func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.ValidationError(c, "invalid address ID", err)
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete address", err)
		return
	}
	response.Success(c, http.StatusOK, "address deleted successfully", nil)
}
