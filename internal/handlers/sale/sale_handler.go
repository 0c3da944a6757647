// internal/handlers/sale/sale_handler.go
package sale

import (
	"net/http"
	"strconv"

	"carsales-service/internal/domain/sale"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/sale"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService *service.SaleService
}

func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req sale.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.saleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create sale", err)
		return
	}
	response.Success(c, http.StatusCreated, "sale created successfully", result)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	result, err := h.saleService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "sale not found", err)
		return
	}
	response.Success(c, http.StatusOK, "sale retrieved", result)
}

// ListSales applies only the highest-priority filter present:
// date range, client, employee, status, payment method.
func (h *SaleHandler) ListSales(c *gin.Context) {
	var filters sale.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.saleService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list sales", err)
		return
	}
	response.Success(c, http.StatusOK, "sales retrieved", result)
}

func (h *SaleHandler) UpdateSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	var req sale.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.saleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update sale", err)
		return
	}
	response.Success(c, http.StatusOK, "sale updated successfully", result)
}

func (h *SaleHandler) UpdateSaleStatus(c *gin.Context) {
	var req sale.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	h.setStatus(c, req.Status)
}

// StatusShortcut returns a handler that moves the sale to status
func (h *SaleHandler) StatusShortcut(status sale.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.setStatus(c, status)
	}
}

func (h *SaleHandler) setStatus(c *gin.Context, status sale.Status) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	result, err := h.saleService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.FromError(c, "failed to update sale status", err)
		return
	}

	message := "sale status updated"
	if result.Warning != "" {
		message = "sale status updated with warnings"
	}
	response.Success(c, http.StatusOK, message, result)
}

func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete sale", err)
		return
	}
	response.Success(c, http.StatusOK, "sale deleted successfully", nil)
}

func (h *SaleHandler) Statistics(c *gin.Context) {
	var filters sale.StatisticsFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.saleService.Statistics(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to compute statistics", err)
		return
	}
	response.Success(c, http.StatusOK, "sales statistics", result)
}

func saleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.ValidationError(c, "invalid sale ID", err)
		return 0, false
	}
	return id, true
}
