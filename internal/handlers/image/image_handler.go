// internal/handlers/image/image_handler.go
package image

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"carsales-service/internal/domain/image"
	"carsales-service/internal/domain/vehicle"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/image"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadBody bounds a whole multipart request: a full batch plus form overhead
const maxUploadBody = image.MaxImagesPerVehicle*image.MaxFileSize + 1<<20

type ImageHandler struct {
	imageService *service.ImageService
	logger       *zap.Logger
}

func NewImageHandler(imageService *service.ImageService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{imageService: imageService, logger: logger}
}

// UploadImages accepts multipart field "files" (one or more)
func (h *ImageHandler) UploadImages(c *gin.Context) {
	vehicleID, ok := int64Param(c, "vehicle_id", "invalid vehicle ID")
	if !ok {
		return
	}
	vehicleType := vehicle.Type(c.Param("vehicle_type"))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	form, err := c.MultipartForm()
	if err != nil {
		response.ValidationError(c, "invalid multipart form", err)
		return
	}
	headers := form.File["files"]

	uploads := make([]image.Upload, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			response.ValidationError(c, "failed to read uploaded file", err)
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, image.Upload{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}

	result, err := h.imageService.Upload(c.Request.Context(), vehicleType, vehicleID, uploads)
	if err != nil {
		response.FromError(c, "failed to upload images", err)
		return
	}
	response.Success(c, http.StatusCreated, "images uploaded successfully", result)
}

func (h *ImageHandler) ListVehicleImages(c *gin.Context) {
	vehicleID, ok := int64Param(c, "vehicle_id", "invalid vehicle ID")
	if !ok {
		return
	}

	result, err := h.imageService.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.FromError(c, "failed to list images", err)
		return
	}
	response.Success(c, http.StatusOK, "images retrieved", result)
}

func (h *ImageHandler) GetPrimaryImage(c *gin.Context) {
	vehicleID, ok := int64Param(c, "vehicle_id", "invalid vehicle ID")
	if !ok {
		return
	}

	result, err := h.imageService.Primary(c.Request.Context(), vehicleID)
	if err != nil {
		response.FromError(c, "primary image not found", err)
		return
	}
	response.Success(c, http.StatusOK, "primary image retrieved", result)
}

func (h *ImageHandler) GetImage(c *gin.Context) {
	id, ok := int64Param(c, "id", "invalid image ID")
	if !ok {
		return
	}

	result, err := h.imageService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "image not found", err)
		return
	}
	response.Success(c, http.StatusOK, "image retrieved", result)
}

// DeleteImage refuses to remove the last image of a vehicle
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, ok := int64Param(c, "id", "invalid image ID")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete image", err)
		return
	}
	response.Success(c, http.StatusOK, "image deleted successfully", nil)
}

func (h *ImageHandler) SetPrimaryImage(c *gin.Context) {
	vehicleID, ok := int64Param(c, "vehicle_id", "invalid vehicle ID")
	if !ok {
		return
	}
	imageID, ok := int64Param(c, "image_id", "invalid image ID")
	if !ok {
		return
	}

	if err := h.imageService.SetPrimary(c.Request.Context(), vehicleID, imageID); err != nil {
		response.FromError(c, "failed to set primary image", err)
		return
	}
	response.Success(c, http.StatusOK, "primary image updated", nil)
}

func (h *ImageHandler) ReorderImages(c *gin.Context) {
	vehicleID, ok := int64Param(c, "vehicle_id", "invalid vehicle ID")
	if !ok {
		return
	}

	var req image.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.imageService.Reorder(c.Request.Context(), vehicleID, req.Items); err != nil {
		response.FromError(c, "failed to reorder images", err)
		return
	}
	response.Success(c, http.StatusOK, "images reordered", nil)
}

func int64Param(c *gin.Context, name, message string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v < 1 {
		response.ValidationError(c, message, err)
		return 0, false
	}
	return v, true
}
