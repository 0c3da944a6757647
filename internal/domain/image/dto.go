package image

import "io"

// Upload is one incoming file, already opened by the transport layer
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

type ReorderItem struct {
	ImageID  int64 `json:"image_id" binding:"required,min=1"`
	Position int   `json:"position" binding:"required"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

type UploadResponse struct {
	Images     []VehicleImage `json:"images"`
	TotalCount int            `json:"total_count"`
}
