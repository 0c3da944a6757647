// internal/domain/image/entity.go
package image

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	MaxImagesPerVehicle = 10
	MinImagesPerVehicle = 1
	MaxFileSize         = 10 << 20
	ThumbnailSize       = 300
	ThumbnailQuality    = 85
	ThumbnailPrefix     = "thumb_"
)

var AllowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// VehicleImage is one photo of a vehicle. Positions are dense from 1 and at
// most one image per vehicle is primary.
type VehicleImage struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID     int64     `gorm:"not null;index:idx_vehicle_images_vehicle_position,priority:1" json:"vehicle_id"`
	VehicleType   string    `gorm:"size:20;not null" json:"vehicle_type"`
	Filename      string    `gorm:"size:255;not null" json:"filename"`
	OriginalName  string    `gorm:"size:255" json:"original_name"`
	FilePath      string    `gorm:"size:500;not null" json:"-"`
	ThumbnailPath string    `gorm:"size:500" json:"-"`
	URL           string    `gorm:"size:500;not null" json:"url"`
	ThumbnailURL  string    `gorm:"size:500" json:"thumbnail_url,omitempty"`
	FileSize      int64     `gorm:"not null" json:"file_size"`
	ContentType   string    `gorm:"size:100" json:"content_type"`
	Position      int       `gorm:"not null;index:idx_vehicle_images_vehicle_position,priority:2" json:"position"`
	IsPrimary     bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (VehicleImage) TableName() string { return "vehicle_images" }

// ExtensionAllowed normalises the extension of name and checks it
func ExtensionAllowed(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	return ext, AllowedExtensions[ext]
}
