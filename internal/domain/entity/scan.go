package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImageType enumerates the image formats a scan can carry.
type ImageType string

const (
	ImageTypeJPEG  ImageType = "jpeg"
	ImageTypePNG   ImageType = "png"
	ImageTypeDICOM ImageType = "dicom"
)

// ImageTypes lists the accepted image types.
var ImageTypes = []ImageType{ImageTypeJPEG, ImageTypePNG, ImageTypeDICOM}

type Scan struct {
	ObjectID    string          `json:"_id"`
	Name        string          `json:"name"`
	ActualCost  decimal.Decimal `json:"actualCost"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	Description string          `json:"description"`
	Items       []ScanItem      `json:"items"`
	Images      []ScanImage     `json:"images"`
	IsActive    bool            `json:"isActive"`
}

// Margin is the gap between the minimum price and the actual cost.
func (s *Scan) Margin() decimal.Decimal {
	return s.MinPrice.Sub(s.ActualCost)
}

// ScanItem is an inventory item consumed by one scan.
type ScanItem struct {
	ItemID   string `json:"item,omitempty"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ScanImage struct {
	ObjectID    string    `json:"_id"`
	URL         string    `json:"url"`
	Type        ImageType `json:"type"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
