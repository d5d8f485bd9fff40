package dto

import "encoding/json"

type ScanItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ScanRequest carries money as JSON numbers rendered from decimals so no
// float rounding happens on the way out.
type ScanRequest struct {
	Name        string            `json:"name"`
	ActualCost  json.Number       `json:"actualCost"`
	MinPrice    json.Number       `json:"minPrice"`
	Description string            `json:"description"`
	Items       []ScanItemRequest `json:"items"`
	IsActive    bool              `json:"isActive"`
}

type ScanImageRequest struct {
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type StockItemRequest struct {
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Quantity        int         `json:"quantity"`
	Unit            string      `json:"unit"`
	MinimumQuantity int         `json:"minimumQuantity"`
	Price           json.Number `json:"price"`
	Supplier        string      `json:"supplier,omitempty"`
	Location        string      `json:"location,omitempty"`
	ExpiryDate      string      `json:"expiryDate,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}
