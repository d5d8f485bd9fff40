package converter

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

// ScanToValues seeds the scan editor. Items are edited as one
// "name: quantity" line each.
func ScanToValues(s *entity.Scan) form.Values {
	return form.Values{
		"name":        s.Name,
		"actualCost":  decimalString(s.ActualCost),
		"minPrice":    decimalString(s.MinPrice),
		"description": s.Description,
		"items":       FormatScanItems(s.Items),
		"isActive":    boolString(s.IsActive),
	}
}

func ValuesToScanRequest(v form.Values) (*dto.ScanRequest, error) {
	cost, err := decimalValue(v, "actualCost")
	if err != nil {
		return nil, err
	}
	minPrice, err := decimalValue(v, "minPrice")
	if err != nil {
		return nil, err
	}
	items, err := ParseScanItems(v.Get("items"))
	if err != nil {
		return nil, err
	}
	return &dto.ScanRequest{
		Name:        v.Get("name"),
		ActualCost:  json.Number(cost.String()),
		MinPrice:    json.Number(minPrice.String()),
		Description: v.Get("description"),
		Items:       items,
		IsActive:    v.Bool("isActive"),
	}, nil
}

func FormatScanItems(items []entity.ScanItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Name + ": " + strconv.Itoa(it.Quantity)
	}
	return strings.Join(lines, "\n")
}

// ParseScanItems reads "name: quantity" lines. A line without a quantity
// means one unit; blank lines are skipped.
func ParseScanItems(raw string) ([]dto.ScanItemRequest, error) {
	items := make([]dto.ScanItemRequest, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, qty := line, "1"
		if i := strings.LastIndex(line, ":"); i >= 0 {
			name, qty = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}
		n, err := strconv.Atoi(qty)
		if err != nil || n < 1 || name == "" {
			return nil, &FieldError{Field: "items", Key: msgInvalidItems}
		}
		items = append(items, dto.ScanItemRequest{Name: name, Quantity: n})
	}
	return items, nil
}

func ValuesToScanImageRequest(v form.Values) (*dto.ScanImageRequest, error) {
	return &dto.ScanImageRequest{
		URL:         v.Get("url"),
		Type:        v.Get("type"),
		Description: v.Get("description"),
	}, nil
}
