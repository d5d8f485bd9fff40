package converter

import (
	"encoding/json"
	"time"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

const dateLayout = "2006-01-02"

func StockItemToValues(s *entity.StockItem) form.Values {
	expiry := ""
	if s.ExpiryDate != nil {
		expiry = s.ExpiryDate.Format(dateLayout)
	}
	return form.Values{
		"name":            s.Name,
		"category":        s.Category,
		"quantity":        intString(s.Quantity),
		"unit":            s.Unit,
		"minimumQuantity": intString(s.MinimumQuantity),
		"price":           decimalString(s.Price),
		"supplier":        s.Supplier,
		"location":        s.Location,
		"expiryDate":      expiry,
		"notes":           s.Notes,
	}
}

func ValuesToStockItemRequest(v form.Values) (*dto.StockItemRequest, error) {
	quantity, err := intValue(v, "quantity")
	if err != nil {
		return nil, err
	}
	minimum, err := intValue(v, "minimumQuantity")
	if err != nil {
		return nil, err
	}
	price, err := decimalValue(v, "price")
	if err != nil {
		return nil, err
	}

	expiry := v.Get("expiryDate")
	if expiry != "" {
		d, err := time.Parse(dateLayout, expiry)
		if err != nil {
			return nil, &FieldError{Field: "expiryDate", Key: msgInvalidDate}
		}
		expiry = d.Format(time.RFC3339)
	}

	return &dto.StockItemRequest{
		Name:            v.Get("name"),
		Category:        v.Get("category"),
		Quantity:        quantity,
		Unit:            v.Get("unit"),
		MinimumQuantity: minimum,
		Price:           json.Number(price.String()),
		Supplier:        v.Get("supplier"),
		Location:        v.Get("location"),
		ExpiryDate:      expiry,
		Notes:           v.Get("notes"),
	}, nil
}
