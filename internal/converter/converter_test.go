package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

func TestBranchPhoneRoundTrip(t *testing.T) {
	stored := &entity.Branch{ObjectID: "B1", Name: "Main", Phone: "+201234567890", IsActive: true}

	values := BranchToValues(stored)
	assert.Equal(t, "1234567890", values["phone"])

	req, err := ValuesToBranchRequest(values)
	require.NoError(t, err)
	assert.Equal(t, "+201234567890", req.Phone)
	assert.True(t, req.IsActive)

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "email", "empty email is omitted")
}

func TestRepresentativeRequest(t *testing.T) {
	req, err := ValuesToRepresentativeRequest(form.Values{
		"id": "R-1", "name": "Alex", "age": "30", "phoneNumber": "+15551234567", "isActive": "true",
	})
	require.NoError(t, err)
	assert.Equal(t, dto.RepresentativeRequest{
		ID: "R-1", Name: "Alex", Age: 30, PhoneNumber: "+15551234567", IsActive: true,
	}, *req)

	_, err = ValuesToRepresentativeRequest(form.Values{"age": "thirty"})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "age", fe.Field)
}

func TestRepresentativeSeedRoundTrip(t *testing.T) {
	rep := &entity.Representative{ObjectID: "X", ID: "R-1", Name: "Alex", Age: 30, PhoneNumber: "+15551234567", IsActive: true}
	req, err := ValuesToRepresentativeRequest(RepresentativeToValues(rep))
	require.NoError(t, err)
	assert.Equal(t, rep.ID, req.ID)
	assert.Equal(t, rep.Age, req.Age)
}

func TestScanItems(t *testing.T) {
	items, err := ParseScanItems("Contrast dye: 2\n\n  Gloves:10 \nSyringe")
	require.NoError(t, err)
	assert.Equal(t, []dto.ScanItemRequest{
		{Name: "Contrast dye", Quantity: 2},
		{Name: "Gloves", Quantity: 10},
		{Name: "Syringe", Quantity: 1},
	}, items)

	_, err = ParseScanItems("Gloves: many")
	assert.Error(t, err)
	_, err = ParseScanItems(": 3")
	assert.Error(t, err)

	assert.Equal(t, "Gloves: 10\nSyringe: 1", FormatScanItems([]entity.ScanItem{{Name: "Gloves", Quantity: 10}, {Name: "Syringe", Quantity: 1}}))
}

func TestScanRequestMoney(t *testing.T) {
	scan := &entity.Scan{Name: "MRI", ActualCost: decimal.RequireFromString("1200.50"), MinPrice: decimal.RequireFromString("1500")}
	values := ScanToValues(scan)
	assert.Equal(t, "1200.5", values["actualCost"])

	req, err := ValuesToScanRequest(values)
	require.NoError(t, err)
	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"actualCost":1200.5`)
	assert.Contains(t, string(body), `"minPrice":1500`)
	assert.Contains(t, string(body), `"items":[]`)
}

func TestStockItemExpiry(t *testing.T) {
	expiry := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	item := &entity.StockItem{Name: "Gauze", Quantity: 4, MinimumQuantity: 5, ExpiryDate: &expiry, Price: decimal.RequireFromString("2.25")}

	values := StockItemToValues(item)
	assert.Equal(t, "2025-03-01", values["expiryDate"])

	req, err := ValuesToStockItemRequest(values)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T00:00:00Z", req.ExpiryDate)
	assert.Equal(t, json.Number("2.25"), req.Price)

	values["expiryDate"] = "01/03/2025"
	_, err = ValuesToStockItemRequest(values)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "expiryDate", fe.Field)
}

func TestDoctorAddress(t *testing.T) {
	d := &entity.Doctor{Name: "Dr. Who", Address: entity.Address{City: "Cairo", Country: "EG"}}
	req, err := ValuesToDoctorRequest(DoctorToValues(d))
	require.NoError(t, err)
	assert.Equal(t, "Cairo", req.Address.City)
	assert.Equal(t, "EG", req.Address.Country)
}
