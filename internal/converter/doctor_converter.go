package converter

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

// DoctorToValues seeds the doctor editor. Address parts use dotted names so
// server errors such as "address.city" land on the right input.
func DoctorToValues(d *entity.Doctor) form.Values {
	return form.Values{
		"name":               d.Name,
		"specialization":     d.Specialization,
		"licenseNumber":      d.LicenseNumber,
		"contactNumber":      d.ContactNumber,
		"email":              d.Email,
		"address.street":     d.Address.Street,
		"address.city":       d.Address.City,
		"address.state":      d.Address.State,
		"address.postalCode": d.Address.PostalCode,
		"address.country":    d.Address.Country,
		"isActive":           boolString(d.IsActive),
	}
}

func ValuesToDoctorRequest(v form.Values) (*dto.DoctorRequest, error) {
	return &dto.DoctorRequest{
		Name:           v.Get("name"),
		Specialization: v.Get("specialization"),
		LicenseNumber:  v.Get("licenseNumber"),
		ContactNumber:  v.Get("contactNumber"),
		Email:          v.Get("email"),
		Address: dto.AddressRequest{
			Street:     v.Get("address.street"),
			City:       v.Get("address.city"),
			State:      v.Get("address.state"),
			PostalCode: v.Get("address.postalCode"),
			Country:    v.Get("address.country"),
		},
		IsActive: v.Bool("isActive"),
	}, nil
}
