package converter

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

// RepresentativeToValues seeds the representative editor.
func RepresentativeToValues(r *entity.Representative) form.Values {
	return form.Values{
		"id":          r.ID,
		"name":        r.Name,
		"age":         intString(r.Age),
		"phoneNumber": r.PhoneNumber,
		"notes":       r.Notes,
		"isActive":    boolString(r.IsActive),
	}
}

func ValuesToRepresentativeRequest(v form.Values) (*dto.RepresentativeRequest, error) {
	age, err := intValue(v, "age")
	if err != nil {
		return nil, err
	}
	return &dto.RepresentativeRequest{
		ID:          v.Get("id"),
		Name:        v.Get("name"),
		Age:         age,
		PhoneNumber: v.Get("phoneNumber"),
		Notes:       v.Get("notes"),
		IsActive:    v.Bool("isActive"),
	}, nil
}

// BranchToValues seeds the branch editor with the phone in national form.
func BranchToValues(b *entity.Branch) form.Values {
	return form.Values{
		"name":     b.Name,
		"location": b.Location,
		"address":  b.Address,
		"phone":    screen.ToNational(b.Phone),
		"email":    b.Email,
		"manager":  b.Manager,
		"isActive": boolString(b.IsActive),
	}
}

// ValuesToBranchRequest puts the country prefix back on the phone.
func ValuesToBranchRequest(v form.Values) (*dto.BranchRequest, error) {
	return &dto.BranchRequest{
		Name:     v.Get("name"),
		Location: v.Get("location"),
		Address:  v.Get("address"),
		Phone:    screen.ToInternational(v.Get("phone")),
		Email:    v.Get("email"),
		Manager:  v.Get("manager"),
		IsActive: v.Bool("isActive"),
	}, nil
}
