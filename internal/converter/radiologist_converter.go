package converter

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

// RadiologistToValues seeds the radiologist editor. The username is shown
// read-only and never sent back.
func RadiologistToValues(r *entity.Radiologist) form.Values {
	return form.Values{
		"username":      r.Username,
		"name":          r.Name,
		"email":         r.Email,
		"gender":        r.Gender,
		"age":           intString(r.Age),
		"phoneNumber":   r.PhoneNumber,
		"licenseNumber": r.LicenseNumber,
		"isActive":      boolString(r.IsActive),
	}
}

func ValuesToRadiologistRequest(v form.Values) (*dto.RadiologistUpdateRequest, error) {
	age, err := intValue(v, "age")
	if err != nil {
		return nil, err
	}
	return &dto.RadiologistUpdateRequest{
		Name:          v.Get("name"),
		Email:         v.Get("email"),
		Gender:        v.Get("gender"),
		Age:           age,
		PhoneNumber:   v.Get("phoneNumber"),
		LicenseNumber: v.Get("licenseNumber"),
		IsActive:      v.Bool("isActive"),
	}, nil
}

// ValuesToRegisterRequest builds the registration body. role is fixed by the
// caller: the radiologist dialog registers radiologists only.
func ValuesToRegisterRequest(v form.Values, role string) (*dto.RegisterRequest, error) {
	age, err := intValue(v, "age")
	if err != nil {
		return nil, err
	}
	return &dto.RegisterRequest{
		Username:      v.Get("username"),
		Email:         v.Get("email"),
		Password:      v.Get("password"),
		Name:          v.Get("name"),
		Role:          role,
		Gender:        v.Get("gender"),
		Age:           age,
		PhoneNumber:   v.Get("phoneNumber"),
		LicenseNumber: v.Get("licenseNumber"),
	}, nil
}
