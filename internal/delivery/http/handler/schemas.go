package handler

import (
	"regexp"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

var (
	internationalPhone = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	nationalPhone      = regexp.MustCompile(`^\d{9,10}$`)
	imageURL           = regexp.MustCompile(`^https?://\S+$`)
)

func label(ns, field string) string {
	return ns + ".fields." + field
}

func activeField(ns string) form.Field {
	return form.Field{Name: "isActive", Label: label(ns, "isActive"), Kind: form.KindCheckbox, Default: "true"}
}

var genderField = form.Field{
	Name:  "gender",
	Label: "common.gender",
	Kind:  form.KindSelect,
	Options: []form.Option{
		{Value: "", Label: "common.choose"},
		{Value: "male", Label: "common.male"},
		{Value: "female", Label: "common.female"},
	},
	Constraints: []form.Constraint{form.OneOf{Options: []string{"male", "female"}}},
}

func representativeSchema() form.Schema {
	const ns = "representatives"
	return form.NewSchema(
		form.Field{Name: "id", Label: label(ns, "id"), Constraints: []form.Constraint{form.Required{}, form.MaxLength{N: 20}}},
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 2}, form.MaxLength{N: 50}}},
		form.Field{Name: "age", Label: label(ns, "age"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Required{}, form.Numeric{Integer: true}, form.Min{Value: 18}, form.Max{Value: 100},
		}},
		form.Field{Name: "phoneNumber", Label: label(ns, "phoneNumber"), Kind: form.KindTel, Placeholder: "common.phonePlaceholder", Constraints: []form.Constraint{
			form.Required{}, form.Pattern{Expr: internationalPhone, Message: "validation.phone"},
		}},
		form.Field{Name: "notes", Label: label(ns, "notes"), Kind: form.KindTextarea, Constraints: []form.Constraint{form.MaxLength{N: 500}}},
		activeField(ns),
	)
}

// branchSchema edits the phone without its country code; the converter
// adds it back.
func branchSchema() form.Schema {
	const ns = "branches"
	return form.NewSchema(
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 2}, form.MaxLength{N: 100}}},
		form.Field{Name: "location", Label: label(ns, "location"), Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "address", Label: label(ns, "address"), Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "phone", Label: label(ns, "phone"), Kind: form.KindTel, Prefix: screen.CountryPrefix, Constraints: []form.Constraint{
			form.Required{}, form.Pattern{Expr: nationalPhone, Message: "validation.nationalPhone"},
		}},
		form.Field{Name: "email", Label: label(ns, "email"), Kind: form.KindEmail, Constraints: []form.Constraint{form.Email{}}},
		form.Field{Name: "manager", Label: label(ns, "manager"), Constraints: []form.Constraint{form.Required{}}},
		activeField(ns),
	)
}

func doctorSchema() form.Schema {
	const ns = "doctors"
	return form.NewSchema(
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 2}, form.MaxLength{N: 100}}},
		form.Field{Name: "specialization", Label: label(ns, "specialization"), Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "licenseNumber", Label: label(ns, "licenseNumber"), Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "contactNumber", Label: label(ns, "contactNumber"), Kind: form.KindTel, Placeholder: "common.phonePlaceholder", Constraints: []form.Constraint{
			form.Required{}, form.Pattern{Expr: internationalPhone, Message: "validation.phone"},
		}},
		form.Field{Name: "email", Label: label(ns, "email"), Kind: form.KindEmail, Constraints: []form.Constraint{form.Email{}}},
		form.Field{Name: "address.street", Label: "address.street"},
		form.Field{Name: "address.city", Label: "address.city"},
		form.Field{Name: "address.state", Label: "address.state"},
		form.Field{Name: "address.postalCode", Label: "address.postalCode"},
		form.Field{Name: "address.country", Label: "address.country"},
		activeField(ns),
	)
}

// radiologistSchema is the edit dialog. Accounts are created through
// registration, so the username cannot change here.
func radiologistSchema() form.Schema {
	const ns = "radiologists"
	return form.NewSchema(
		form.Field{Name: "username", Label: label(ns, "username"), ReadOnlyOnEdit: true, Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 2}, form.MaxLength{N: 100}}},
		form.Field{Name: "email", Label: label(ns, "email"), Kind: form.KindEmail, Constraints: []form.Constraint{form.Required{}, form.Email{}}},
		genderField,
		form.Field{Name: "age", Label: label(ns, "age"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Numeric{Integer: true}, form.Min{Value: 18}, form.Max{Value: 100},
		}},
		form.Field{Name: "phoneNumber", Label: label(ns, "phoneNumber"), Kind: form.KindTel, Constraints: []form.Constraint{
			form.Pattern{Expr: internationalPhone, Message: "validation.phone"},
		}},
		form.Field{Name: "licenseNumber", Label: label(ns, "licenseNumber"), Constraints: []form.Constraint{form.Required{}}},
		activeField(ns),
	)
}

func passwordFields() []form.Field {
	return []form.Field{
		{Name: "password", Label: "auth.password", Kind: form.KindPassword, Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 8}}},
		{Name: "confirmPassword", Label: "auth.confirmPassword", Kind: form.KindPassword, Constraints: []form.Constraint{
			form.Required{}, form.EqualTo{Field: "password"},
		}},
	}
}

// radiologistRegisterSchema is the first step of adding a radiologist.
func radiologistRegisterSchema() form.Schema {
	const ns = "radiologists"
	fields := []form.Field{
		{Name: "username", Label: label(ns, "username"), Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 3}, form.MaxLength{N: 30}}},
		{Name: "email", Label: label(ns, "email"), Kind: form.KindEmail, Constraints: []form.Constraint{form.Required{}, form.Email{}}},
	}
	fields = append(fields, passwordFields()...)
	fields = append(fields,
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 2}, form.MaxLength{N: 100}}},
		genderField,
		form.Field{Name: "age", Label: label(ns, "age"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Numeric{Integer: true}, form.Min{Value: 18}, form.Max{Value: 100},
		}},
		form.Field{Name: "phoneNumber", Label: label(ns, "phoneNumber"), Kind: form.KindTel, Constraints: []form.Constraint{
			form.Pattern{Expr: internationalPhone, Message: "validation.phone"},
		}},
		form.Field{Name: "licenseNumber", Label: label(ns, "licenseNumber"), Constraints: []form.Constraint{form.Required{}}},
	)
	return form.NewSchema(fields...)
}

func scanSchema() form.Schema {
	const ns = "scans"
	return form.NewSchema(
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MaxLength{N: 100}}},
		form.Field{Name: "actualCost", Label: label(ns, "actualCost"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Required{}, form.Numeric{}, form.Min{Value: 0},
		}},
		form.Field{Name: "minPrice", Label: label(ns, "minPrice"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Required{}, form.Numeric{}, form.Min{Value: 0},
		}},
		form.Field{Name: "description", Label: label(ns, "description"), Kind: form.KindTextarea, Constraints: []form.Constraint{form.MaxLength{N: 500}}},
		form.Field{Name: "items", Label: label(ns, "items"), Kind: form.KindTextarea, Placeholder: "scans.itemsPlaceholder"},
		activeField(ns),
	)
}

func scanImageSchema() form.Schema {
	const ns = "scans"
	options := []form.Option{{Value: "", Label: "common.choose"}}
	values := make([]string, 0, len(entity.ImageTypes))
	for _, t := range entity.ImageTypes {
		options = append(options, form.Option{Value: string(t), Label: "scans.imageTypes." + string(t)})
		values = append(values, string(t))
	}
	return form.NewSchema(
		form.Field{Name: "url", Label: label(ns, "imageUrl"), Kind: form.KindText, Constraints: []form.Constraint{
			form.Required{}, form.Pattern{Expr: imageURL, Message: "validation.url"},
		}},
		form.Field{Name: "type", Label: label(ns, "imageType"), Kind: form.KindSelect, Options: options, Constraints: []form.Constraint{
			form.Required{}, form.OneOf{Options: values},
		}},
		form.Field{Name: "description", Label: label(ns, "imageDescription"), Constraints: []form.Constraint{form.MaxLength{N: 200}}},
	)
}

func stockSchema() form.Schema {
	const ns = "stock"
	return form.NewSchema(
		form.Field{Name: "name", Label: label(ns, "name"), Constraints: []form.Constraint{form.Required{}, form.MaxLength{N: 100}}},
		form.Field{Name: "category", Label: label(ns, "category"), Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "quantity", Label: label(ns, "quantity"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Required{}, form.Numeric{Integer: true}, form.Min{Value: 0},
		}},
		form.Field{Name: "unit", Label: label(ns, "unit"), Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "minimumQuantity", Label: label(ns, "minimumQuantity"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Required{}, form.Numeric{Integer: true}, form.Min{Value: 0},
		}},
		form.Field{Name: "price", Label: label(ns, "price"), Kind: form.KindNumber, Constraints: []form.Constraint{
			form.Required{}, form.Numeric{}, form.Min{Value: 0},
		}},
		form.Field{Name: "supplier", Label: label(ns, "supplier")},
		form.Field{Name: "location", Label: label(ns, "location")},
		form.Field{Name: "expiryDate", Label: label(ns, "expiryDate"), Kind: form.KindDate},
		form.Field{Name: "notes", Label: label(ns, "notes"), Kind: form.KindTextarea, Constraints: []form.Constraint{form.MaxLength{N: 500}}},
	)
}

func loginSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "username", Label: "auth.username", Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "password", Label: "auth.password", Kind: form.KindPassword, Constraints: []form.Constraint{form.Required{}}},
	)
}

func twoFactorSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "token", Label: "registration.code", Placeholder: "registration.codePlaceholder", Constraints: []form.Constraint{
			form.Required{}, form.Pattern{Expr: regexp.MustCompile(`^\d{6}$`), Message: "validation.otp"},
		}},
	)
}

func registerSchema() form.Schema {
	fields := []form.Field{
		{Name: "username", Label: "auth.username", Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 3}, form.MaxLength{N: 30}}},
		{Name: "email", Label: "auth.email", Kind: form.KindEmail, Constraints: []form.Constraint{form.Required{}, form.Email{}}},
		{Name: "name", Label: "auth.name", Constraints: []form.Constraint{form.Required{}, form.MinLength{N: 2}}},
	}
	return form.NewSchema(append(fields, passwordFields()...)...)
}

func forgotSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "email", Label: "auth.email", Kind: form.KindEmail, Constraints: []form.Constraint{form.Required{}, form.Email{}}},
	)
}

func resetSchema() form.Schema {
	return form.NewSchema(passwordFields()...)
}

func settingsSchema(languages []string) form.Schema {
	langs := make([]form.Option, 0, len(languages))
	for _, l := range languages {
		langs = append(langs, form.Option{Value: l, Label: "languages." + l})
	}
	return form.NewSchema(
		form.Field{Name: "language", Label: "settings.language", Kind: form.KindSelect, Options: langs, Constraints: []form.Constraint{form.Required{}}},
		form.Field{Name: "theme", Label: "settings.theme", Kind: form.KindSelect, Options: []form.Option{
			{Value: "light", Label: "settings.light"},
			{Value: "dark", Label: "settings.dark"},
		}, Constraints: []form.Constraint{form.Required{}}},
	)
}
