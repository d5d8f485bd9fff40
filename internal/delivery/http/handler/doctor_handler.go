package handler

import (
	"strconv"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
)

type DoctorHandler struct {
	*ResourceHandler[entity.Doctor]
}

func NewDoctorHandler(base *Base, doctorUsecase usecase.ResourceUsecase[entity.Doctor]) *DoctorHandler {
	const ns = "doctors"
	spec := ResourceSpec[entity.Doctor]{
		Name:   ns,
		Module: ns,
		Base:   "/doctors",
		Nav:    ns,
		Schema: doctorSchema(),
		Columns: []ColumnSpec[entity.Doctor]{
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: func(_ Translator, d *entity.Doctor) view.Cell {
				return view.Cell{Text: d.Name}
			}},
			{Key: "specialization", Label: label(ns, "specialization"), Sortable: true, Cell: func(_ Translator, d *entity.Doctor) view.Cell {
				return view.Cell{Text: d.Specialization}
			}},
			{Key: "licenseNumber", Label: label(ns, "licenseNumber"), Cell: func(_ Translator, d *entity.Doctor) view.Cell {
				return view.Cell{Text: d.LicenseNumber}
			}},
			{Key: "contactNumber", Label: label(ns, "contactNumber"), Cell: func(_ Translator, d *entity.Doctor) view.Cell {
				return view.Cell{Text: d.ContactNumber, Class: "ltr"}
			}},
			{Key: "totalPatientsReferred", Label: label(ns, "totalPatientsReferred"), Sortable: true, Cell: func(_ Translator, d *entity.Doctor) view.Cell {
				return view.Cell{Text: strconv.Itoa(d.TotalPatientsReferred)}
			}},
			{Key: "isActive", Label: label(ns, "isActive"), Cell: func(t Translator, d *entity.Doctor) view.Cell {
				return activeCell(t, d.IsActive)
			}},
		},
		DefaultSort:  "createdAt",
		Searchable:   true,
		StatusFilter: true,
		ID:           func(d *entity.Doctor) string { return d.ObjectID },
		Label:        func(d *entity.Doctor) string { return d.Name },
	}
	return &DoctorHandler{ResourceHandler: NewResourceHandler[entity.Doctor](base, doctorUsecase, spec)}
}
