package handler

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
)

type BranchHandler struct {
	*ResourceHandler[entity.Branch]
}

func NewBranchHandler(base *Base, branchUsecase usecase.BranchUsecase) *BranchHandler {
	const ns = "branches"
	text := func(get func(*entity.Branch) string) func(Translator, *entity.Branch) view.Cell {
		return func(_ Translator, b *entity.Branch) view.Cell { return view.Cell{Text: get(b)} }
	}
	spec := ResourceSpec[entity.Branch]{
		Name:   ns,
		Module: ns,
		Base:   "/admin/branches",
		Nav:    ns,
		Schema: branchSchema(),
		Columns: []ColumnSpec[entity.Branch]{
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: text(func(b *entity.Branch) string { return b.Name })},
			{Key: "location", Label: label(ns, "location"), Sortable: true, Cell: text(func(b *entity.Branch) string { return b.Location })},
			{Key: "phone", Label: label(ns, "phone"), Cell: func(_ Translator, b *entity.Branch) view.Cell {
				return view.Cell{Text: b.Phone, Class: "ltr"}
			}},
			{Key: "email", Label: label(ns, "email"), Cell: text(func(b *entity.Branch) string { return b.Email })},
			{Key: "manager", Label: label(ns, "manager"), Sortable: true, Cell: text(func(b *entity.Branch) string { return b.Manager })},
			{Key: "isActive", Label: label(ns, "isActive"), Cell: func(t Translator, b *entity.Branch) view.Cell {
				return activeCell(t, b.IsActive)
			}},
		},
		DefaultSort:  "createdAt",
		Searchable:   true,
		StatusFilter: true,
		ID:           func(b *entity.Branch) string { return b.ObjectID },
		Label:        func(b *entity.Branch) string { return b.Name },
	}
	return &BranchHandler{ResourceHandler: NewResourceHandler[entity.Branch](base, branchUsecase, spec)}
}
