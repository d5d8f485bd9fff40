package handler

import (
	"net/http"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
)

type ProfileHandler struct {
	*Base
}

func NewProfileHandler(base *Base) *ProfileHandler {
	return &ProfileHandler{Base: base}
}

// Show renders the signed-in principal as resolved from the backend.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	t := h.translator(r)
	p := h.principal(r)

	super := t("common.no")
	if p.SuperAdmin() {
		super = t("common.yes")
	}
	pv := &view.ProfileView{
		Fields: []view.Card{
			{Label: t("auth.username"), Value: p.Username},
			{Label: t("auth.name"), Value: p.Name},
			{Label: t("auth.email"), Value: p.Email},
			{Label: t("profile.role"), Value: t("roles." + p.Role)},
			{Label: t("profile.superAdmin"), Value: super},
		},
		Columns: []view.Column{
			{Key: "module", Label: t("profile.module")},
			{Key: "operations", Label: t("profile.operations")},
		},
	}
	for _, priv := range p.Privileges {
		ops := make([]string, 0, len(priv.Operations))
		for _, op := range priv.Operations {
			ops = append(ops, t("operations."+string(op)))
		}
		pv.Privileges = append(pv.Privileges, view.Row{ID: priv.Module, Cells: []view.Cell{
			{Text: t("modules." + priv.Module)},
			{Text: strings.Join(ops, ", ")},
		}})
	}
	h.render(w, r, http.StatusOK, view.PageProfile, h.page(r, t("profile.title"), "profile", pv))
}
