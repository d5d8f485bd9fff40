package handler

import (
	"context"
	"net/http"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
)

var auditActions = []string{
	entity.AuditActionCreate,
	entity.AuditActionUpdate,
	entity.AuditActionDelete,
	entity.AuditActionLogin,
	entity.AuditActionLogout,
}

// AuditLogHandler is the read-only audit trail, filterable by action.
type AuditLogHandler struct {
	*ResourceHandler[entity.AuditLog]
}

func NewAuditLogHandler(base *Base, auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	const ns = "audit"
	h := &AuditLogHandler{}
	spec := ResourceSpec[entity.AuditLog]{
		Name: ns,
		Base: "/admin/audit",
		Nav:  ns,
		Columns: []ColumnSpec[entity.AuditLog]{
			{Key: "createdAt", Label: label(ns, "createdAt"), Sortable: true, Cell: func(_ Translator, a *entity.AuditLog) view.Cell {
				return view.Cell{Text: formatDateTime(a.CreatedAt)}
			}},
			{Key: "user", Label: label(ns, "user"), Cell: func(_ Translator, a *entity.AuditLog) view.Cell {
				return view.Cell{Text: a.ActorName()}
			}},
			{Key: "action", Label: label(ns, "action"), Sortable: true, Cell: func(t Translator, a *entity.AuditLog) view.Cell {
				return view.Cell{Text: t("audit.actions." + a.Action), Chip: a.Action}
			}},
			{Key: "resource", Label: label(ns, "resource"), Sortable: true, Cell: func(_ Translator, a *entity.AuditLog) view.Cell {
				return view.Cell{Text: a.Resource}
			}},
			{Key: "resourceId", Label: label(ns, "resourceId"), Cell: func(_ Translator, a *entity.AuditLog) view.Cell {
				return view.Cell{Text: a.ResourceID, Class: "mono"}
			}},
			{Key: "ipAddress", Label: label(ns, "ipAddress"), Cell: func(_ Translator, a *entity.AuditLog) view.Cell {
				return view.Cell{Text: a.IPAddress, Class: "ltr"}
			}},
		},
		DefaultSort: "createdAt",
		Searchable:  true,
		Params:      []string{"action"},
		ID:          func(a *entity.AuditLog) string { return a.ID },
		Load: func(ctx context.Context, r *http.Request, state screen.ListState) (*entity.Page[entity.AuditLog], error) {
			return auditLogUsecase.Load(ctx, state, actionFilter(r))
		},
	}
	spec.Filters = h.filters
	h.ResourceHandler = NewResourceHandler[entity.AuditLog](base, nil, spec)
	return h
}

// actionFilter accepts only known actions.
func actionFilter(r *http.Request) string {
	a := r.URL.Query().Get("action")
	for _, known := range auditActions {
		if a == known {
			return a
		}
	}
	return ""
}

func (h *AuditLogHandler) filters(r *http.Request) []view.Filter {
	current := actionFilter(r)
	f := view.Filter{
		Name:    "action",
		Label:   h.t(r, "audit.fields.action"),
		Value:   current,
		Options: []view.Option{{Value: "", Label: h.t(r, "audit.allActions"), Selected: current == ""}},
	}
	for _, a := range auditActions {
		f.Options = append(f.Options, view.Option{Value: a, Label: h.t(r, "audit.actions."+a), Selected: a == current})
	}
	return []view.Filter{f}
}
