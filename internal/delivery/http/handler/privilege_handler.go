package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

const privilegesBase = "/admin/privileges"

// PrivilegeHandler lists backend users and edits their privilege matrix.
type PrivilegeHandler struct {
	*ResourceHandler[entity.User]
	privilegeUsecase usecase.PrivilegeUsecase
}

func NewPrivilegeHandler(base *Base, privilegeUsecase usecase.PrivilegeUsecase) *PrivilegeHandler {
	const ns = "privileges"
	h := &PrivilegeHandler{privilegeUsecase: privilegeUsecase}
	spec := ResourceSpec[entity.User]{
		Name: ns,
		Base: privilegesBase,
		Nav:  ns,
		Columns: []ColumnSpec[entity.User]{
			{Key: "username", Label: label(ns, "username"), Sortable: true, Cell: func(_ Translator, u *entity.User) view.Cell {
				return view.Cell{Text: u.Username}
			}},
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: func(_ Translator, u *entity.User) view.Cell {
				return view.Cell{Text: u.Name}
			}},
			{Key: "email", Label: label(ns, "email"), Cell: func(_ Translator, u *entity.User) view.Cell {
				return view.Cell{Text: u.Email}
			}},
			{Key: "role", Label: label(ns, "role"), Sortable: true, Cell: func(t Translator, u *entity.User) view.Cell {
				return view.Cell{Text: t("roles." + u.Role)}
			}},
			{Key: "modules", Label: label(ns, "modules"), Cell: func(_ Translator, u *entity.User) view.Cell {
				return view.Cell{Text: strconv.Itoa(len(u.Privileges))}
			}},
			{Key: "isActive", Label: label(ns, "isActive"), Cell: func(t Translator, u *entity.User) view.Cell {
				return activeCell(t, u.IsActive)
			}},
		},
		DefaultSort:  "createdAt",
		Searchable:   true,
		StatusFilter: true,
		ID:           func(u *entity.User) string { return u.ID },
		Label:        func(u *entity.User) string { return u.Username },
		Load: func(ctx context.Context, _ *http.Request, state screen.ListState) (*entity.Page[entity.User], error) {
			return privilegeUsecase.Users(ctx, state)
		},
	}
	spec.RowActions = func(r *http.Request, state screen.ListState, u *entity.User) []view.Action {
		if entity.IsSuperAdminRole(u.Role) {
			return nil
		}
		return []view.Action{{
			Label: h.t(r, "privileges.manage"),
			Href:  h.href(state, nil, "dialog", "privileges", "id", u.ID),
		}}
	}
	spec.Dialogs = map[string]DialogFunc{"privileges": h.matrixDialog}
	h.ResourceHandler = NewResourceHandler[entity.User](base, nil, spec)
	return h
}

func moduleOperations(m entity.PrivilegeModule) []entity.Operation {
	if len(m.Operations) == 0 {
		return entity.Operations
	}
	return m.Operations
}

func permName(module string, op entity.Operation) string {
	return "perm:" + module + ":" + string(op)
}

func (h *PrivilegeHandler) matrixDialog(r *http.Request, lv *view.ListView) {
	ctx := h.backendCtx(r)
	user, err := h.privilegeUsecase.User(ctx, r.URL.Query().Get("id"))
	if err != nil {
		h.failure(r, err)
		return
	}
	modules, err := h.privilegeUsecase.Modules(ctx)
	if err != nil {
		h.failure(r, err)
		return
	}

	t := h.translator(r)
	mv := &view.MatrixView{
		Title:      t("privileges.matrixTitle"),
		User:       user.Username,
		Action:     privilegesBase + "/" + url.PathEscape(user.ID),
		CancelHref: h.href(lv.State, nil),
		Hidden:     map[string]string{"return": lv.Hidden["return"]},
	}
	for _, op := range entity.Operations {
		mv.Operations = append(mv.Operations, view.Column{Key: string(op), Label: t("operations." + string(op))})
	}
	for _, m := range modules {
		row := view.MatrixRow{Module: m.Name, Label: t("modules." + m.Name)}
		offered := moduleOperations(m)
		held := entity.Privilege{Module: m.Name, Operations: user.PrivilegesFor(m.Name)}
		for _, op := range entity.Operations {
			cell := view.MatrixCell{}
			if (entity.Privilege{Operations: offered}).Has(op) {
				cell.Name = permName(m.Name, op)
				cell.Checked = held.Has(op)
			}
			row.Cells = append(row.Cells, cell)
		}
		mv.Modules = append(mv.Modules, row)
	}
	lv.Matrix = mv
}

// Apply grants and revokes so the user's privileges match the submitted matrix.
func (h *PrivilegeHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_ = r.ParseForm()
	state, _ := h.returnState(r)
	back := h.href(state, nil)

	ctx := h.backendCtx(r)
	user, err := h.privilegeUsecase.User(ctx, id)
	if err == nil && entity.IsSuperAdminRole(user.Role) {
		h.forbidden(w, r, back)
		return
	}
	var modules []entity.PrivilegeModule
	if err == nil {
		modules, err = h.privilegeUsecase.Modules(ctx)
	}
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.failure(r, err)
		response.SeeOther(w, r, back)
		return
	}

	desired := make(map[string][]entity.Operation, len(modules))
	for _, m := range modules {
		ops := []entity.Operation{}
		for _, op := range moduleOperations(m) {
			if r.PostForm.Get(permName(m.Name, op)) == "true" {
				ops = append(ops, op)
			}
		}
		desired[m.Name] = ops
	}

	changes, err := h.privilegeUsecase.Apply(ctx, user, desired)
	p := h.principal(r)
	for _, c := range changes {
		h.audit.LogAction(ctx, p, "privileges:"+c.Module, "users", user.ID, nil)
	}
	if err != nil {
		h.audit.LogAction(ctx, p, "privileges", "users", user.ID, err)
		if h.expired(w, r, err) {
			return
		}
		h.failure(r, err)
		response.SeeOther(w, r, back)
		return
	}

	if len(changes) == 0 {
		h.notifyKey(r, feedback.SeverityInfo, "privileges.unchanged")
	} else {
		h.notify(r, feedback.SeveritySuccess, h.tp(r, "privileges.updated", map[string]interface{}{"Name": user.Username}))
	}
	response.SeeOther(w, r, back)
}
