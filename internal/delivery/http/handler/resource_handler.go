package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

// ColumnSpec is one table column. Label is a translation key.
type ColumnSpec[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Cell     func(t Translator, item *T) view.Cell
}

// DialogFunc fills lv with a dialog named by ?dialog=.
type DialogFunc func(r *http.Request, lv *view.ListView)

// ResourceSpec describes one management screen.
type ResourceSpec[T any] struct {
	// Name is the translation namespace, loader key and audit resource.
	Name   string
	Module string
	Base   string
	Nav    string
	Schema form.Schema

	Columns      []ColumnSpec[T]
	DefaultSort  string
	Searchable   bool
	StatusFilter bool
	// Params are extra query parameters carried through sort and page links.
	Params  []string
	Filters func(r *http.Request) []view.Filter

	ID         func(*T) string
	Label      func(*T) string
	RowClass   func(*T) string
	DetailHref func(*T) string
	RowActions func(r *http.Request, state screen.ListState, item *T) []view.Action
	Toolbar    func(r *http.Request, state screen.ListState) []view.Action
	Dialogs    map[string]DialogFunc
	// Decorate runs on every render after the dialogs.
	Decorate func(r *http.Request, lv *view.ListView)
	// Load replaces the usecase's Load, for lists with their own query.
	Load func(ctx context.Context, r *http.Request, state screen.ListState) (*entity.Page[T], error)
}

// ResourceHandler serves the list, editor and delete flow of one resource.
type ResourceHandler[T any] struct {
	*Base
	usecase usecase.ResourceUsecase[T]
	spec    ResourceSpec[T]
}

type listSnapshot[T any] struct {
	Items []T
	State screen.ListState
}

func NewResourceHandler[T any](base *Base, uc usecase.ResourceUsecase[T], spec ResourceSpec[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{Base: base, usecase: uc, spec: spec}
}

func (h *ResourceHandler[T]) writable() bool {
	return h.usecase != nil && h.usecase.Writable() && h.spec.Schema.Fields != nil
}

func (h *ResourceHandler[T]) sortable() []string {
	keys := []string{h.spec.DefaultSort}
	for _, c := range h.spec.Columns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

func (h *ResourceHandler[T]) state(q url.Values) screen.ListState {
	return screen.ParseListState(q, screen.NewListState(h.pageSize, h.spec.DefaultSort), h.sortable()...)
}

// returnState restores the list a form was posted from.
func (h *ResourceHandler[T]) returnState(r *http.Request) (screen.ListState, url.Values) {
	q, err := url.ParseQuery(r.PostFormValue("return"))
	if err != nil {
		q = url.Values{}
	}
	return h.state(q), q
}

func (h *ResourceHandler[T]) params(q url.Values) url.Values {
	out := url.Values{}
	for _, p := range h.spec.Params {
		if v := q.Get(p); v != "" {
			out.Set(p, v)
		}
	}
	return out
}

// href links to the list in state, keeping the extra params and adding kv pairs.
func (h *ResourceHandler[T]) href(state screen.ListState, extra url.Values, kv ...string) string {
	q := state.URLQuery()
	for k, v := range extra {
		q[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return h.spec.Base + "?" + q.Encode()
}

func (h *ResourceHandler[T]) id(item *T) string {
	if h.spec.ID == nil {
		return ""
	}
	return h.spec.ID(item)
}

func (h *ResourceHandler[T]) dialogKey() string {
	return h.spec.Name + ":editor"
}

func (h *ResourceHandler[T]) deleteAction() string {
	return "delete:" + h.spec.Name
}

func (h *ResourceHandler[T]) fetch(ctx context.Context, r *http.Request, state screen.ListState) (*entity.Page[T], error) {
	if h.spec.Load != nil {
		return h.spec.Load(ctx, r, state)
	}
	return h.usecase.Load(ctx, state)
}

// load fetches the list under the loader's policy. A failed load keeps the
// previous snapshot, flagged stale. It returns false when the browser was
// sent to the login page.
func (h *ResourceHandler[T]) load(w http.ResponseWriter, r *http.Request, state screen.ListState, extra url.Values) (*view.ListView, []T, bool) {
	key := h.spec.Name
	res := screen.Load(h.backendCtx(r), h.loader, h.sessionID(r), key, func(ctx context.Context) (listSnapshot[T], error) {
		page, err := h.fetch(ctx, r, state)
		if err != nil {
			return listSnapshot[T]{}, err
		}
		at := state.WithResult(page.Total, page.TotalPages)
		if at.Page != state.Page {
			// A stale page link or a delete that emptied the last page;
			// show the last page that has rows.
			if page, err = h.fetch(ctx, r, at); err != nil {
				return listSnapshot[T]{}, err
			}
			at = at.WithResult(page.Total, page.TotalPages)
		}
		return listSnapshot[T]{Items: page.Items, State: at}, nil
	})
	if res.Err != nil {
		if h.expired(w, r, res.Err) {
			return nil, nil, false
		}
		h.failure(r, res.Err)
	}

	shown := state
	if res.Has {
		shown = res.Value.State
		if res.Stale {
			shown = state.WithResult(res.Value.State.Total, res.Value.State.TotalPages)
		}
	}
	lv := h.listView(r, shown, extra, res.Value.Items)
	lv.Loaded = res.Has
	lv.Stale = res.Stale
	return lv, res.Value.Items, true
}

func (h *ResourceHandler[T]) listView(r *http.Request, state screen.ListState, extra url.Values, items []T) *view.ListView {
	t := h.translator(r)
	lv := &view.ListView{
		Base:         h.spec.Base,
		Heading:      t(h.spec.Name + ".title"),
		State:        state,
		Searchable:   h.spec.Searchable,
		StatusFilter: h.spec.StatusFilter,
		Hidden:       map[string]string{"return": h.returnQuery(state, extra)},
	}
	if h.spec.Filters != nil {
		lv.Extra = h.spec.Filters(r)
	}

	for _, c := range h.spec.Columns {
		col := view.Column{Key: c.Key, Label: t(c.Label), Sortable: c.Sortable}
		if c.Sortable {
			col.SortHref = h.href(state.ToggleSort(c.Key), extra)
			col.Sorted = state.SortIndicator(c.Key)
		}
		lv.Columns = append(lv.Columns, col)
	}

	for i := range items {
		item := &items[i]
		row := view.Row{ID: h.id(item)}
		if h.spec.RowClass != nil {
			row.Class = h.spec.RowClass(item)
		}
		for _, c := range h.spec.Columns {
			row.Cells = append(row.Cells, c.Cell(t, item))
		}
		row.Actions = h.rowActions(r, state, extra, item)
		lv.Rows = append(lv.Rows, row)
	}

	if state.CanPrev() {
		lv.PrevHref = h.href(state.Prev(), extra)
	}
	if state.CanNext() {
		lv.NextHref = h.href(state.Next(), extra)
	}

	if h.writable() && h.allowed(r, h.spec.Module, entity.OperationCreate) {
		lv.Toolbar = append(lv.Toolbar, view.Action{
			Label: t(h.spec.Name + ".create"),
			Href:  h.href(state, extra, "dialog", "create"),
			Class: "primary",
		})
	}
	if h.spec.Toolbar != nil {
		lv.Toolbar = append(lv.Toolbar, h.spec.Toolbar(r, state)...)
	}
	return lv
}

func (h *ResourceHandler[T]) returnQuery(state screen.ListState, extra url.Values) string {
	q := state.URLQuery()
	for k, v := range extra {
		q[k] = v
	}
	return q.Encode()
}

func (h *ResourceHandler[T]) rowActions(r *http.Request, state screen.ListState, extra url.Values, item *T) []view.Action {
	t := h.translator(r)
	id := h.id(item)
	var actions []view.Action
	if h.spec.DetailHref != nil {
		actions = append(actions, view.Action{Label: t("common.view"), Href: h.spec.DetailHref(item)})
	}
	if h.writable() && h.allowed(r, h.spec.Module, entity.OperationUpdate) {
		actions = append(actions, view.Action{Label: t("common.edit"), Href: h.href(state, extra, "dialog", "edit", "id", id)})
	}
	if h.spec.RowActions != nil {
		actions = append(actions, h.spec.RowActions(r, state, item)...)
	}
	if h.writable() && h.allowed(r, h.spec.Module, entity.OperationDelete) {
		actions = append(actions, view.Action{Label: t("common.delete"), Href: h.href(state, extra, "confirm", "delete", "id", id), Class: "danger"})
	}
	return actions
}

// List renders the screen and whichever dialog the query opens.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	extra := h.params(q)
	lv, items, ok := h.load(w, r, h.state(q), extra)
	if !ok {
		return
	}
	refresh := h.openDialogs(r, lv, items)
	p := h.page(r, lv.Heading, h.spec.Nav, lv)
	if refresh {
		p.Refresh = 1
	}
	h.render(w, r, http.StatusOK, view.PageList, p)
}

// openDialogs reports whether the page should poll for a running submit.
func (h *ResourceHandler[T]) openDialogs(r *http.Request, lv *view.ListView, items []T) bool {
	q := r.URL.Query()
	refresh := false

	if pending, busy := h.inFlight.Lookup(h.sessionID(r), h.dialogKey()); busy {
		ed := h.openEditor(r, pending.Target, pending.Values)
		lv.Editor = h.editorView(r, lv.State, lv.Hidden["return"], ed)
		lv.Editor.Submitting = true
		lv.Editor.Refresh = true
		refresh = true
	} else {
		switch d := q.Get("dialog"); d {
		case "":
		case "create":
			if h.writable() && h.allowed(r, h.spec.Module, entity.OperationCreate) {
				lv.Editor = h.editorView(r, lv.State, lv.Hidden["return"], h.openEditor(r, "", nil))
			}
		case "edit":
			if h.writable() && h.allowed(r, h.spec.Module, entity.OperationUpdate) {
				h.openEdit(r, lv, q.Get("id"))
			}
		default:
			if fn, ok := h.spec.Dialogs[d]; ok {
				fn(r, lv)
			}
		}
	}

	if q.Get("confirm") == "delete" && h.writable() && h.allowed(r, h.spec.Module, entity.OperationDelete) {
		h.openConfirm(r, lv, items, q.Get("id"))
	}
	if h.spec.Decorate != nil {
		h.spec.Decorate(r, lv)
	}
	return refresh
}

func (h *ResourceHandler[T]) openEdit(r *http.Request, lv *view.ListView, id string) {
	seed, err := h.usecase.Seed(h.backendCtx(r), id)
	if err != nil {
		h.failure(r, err)
		return
	}
	lv.Editor = h.editorView(r, lv.State, lv.Hidden["return"], h.openEditor(r, id, seed))
}

func (h *ResourceHandler[T]) openConfirm(r *http.Request, lv *view.ListView, items []T, id string) {
	if id == "" {
		return
	}
	label := id
	for i := range items {
		if h.id(&items[i]) == id && h.spec.Label != nil {
			label = h.spec.Label(&items[i])
		}
	}
	c, err := h.confirmer.Open(h.sessionID(r), h.deleteAction(), id, label)
	if err != nil {
		h.log.Errorf("Failed to issue confirmation: %+v", err)
		h.notifyKey(r, feedback.SeverityError, "errors.unknown")
		return
	}
	lv.Confirm = &view.ConfirmView{
		Title:      h.t(r, h.spec.Name+".delete"),
		Message:    h.tp(r, h.spec.Name+".deleteConfirm", map[string]interface{}{"Name": label}),
		Action:     h.spec.Base + "/" + url.PathEscape(id) + "/delete",
		Token:      c.Token,
		CancelHref: h.href(lv.State, h.params(r.URL.Query())),
		Hidden:     map[string]string{"return": lv.Hidden["return"]},
	}
}

func (h *ResourceHandler[T]) openEditor(r *http.Request, target string, seed form.Values) *screen.Editor {
	ed := screen.NewEditor(h.spec.Schema, h.formValidator(r))
	if target == "" {
		if seed == nil {
			seed = h.spec.Schema.Defaults()
		}
		ed.OpenCreate()
		ed.Form().Reinitialize(seed)
		return ed
	}
	ed.OpenEdit(target, seed)
	return ed
}

func (h *ResourceHandler[T]) editorView(r *http.Request, state screen.ListState, returnQuery string, ed *screen.Editor) *view.FormView {
	t := h.translator(r)
	readOnly := map[string]bool{}
	title := h.spec.Name + ".create"
	action := h.spec.Base
	if ed.IsEdit() {
		for _, f := range h.spec.Schema.Fields {
			if f.ReadOnlyOnEdit {
				readOnly[f.Name] = true
			}
		}
		title = h.spec.Name + ".edit"
		action = h.spec.Base + "/" + url.PathEscape(ed.Target())
	}
	q, _ := url.ParseQuery(returnQuery)
	return &view.FormView{
		Title:       t(title),
		Action:      action,
		SubmitLabel: t("common.save"),
		CancelHref:  h.href(state, h.params(q)),
		Fields:      view.NewFormView(ed.Form(), readOnly, t),
		Hidden:      map[string]string{"return": returnQuery},
		Submitting:  ed.Submitting(),
	}
}

// Save handles the editor's POST: create on the base path, update on base/{id}.
func (h *ResourceHandler[T]) Save(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	op := entity.OperationCreate
	if id != "" {
		op = entity.OperationUpdate
	}
	values := h.spec.Schema.Parse(r)
	state, q := h.returnState(r)
	extra := h.params(q)
	back := h.href(state, extra)

	if !h.writable() || !h.allowed(r, h.spec.Module, op) {
		h.forbidden(w, r, back)
		return
	}

	release, ok := h.inFlight.Acquire(h.sessionID(r), screen.Pending{Dialog: h.dialogKey(), Target: id, Values: values})
	if !ok {
		h.notifyKey(r, feedback.SeverityWarning, "common.busy")
		response.SeeOther(w, r, back)
		return
	}
	defer release()

	ctx := h.backendCtx(r)
	ed := h.openEditor(r, id, values)
	var saved *T
	err := ed.Submit(ctx, func(ctx context.Context, v form.Values) error {
		var err error
		if id == "" {
			saved, err = h.usecase.Create(ctx, v)
		} else {
			saved, err = h.usecase.Update(ctx, id, v)
		}
		return err
	})

	p := h.principal(r)
	if err == nil {
		target := id
		if saved != nil && h.id(saved) != "" {
			target = h.id(saved)
		}
		if id == "" {
			h.audit.LogCreate(ctx, p, h.spec.Name, target)
			h.notifyKey(r, feedback.SeveritySuccess, h.spec.Name+".created")
			back = h.href(state.GoTo(1), extra)
		} else {
			h.audit.LogUpdate(ctx, p, h.spec.Name, target)
			h.notifyKey(r, feedback.SeveritySuccess, h.spec.Name+".updated")
		}
		response.SeeOther(w, r, back)
		return
	}

	h.audit.LogAction(ctx, p, string(op), h.spec.Name, id, err)
	if h.expired(w, r, err) {
		return
	}
	status := h.applyErrors(r, ed.Form(), err)
	lv, _, ok := h.load(w, r, state, extra)
	if !ok {
		return
	}
	lv.Editor = h.editorView(r, lv.State, lv.Hidden["return"], ed)
	page := h.page(r, lv.Heading, h.spec.Nav, lv)
	page.Path = h.href(lv.State, extra)
	h.render(w, r, status, view.PageList, page)
}

// Delete runs a confirmed delete. The token must have been issued to this
// session for this row.
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_ = r.ParseForm()
	state, q := h.returnState(r)
	back := h.href(state, h.params(q))

	if !h.writable() || !h.allowed(r, h.spec.Module, entity.OperationDelete) {
		h.forbidden(w, r, back)
		return
	}
	if err := h.confirmer.Confirm(h.sessionID(r), h.deleteAction(), id, r.PostForm.Get("confirmToken")); err != nil {
		h.log.Warnf("Rejected delete of %s %s: %v", h.spec.Name, id, err)
		h.notifyKey(r, feedback.SeverityError, "errors.confirmation")
		response.SeeOther(w, r, back)
		return
	}

	ctx := h.backendCtx(r)
	err := h.usecase.Delete(ctx, id)
	if err != nil {
		h.audit.LogAction(ctx, h.principal(r), entity.AuditActionDelete, h.spec.Name, id, err)
		if h.expired(w, r, err) {
			return
		}
		h.failure(r, err)
		response.SeeOther(w, r, back)
		return
	}
	h.audit.LogDelete(ctx, h.principal(r), h.spec.Name, id)
	h.notifyKey(r, feedback.SeveritySuccess, h.spec.Name+".deleted")
	response.SeeOther(w, r, back)
}
