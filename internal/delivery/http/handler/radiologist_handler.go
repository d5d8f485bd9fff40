package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

const radiologistsBase = "/radiologists"

// RadiologistHandler lists and edits radiologists. New accounts go through
// the register dialog and its 2FA step.
type RadiologistHandler struct {
	*ResourceHandler[entity.Radiologist]
	radiologistUsecase usecase.RadiologistUsecase
	qrCode             service.QRCodeService
	registerSchema     form.Schema
}

func NewRadiologistHandler(base *Base, radiologistUsecase usecase.RadiologistUsecase, qrCode service.QRCodeService) *RadiologistHandler {
	const ns = "radiologists"
	h := &RadiologistHandler{
		radiologistUsecase: radiologistUsecase,
		qrCode:             qrCode,
		registerSchema:     radiologistRegisterSchema(),
	}
	spec := ResourceSpec[entity.Radiologist]{
		Name:   ns,
		Module: ns,
		Base:   radiologistsBase,
		Nav:    ns,
		Schema: radiologistSchema(),
		Columns: []ColumnSpec[entity.Radiologist]{
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: func(_ Translator, r *entity.Radiologist) view.Cell {
				return view.Cell{Text: r.Name}
			}},
			{Key: "username", Label: label(ns, "username"), Sortable: true, Cell: func(_ Translator, r *entity.Radiologist) view.Cell {
				return view.Cell{Text: r.Username}
			}},
			{Key: "email", Label: label(ns, "email"), Cell: func(_ Translator, r *entity.Radiologist) view.Cell {
				return view.Cell{Text: r.Email}
			}},
			{Key: "licenseNumber", Label: label(ns, "licenseNumber"), Cell: func(_ Translator, r *entity.Radiologist) view.Cell {
				return view.Cell{Text: r.LicenseNumber}
			}},
			{Key: "totalScansPerformed", Label: label(ns, "totalScansPerformed"), Sortable: true, Cell: func(_ Translator, r *entity.Radiologist) view.Cell {
				return view.Cell{Text: strconv.Itoa(r.TotalScansPerformed)}
			}},
			{Key: "isActive", Label: label(ns, "isActive"), Cell: func(t Translator, r *entity.Radiologist) view.Cell {
				return activeCell(t, r.IsActive)
			}},
		},
		DefaultSort:  "createdAt",
		Searchable:   true,
		StatusFilter: true,
		ID:           func(r *entity.Radiologist) string { return r.ObjectID },
		Label:        func(r *entity.Radiologist) string { return r.Name },
	}
	spec.Toolbar = h.toolbar
	spec.Dialogs = map[string]DialogFunc{"register": h.registerDialog}
	spec.Decorate = h.decorate
	h.ResourceHandler = NewResourceHandler[entity.Radiologist](base, radiologistUsecase, spec)
	return h
}

func (h *RadiologistHandler) toolbar(r *http.Request, state screen.ListState) []view.Action {
	if !h.allowed(r, h.spec.Module, entity.OperationCreate) {
		return nil
	}
	return []view.Action{{
		Label: h.t(r, "radiologists.register"),
		Href:  h.href(state, nil, "dialog", "register"),
		Class: "primary",
	}}
}

func (h *RadiologistHandler) registerView(r *http.Request, lv *view.ListView, fh *form.Handle) *view.FormView {
	t := h.translator(r)
	return &view.FormView{
		Title:       t("radiologists.register"),
		Action:      radiologistsBase + "/register",
		SubmitLabel: t("radiologists.registerSubmit"),
		CancelHref:  h.href(lv.State, nil),
		Fields:      view.NewFormView(fh, nil, t),
		Hidden:      map[string]string{"return": lv.Hidden["return"]},
		Submitting:  fh.Submitting(),
	}
}

func (h *RadiologistHandler) registerDialog(r *http.Request, lv *view.ListView) {
	if !h.allowed(r, h.spec.Module, entity.OperationCreate) {
		return
	}
	reg := middleware.GetSession(r.Context()).Registration(flowRadiologist)
	if reg.AwaitingCode() {
		return
	}
	fh := form.New(h.registerSchema, nil, h.formValidator(r))
	lv.Editor = h.registerView(r, lv, fh)
}

// decorate shows the verify step for as long as a registration waits for its code.
func (h *RadiologistHandler) decorate(r *http.Request, lv *view.ListView) {
	s := middleware.GetSession(r.Context())
	if s == nil || s.Registrations[flowRadiologist] == nil {
		return
	}
	reg := s.Registrations[flowRadiologist]
	if reg.AwaitingCode() && lv.Verify == nil {
		lv.Verify = h.verifyView(r, h.qrCode, reg, radiologistsBase+"/verify", radiologistsBase+"/register/cancel", "")
	}
}

func (h *RadiologistHandler) relist(w http.ResponseWriter, r *http.Request, status int, fill func(lv *view.ListView)) {
	state, _ := h.returnState(r)
	lv, _, ok := h.load(w, r, state, nil)
	if !ok {
		return
	}
	fill(lv)
	page := h.page(r, lv.Heading, h.spec.Nav, lv)
	page.Path = h.href(lv.State, nil)
	h.render(w, r, status, view.PageList, page)
}

// Register runs the first step: the account is created and the 2FA secret
// comes back for the verify step.
func (h *RadiologistHandler) Register(w http.ResponseWriter, r *http.Request) {
	values := h.registerSchema.Parse(r)
	state, _ := h.returnState(r)
	back := h.href(state, nil)
	if !h.allowed(r, h.spec.Module, entity.OperationCreate) {
		h.forbidden(w, r, back)
		return
	}

	release, ok := h.inFlight.Acquire(h.sessionID(r), screen.Pending{Dialog: "radiologists:register", Values: values})
	if !ok {
		h.notifyKey(r, feedback.SeverityWarning, "common.busy")
		response.SeeOther(w, r, back)
		return
	}
	defer release()

	s := middleware.GetSession(r.Context())
	reg := s.Registration(flowRadiologist)
	fh := form.New(h.registerSchema, values, h.formValidator(r))
	ctx := h.backendCtx(r)
	err := fh.HandleSubmit(ctx, func(ctx context.Context, v form.Values) error {
		return h.radiologistUsecase.Register(ctx, reg, v)
	})
	s.Touch()
	h.audit.LogAction(ctx, h.principal(r), "register", h.spec.Name, values.Get("username"), err)

	if err == nil {
		h.notifyKey(r, feedback.SeveritySuccess, "radiologists.registered")
		response.SeeOther(w, r, back)
		return
	}
	if h.expired(w, r, err) {
		return
	}
	status := h.applyErrors(r, fh, err)
	h.relist(w, r, status, func(lv *view.ListView) {
		if !reg.AwaitingCode() {
			lv.Editor = h.registerView(r, lv, fh)
		}
	})
}

// Verify submits the one-time code. The admin's own session is unchanged.
func (h *RadiologistHandler) Verify(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	state, _ := h.returnState(r)
	back := h.href(state, nil)
	s := middleware.GetSession(r.Context())
	reg := s.Registration(flowRadiologist)
	if !reg.AwaitingCode() {
		h.notifyKey(r, feedback.SeverityWarning, "registration.outOfStep")
		response.SeeOther(w, r, back)
		return
	}

	code, codeErr := h.checkCode(r, reg)
	if codeErr != "" {
		h.notify(r, feedback.SeverityError, codeErr)
		h.relist(w, r, http.StatusUnprocessableEntity, func(lv *view.ListView) {
			lv.Verify = h.verifyView(r, h.qrCode, reg, radiologistsBase+"/verify", radiologistsBase+"/register/cancel", codeErr)
		})
		return
	}

	ctx := h.backendCtx(r)
	err := h.radiologistUsecase.Verify(ctx, reg, code)
	s.Touch()
	h.audit.LogAction(ctx, h.principal(r), "verify", h.spec.Name, reg.UserID, err)
	if err == nil {
		delete(s.Registrations, flowRadiologist)
		h.notifyKey(r, feedback.SeveritySuccess, "radiologists.verified")
		response.SeeOther(w, r, back)
		return
	}
	if h.expired(w, r, err) {
		return
	}
	h.failure(r, err)
	msg := h.errorMessage(r, err)
	h.relist(w, r, h.statusFor(err), func(lv *view.ListView) {
		lv.Verify = h.verifyView(r, h.qrCode, reg, radiologistsBase+"/verify", radiologistsBase+"/register/cancel", msg)
	})
}

// CancelRegistration abandons a registration waiting for its code.
func (h *RadiologistHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())
	if reg, ok := s.Registrations[flowRadiologist]; ok && reg != nil {
		reg.Cancel()
		delete(s.Registrations, flowRadiologist)
		s.Touch()
	}
	response.SeeOther(w, r, radiologistsBase)
}
