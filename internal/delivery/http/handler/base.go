package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/converter"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/theme"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/validator"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// Translator turns a message key into text in the request's language.
type Translator func(key string) string

// Base carries what every screen handler needs.
type Base struct {
	renderer  *view.Renderer
	validator *validator.CustomValidator
	loader    *screen.Loader
	inFlight  *screen.InFlight
	confirmer *screen.Confirmer
	audit     service.AuditService
	catalog   *locale.Catalog
	pageSize  int
	log       *logrus.Logger
	now       func() time.Time
}

func NewBase(
	renderer *view.Renderer,
	validator *validator.CustomValidator,
	loader *screen.Loader,
	inFlight *screen.InFlight,
	confirmer *screen.Confirmer,
	audit service.AuditService,
	catalog *locale.Catalog,
	pageSize int,
	log *logrus.Logger,
) *Base {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Base{
		renderer:  renderer,
		validator: validator,
		loader:    loader,
		inFlight:  inFlight,
		confirmer: confirmer,
		audit:     audit,
		catalog:   catalog,
		pageSize:  pageSize,
		log:       log,
		now:       time.Now,
	}
}

func (b *Base) localizer(r *http.Request) *locale.Localizer {
	if l := middleware.GetLocalizer(r.Context()); l != nil {
		return l
	}
	return b.catalog.Localizer("")
}

func (b *Base) translator(r *http.Request) Translator {
	l := b.localizer(r)
	return func(key string) string {
		if key == "" {
			return ""
		}
		return l.T(key, nil)
	}
}

func (b *Base) t(r *http.Request, key string) string {
	return b.localizer(r).T(key, nil)
}

func (b *Base) tp(r *http.Request, key string, params map[string]interface{}) string {
	return b.localizer(r).T(key, params)
}

// formValidator localizes constraint messages for this request.
func (b *Base) formValidator(r *http.Request) *form.Validator {
	return form.NewValidator(b.validator, b.localizer(r).T)
}

// backendCtx is the request context carrying the session's backend token.
func (b *Base) backendCtx(r *http.Request) context.Context {
	token := ""
	if s := middleware.GetSession(r.Context()); s != nil {
		token = s.Token
	}
	return backend.WithToken(r.Context(), token)
}

func (b *Base) sessionID(r *http.Request) string {
	if s := middleware.GetSession(r.Context()); s != nil {
		return s.ID
	}
	return ""
}

func (b *Base) principal(r *http.Request) *entity.Principal {
	return middleware.GetState(r.Context()).Principal
}

// allowed consults the principal's privilege entries. Accounts the backend
// sends without any entries are governed by their role alone.
func (b *Base) allowed(r *http.Request, module string, op entity.Operation) bool {
	p := b.principal(r)
	if p == nil {
		return false
	}
	if module == "" || len(p.Privileges) == 0 {
		return true
	}
	return p.Can(module, op)
}

func (b *Base) notify(r *http.Request, severity feedback.Severity, message string) {
	s := middleware.GetSession(r.Context())
	if s == nil {
		return
	}
	s.Notify(severity, message, string(b.localizer(r).Direction))
}

func (b *Base) notifyKey(r *http.Request, severity feedback.Severity, key string) {
	b.notify(r, severity, b.t(r, key))
}

// failure reports err as an error toast.
func (b *Base) failure(r *http.Request, err error) {
	b.notify(r, feedback.SeverityError, b.errorMessage(r, err))
}

func (b *Base) errorMessage(r *http.Request, err error) string {
	var fe *converter.FieldError
	switch {
	case errors.As(err, &fe):
		return b.t(r, fe.Key)
	case errors.Is(err, form.ErrInvalid):
		return b.t(r, "errors.validation")
	case errors.Is(err, usecase.ErrUnsupported), errors.Is(err, usecase.ErrMissingID):
		return b.t(r, "errors.request")
	case errors.Is(err, screen.ErrRegistrationStep):
		return b.t(r, "registration.outOfStep")
	}

	be, ok := backend.AsError(err)
	if !ok {
		return b.t(r, "errors.unknown")
	}
	msg := b.t(r, "errors."+string(be.Kind))
	switch be.Kind {
	case backend.KindValidation, backend.KindConflict, backend.KindForbidden, backend.KindRequest:
		if be.Message != "" && be.Message != http.StatusText(be.Status) {
			return msg + ": " + be.Message
		}
	}
	return msg
}

func (b *Base) statusFor(err error) int {
	switch backend.KindOf(err) {
	case backend.KindValidation:
		return http.StatusUnprocessableEntity
	case backend.KindConflict:
		return http.StatusConflict
	case backend.KindForbidden:
		return http.StatusForbidden
	case backend.KindNotFound:
		return http.StatusNotFound
	case backend.KindUnauthorized:
		return http.StatusUnauthorized
	case backend.KindNetwork, backend.KindServer:
		return http.StatusBadGateway
	case backend.KindRequest:
		return http.StatusBadRequest
	}
	var fe *converter.FieldError
	if errors.Is(err, form.ErrInvalid) || errors.As(err, &fe) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, usecase.ErrMissingID) || errors.Is(err, usecase.ErrUnsupported) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// applyErrors puts err on the form: converter and server validation errors
// land on their fields. Every failure also gets a toast. It returns the
// status to re-render the form with.
func (b *Base) applyErrors(r *http.Request, h *form.Handle, err error) int {
	var fe *converter.FieldError
	if errors.As(err, &fe) {
		h.SetErrors(map[string]string{fe.Field: b.t(r, fe.Key)})
	}
	if be, ok := backend.AsError(err); ok && be.Kind == backend.KindValidation {
		if fields := be.FieldMap(); len(fields) > 0 {
			h.SetErrors(fields)
		}
	}
	b.failure(r, err)
	return b.statusFor(err)
}

// expired handles a 401 from the backend. The session was already cleared
// by the client hook; the browser goes back to the login page.
func (b *Base) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !backend.IsKind(err, backend.KindUnauthorized) {
		return false
	}
	b.notifyKey(r, feedback.SeverityWarning, "auth.sessionExpired")
	response.SeeOther(w, r, middleware.LoginURL(r.URL.RequestURI()))
	return true
}

func (b *Base) forbidden(w http.ResponseWriter, r *http.Request, back string) {
	b.notifyKey(r, feedback.SeverityError, "errors.forbidden")
	response.SeeOther(w, r, back)
}

// page assembles the layout data. Expired toasts are pruned from the session.
// Path is where the theme and language forms return to; a re-rendered POST
// falls back to the root unless the caller sets it.
func (b *Base) page(r *http.Request, title, nav string, content interface{}) *view.Page {
	l := b.localizer(r)
	st := middleware.GetState(r.Context())

	mode := theme.Light
	var toasts []view.Toast
	if s := middleware.GetSession(r.Context()); s != nil {
		mode = theme.ParseMode(s.Theme)
		now := b.now()
		before := s.Toasts.Len()
		events := s.Toasts.Visible(now)
		if s.Toasts.Len() != before {
			s.Touch()
		}
		toasts = view.NewToasts(events, now)
	}

	path := "/"
	if r.Method == http.MethodGet {
		path = r.URL.RequestURI()
	}
	p := &view.Page{
		Title:     title,
		Nav:       nav,
		Path:      path,
		Language:  l.Language,
		Direction: l.Direction,
		Styles:    l.Styles(),
		Theme:     string(mode),
		ThemeHref: ThemeHref(mode, l.Direction),
		Languages: b.catalog.Supported(),
		Toasts:    toasts,
		Content:   content,
	}
	if st.Authenticated {
		p.Principal = st.Principal
		p.SuperAdmin = st.SuperAdmin
	}
	return p
}

func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, p *view.Page) {
	b.renderer.Render(w, status, name, p, b.localizer(r))
}

// Loading is the placeholder the gates render while the principal is unresolved.
func (b *Base) Loading(w http.ResponseWriter, r *http.Request) {
	p := b.page(r, b.t(r, "common.loading"), "", nil)
	p.Refresh = 2
	b.render(w, r, http.StatusOK, view.PageLoading, p)
}

// fallback replaces a screen whose entity could not be loaded.
func (b *Base) fallback(w http.ResponseWriter, r *http.Request, err error, back string) {
	b.failure(r, err)
	heading := b.t(r, "fallback.title")
	if backend.IsKind(err, backend.KindNotFound) {
		heading = b.t(r, "fallback.notFound")
	}
	fv := &view.FallbackView{Heading: heading, Message: b.errorMessage(r, err), BackHref: back}
	b.render(w, r, b.statusFor(err), view.PageFallback, b.page(r, heading, "", fv))
}

// ThemeHref is the stylesheet URL for a mode and direction.
func ThemeHref(mode theme.Mode, dir locale.Direction) string {
	return "/assets/theme.css?" + url.Values{"mode": {string(mode)}, "dir": {string(dir)}}.Encode()
}

// safeReturn accepts only local paths so a form cannot redirect off-site.
func safeReturn(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateTimeLayout)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func activeCell(t Translator, active bool) view.Cell {
	if active {
		return view.Cell{Text: t("common.active"), Chip: "active"}
	}
	return view.Cell{Text: t("common.inactive"), Chip: "inactive"}
}
