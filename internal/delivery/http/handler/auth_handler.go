package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/session"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

const homePath = "/dashboard"

// AuthHandler serves the public account pages and logout.
type AuthHandler struct {
	*Base
	manager     *session.Manager
	authUsecase usecase.AuthUsecase
	qrCode      service.QRCodeService

	login     form.Schema
	twoFactor form.Schema
	register  form.Schema
	forgot    form.Schema
	reset     form.Schema
}

func NewAuthHandler(base *Base, manager *session.Manager, authUsecase usecase.AuthUsecase, qrCode service.QRCodeService) *AuthHandler {
	return &AuthHandler{
		Base:        base,
		manager:     manager,
		authUsecase: authUsecase,
		qrCode:      qrCode,
		login:       loginSchema(),
		twoFactor:   twoFactorSchema(),
		register:    registerSchema(),
		forgot:      forgotSchema(),
		reset:       resetSchema(),
	}
}

func nextPath(r *http.Request) string {
	next := r.URL.Query().Get("next")
	if r.Method == http.MethodPost {
		next = r.PostFormValue("next")
	}
	return safeReturn(next, homePath)
}

func (h *AuthHandler) show(w http.ResponseWriter, r *http.Request, status int, av *view.AuthView) {
	title := ""
	switch {
	case av.Verify != nil:
		title = av.Verify.Title
	case av.Form != nil:
		title = av.Form.Title
	}
	h.render(w, r, status, view.PageAuth, h.page(r, title, "", av))
}

func (h *AuthHandler) formView(r *http.Request, fh *form.Handle, title, action, submit string, hidden map[string]string) *view.FormView {
	t := h.translator(r)
	return &view.FormView{
		Title:       t(title),
		Action:      action,
		SubmitLabel: t(submit),
		Fields:      view.NewFormView(fh, nil, t),
		Hidden:      hidden,
		Submitting:  fh.Submitting(),
	}
}

func (h *AuthHandler) links(r *http.Request, keys ...string) []view.Action {
	hrefs := map[string]string{
		"auth.toLogin":    "/login",
		"auth.toRegister": "/register",
		"auth.toForgot":   "/forgot-password",
	}
	out := make([]view.Action, 0, len(keys))
	for _, k := range keys {
		out = append(out, view.Action{Label: h.t(r, k), Href: hrefs[k]})
	}
	return out
}

func (h *AuthHandler) loginView(r *http.Request, fh *form.Handle) *view.AuthView {
	return &view.AuthView{
		Form:  h.formView(r, fh, "auth.loginTitle", "/login", "auth.login", map[string]string{"next": nextPath(r)}),
		Links: h.links(r, "auth.toRegister", "auth.toForgot"),
	}
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.GetState(r.Context()).Authenticated {
		response.SeeOther(w, r, nextPath(r))
		return
	}
	fh := form.New(h.login, nil, h.formValidator(r))
	h.show(w, r, http.StatusOK, h.loginView(r, fh))
}

// Login runs the password step. Accounts with 2FA continue on the code page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	values := h.login.Parse(r)
	fh := form.New(h.login, values, h.formValidator(r))
	s := middleware.GetSession(r.Context())
	next := nextPath(r)

	var outcome session.LoginOutcome
	err := fh.HandleSubmit(r.Context(), func(ctx context.Context, v form.Values) error {
		var err error
		outcome, err = h.manager.Login(ctx, s, strings.TrimSpace(v.Get("username")), v.Get("password"))
		return err
	})
	if err == nil && outcome == session.TwoFactorRequired {
		response.SeeOther(w, r, "/two-factor-auth?"+url.Values{"next": {next}}.Encode())
		return
	}
	if err == nil {
		h.audit.LogAction(r.Context(), s.Principal, entity.AuditActionLogin, "session", s.ID, nil)
		h.notify(r, feedback.SeveritySuccess, h.tp(r, "auth.welcome", map[string]interface{}{"Name": s.Principal.DisplayName()}))
		response.SeeOther(w, r, next)
		return
	}

	h.audit.LogAction(r.Context(), nil, entity.AuditActionLogin, "session", values.Get("username"), err)
	status := h.loginFailure(r, fh, err)
	h.show(w, r, status, h.loginView(r, fh))
}

// loginFailure reports a failed login step. Bad credentials come back as a
// 401 and are not a session expiry here.
func (h *AuthHandler) loginFailure(r *http.Request, fh *form.Handle, err error) int {
	if backend.IsKind(err, backend.KindUnauthorized) {
		h.notifyKey(r, feedback.SeverityError, "auth.invalidCredentials")
		return http.StatusUnauthorized
	}
	if errors.Is(err, session.ErrNoToken) || errors.Is(err, session.ErrRejected) {
		h.notifyKey(r, feedback.SeverityError, "auth.rejected")
		return http.StatusBadGateway
	}
	return h.applyErrors(r, fh, err)
}

func (h *AuthHandler) twoFactorView(r *http.Request, fh *form.Handle) *view.AuthView {
	return &view.AuthView{
		Form:  h.formView(r, fh, "auth.twoFactorTitle", "/two-factor-auth", "auth.verify", map[string]string{"next": nextPath(r)}),
		Links: h.links(r, "auth.toLogin"),
	}
}

func (h *AuthHandler) ShowTwoFactor(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()).PendingAuth == nil {
		response.SeeOther(w, r, "/login")
		return
	}
	fh := form.New(h.twoFactor, nil, h.formValidator(r))
	h.show(w, r, http.StatusOK, h.twoFactorView(r, fh))
}

// VerifyTwoFactor completes a login that is waiting for its code.
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	values := h.twoFactor.Parse(r)
	fh := form.New(h.twoFactor, values, h.formValidator(r))
	s := middleware.GetSession(r.Context())
	err := fh.HandleSubmit(r.Context(), func(ctx context.Context, v form.Values) error {
		return h.manager.VerifyLogin2FA(ctx, s, strings.TrimSpace(v.Get("token")))
	})
	if errors.Is(err, session.ErrNoPendingLogin) {
		h.notifyKey(r, feedback.SeverityWarning, "auth.twoFactorExpired")
		response.SeeOther(w, r, "/login")
		return
	}
	if err == nil {
		h.audit.LogAction(r.Context(), s.Principal, entity.AuditActionLogin, "session", s.ID, nil)
		h.notify(r, feedback.SeveritySuccess, h.tp(r, "auth.welcome", map[string]interface{}{"Name": s.Principal.DisplayName()}))
		response.SeeOther(w, r, nextPath(r))
		return
	}

	var status int
	if backend.IsKind(err, backend.KindUnauthorized) {
		fh.SetErrors(map[string]string{"token": h.t(r, "validation.otpRejected")})
		h.notifyKey(r, feedback.SeverityError, "validation.otpRejected")
		status = http.StatusUnauthorized
	} else {
		status = h.loginFailure(r, fh, err)
	}
	h.show(w, r, status, h.twoFactorView(r, fh))
}

func (h *AuthHandler) registrationView(r *http.Request, fh *form.Handle, codeErr string) *view.AuthView {
	reg := middleware.GetSession(r.Context()).Registration(flowSelf)
	if reg.AwaitingCode() {
		vv := h.verifyView(r, h.qrCode, reg, "/register/verify", "/register/cancel", codeErr)
		vv.Standalone = true
		return &view.AuthView{Verify: vv, Links: h.links(r, "auth.toLogin")}
	}
	if fh == nil {
		fh = form.New(h.register, nil, h.formValidator(r))
	}
	return &view.AuthView{
		Form:  h.formView(r, fh, "auth.registerTitle", "/register", "auth.register", nil),
		Links: h.links(r, "auth.toLogin"),
	}
}

// ShowRegister shows the form, or the verify step while a registration waits for its code.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, h.registrationView(r, nil, ""))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	values := h.register.Parse(r)
	fh := form.New(h.register, values, h.formValidator(r))
	s := middleware.GetSession(r.Context())
	reg := s.Registration(flowSelf)
	err := fh.HandleSubmit(r.Context(), func(ctx context.Context, v form.Values) error {
		return h.authUsecase.Register(ctx, reg, v, "")
	})
	s.Touch()
	h.audit.LogAction(r.Context(), nil, "register", "users", values.Get("username"), err)
	if err == nil {
		h.notifyKey(r, feedback.SeveritySuccess, "registration.scan")
		response.SeeOther(w, r, "/register")
		return
	}
	status := h.applyErrors(r, fh, err)
	h.show(w, r, status, h.registrationView(r, fh, ""))
}

// VerifyRegistration activates the new account. The user signs in afterwards.
func (h *AuthHandler) VerifyRegistration(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s := middleware.GetSession(r.Context())
	reg := s.Registration(flowSelf)
	if !reg.AwaitingCode() {
		h.notifyKey(r, feedback.SeverityWarning, "registration.outOfStep")
		response.SeeOther(w, r, "/register")
		return
	}

	code, codeErr := h.checkCode(r, reg)
	if codeErr != "" {
		h.notify(r, feedback.SeverityError, codeErr)
		h.show(w, r, http.StatusUnprocessableEntity, h.registrationView(r, nil, codeErr))
		return
	}

	err := h.authUsecase.VerifyRegistration(r.Context(), reg, code)
	s.Touch()
	if err == nil {
		delete(s.Registrations, flowSelf)
		h.notifyKey(r, feedback.SeveritySuccess, "registration.complete")
		response.SeeOther(w, r, "/login")
		return
	}
	h.failure(r, err)
	h.show(w, r, h.statusFor(err), h.registrationView(r, nil, h.errorMessage(r, err)))
}

func (h *AuthHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())
	if reg, ok := s.Registrations[flowSelf]; ok && reg != nil {
		reg.Cancel()
		delete(s.Registrations, flowSelf)
		s.Touch()
	}
	response.SeeOther(w, r, "/register")
}

func (h *AuthHandler) forgotView(r *http.Request, fh *form.Handle) *view.AuthView {
	return &view.AuthView{
		Form:  h.formView(r, fh, "auth.forgotTitle", "/forgot-password", "auth.sendReset", nil),
		Links: h.links(r, "auth.toLogin"),
	}
}

func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, h.forgotView(r, form.New(h.forgot, nil, h.formValidator(r))))
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	values := h.forgot.Parse(r)
	fh := form.New(h.forgot, values, h.formValidator(r))
	err := fh.HandleSubmit(r.Context(), func(ctx context.Context, v form.Values) error {
		return h.authUsecase.ForgotPassword(ctx, strings.TrimSpace(v.Get("email")))
	})
	if err == nil {
		h.notifyKey(r, feedback.SeveritySuccess, "auth.resetSent")
		response.SeeOther(w, r, "/login")
		return
	}
	status := h.applyErrors(r, fh, err)
	h.show(w, r, status, h.forgotView(r, fh))
}

func (h *AuthHandler) resetView(r *http.Request, fh *form.Handle, token string) *view.AuthView {
	return &view.AuthView{
		Form:  h.formView(r, fh, "auth.resetTitle", "/reset-password", "auth.resetSubmit", map[string]string{"token": token}),
		Links: h.links(r, "auth.toLogin"),
	}
}

func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.notifyKey(r, feedback.SeverityError, "auth.resetMissingToken")
		response.SeeOther(w, r, "/forgot-password")
		return
	}
	h.show(w, r, http.StatusOK, h.resetView(r, form.New(h.reset, nil, h.formValidator(r)), token))
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	values := h.reset.Parse(r)
	token := r.PostFormValue("token")
	fh := form.New(h.reset, values, h.formValidator(r))
	err := fh.HandleSubmit(r.Context(), func(ctx context.Context, v form.Values) error {
		return h.authUsecase.ResetPassword(ctx, token, v.Get("password"))
	})
	switch {
	case err == nil:
		h.notifyKey(r, feedback.SeveritySuccess, "auth.resetDone")
		response.SeeOther(w, r, "/login")
		return
	case errors.Is(err, usecase.ErrMissingResetToken):
		h.notifyKey(r, feedback.SeverityError, "auth.resetMissingToken")
		response.SeeOther(w, r, "/forgot-password")
		return
	}
	status := h.applyErrors(r, fh, err)
	h.show(w, r, status, h.resetView(r, fh, token))
}

// Logout ends the backend session (best effort) and clears the local one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())
	p := s.Principal
	h.manager.Logout(r.Context(), s)
	h.audit.LogAction(r.Context(), p, entity.AuditActionLogout, "session", s.ID, nil)
	h.notifyKey(r, feedback.SeverityInfo, "auth.loggedOut")
	response.SeeOther(w, r, "/login")
}
