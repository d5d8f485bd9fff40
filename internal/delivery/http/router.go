package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/handler"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
)

// Gates a route can sit behind.
const (
	GatePublic     = "public"
	GateAuth       = "auth"
	GateSuperAdmin = "super-admin"
	GateNone       = "none"
)

// RouteInfo is one registered route, for the routes command.
type RouteInfo struct {
	Method string
	Path   string
	Gate   string
}

// Handlers groups every screen handler the router mounts.
type Handlers struct {
	Asset          *handler.AssetHandler
	Auth           *handler.AuthHandler
	Feedback       *handler.FeedbackHandler
	Settings       *handler.SettingsHandler
	Dashboard      *handler.DashboardHandler
	Profile        *handler.ProfileHandler
	Appointment    *handler.AppointmentHandler
	Patient        *handler.PatientHandler
	Doctor         *handler.DoctorHandler
	Scan           *handler.ScanHandler
	Stock          *handler.StockHandler
	Radiologist    *handler.RadiologistHandler
	Branch         *handler.BranchHandler
	Representative *handler.RepresentativeHandler
	Privilege      *handler.PrivilegeHandler
	AuditLog       *handler.AuditLogHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	loggerMiddleware  *middleware.LoggerMiddleware
	headersMiddleware *middleware.HeadersMiddleware
	sessionMiddleware *middleware.SessionMiddleware
	gateMiddleware    *middleware.GateMiddleware
	routes            []RouteInfo
}

func NewRouter(
	handlers Handlers,
	loggerMiddleware *middleware.LoggerMiddleware,
	headersMiddleware *middleware.HeadersMiddleware,
	sessionMiddleware *middleware.SessionMiddleware,
	gateMiddleware *middleware.GateMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		loggerMiddleware:  loggerMiddleware,
		headersMiddleware: headersMiddleware,
		sessionMiddleware: sessionMiddleware,
		gateMiddleware:    gateMiddleware,
	}
}

func (r *Router) handle(sub *mux.Router, gate, method, path string, h http.HandlerFunc) {
	sub.HandleFunc(path, h).Methods(method)
	r.routes = append(r.routes, RouteInfo{Method: method, Path: path, Gate: gate})
}

// Routes lists what Setup registered, in registration order.
func (r *Router) Routes() []RouteInfo {
	return r.routes
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers
	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.headersMiddleware.Handle)

	// Static assets and probes (no session)
	r.handle(r.router, GateNone, http.MethodGet, "/assets/theme.css", h.Asset.Stylesheet)
	r.handle(r.router, GateNone, http.MethodGet, "/healthz", h.Asset.Health)

	app := r.router.NewRoute().Subrouter()
	app.Use(r.sessionMiddleware.Handle)

	// Public pages
	public := app.NewRoute().Subrouter()
	r.handle(public, GatePublic, http.MethodGet, "/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusFound)
	})
	r.handle(public, GatePublic, http.MethodGet, "/login", h.Auth.ShowLogin)
	r.handle(public, GatePublic, http.MethodPost, "/login", h.Auth.Login)
	r.handle(public, GatePublic, http.MethodGet, "/two-factor-auth", h.Auth.ShowTwoFactor)
	r.handle(public, GatePublic, http.MethodPost, "/two-factor-auth", h.Auth.VerifyTwoFactor)
	r.handle(public, GatePublic, http.MethodGet, "/register", h.Auth.ShowRegister)
	r.handle(public, GatePublic, http.MethodPost, "/register", h.Auth.Register)
	r.handle(public, GatePublic, http.MethodPost, "/register/verify", h.Auth.VerifyRegistration)
	r.handle(public, GatePublic, http.MethodPost, "/register/cancel", h.Auth.CancelRegistration)
	r.handle(public, GatePublic, http.MethodGet, "/forgot-password", h.Auth.ShowForgotPassword)
	r.handle(public, GatePublic, http.MethodPost, "/forgot-password", h.Auth.ForgotPassword)
	r.handle(public, GatePublic, http.MethodGet, "/reset-password", h.Auth.ShowResetPassword)
	r.handle(public, GatePublic, http.MethodPost, "/reset-password", h.Auth.ResetPassword)
	r.handle(public, GatePublic, http.MethodPost, "/logout", h.Auth.Logout)
	r.handle(public, GatePublic, http.MethodGet, "/settings", h.Settings.Show)
	r.handle(public, GatePublic, http.MethodPost, "/settings", h.Settings.Save)
	r.handle(public, GatePublic, http.MethodPost, "/settings/theme", h.Settings.ToggleTheme)
	r.handle(public, GatePublic, http.MethodPost, "/settings/language", h.Settings.SwitchLanguage)
	r.handle(public, GatePublic, http.MethodPost, "/feedback/{id}/{action}", h.Feedback.Update)

	// Signed-in pages
	authed := app.NewRoute().Subrouter()
	authed.Use(r.gateMiddleware.RequireAuth)
	r.handle(authed, GateAuth, http.MethodGet, "/dashboard", h.Dashboard.Show)
	r.handle(authed, GateAuth, http.MethodGet, "/profile", h.Profile.Show)

	r.handle(authed, GateAuth, http.MethodGet, "/appointments", h.Appointment.List)
	r.handle(authed, GateAuth, http.MethodGet, "/appointments/{id}/history", h.Appointment.History)

	r.handle(authed, GateAuth, http.MethodGet, "/patients", h.Patient.List)
	r.handle(authed, GateAuth, http.MethodGet, "/patients/{id}", h.Patient.Detail)

	r.handle(authed, GateAuth, http.MethodGet, "/doctors", h.Doctor.List)
	r.handle(authed, GateAuth, http.MethodPost, "/doctors", h.Doctor.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/doctors/{id}", h.Doctor.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/doctors/{id}/delete", h.Doctor.Delete)

	r.handle(authed, GateAuth, http.MethodGet, "/scans", h.Scan.List)
	r.handle(authed, GateAuth, http.MethodPost, "/scans", h.Scan.Save)
	r.handle(authed, GateAuth, http.MethodGet, "/scans/{id}", h.Scan.Detail)
	r.handle(authed, GateAuth, http.MethodPost, "/scans/{id}", h.Scan.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/scans/{id}/delete", h.Scan.Delete)
	r.handle(authed, GateAuth, http.MethodPost, "/scans/{id}/images", h.Scan.AddImage)
	r.handle(authed, GateAuth, http.MethodPost, "/scans/{id}/images/{imageId}/delete", h.Scan.RemoveImage)

	r.handle(authed, GateAuth, http.MethodGet, "/stock", h.Stock.List)
	r.handle(authed, GateAuth, http.MethodPost, "/stock", h.Stock.Save)
	r.handle(authed, GateAuth, http.MethodGet, "/stock/export", h.Stock.Export)
	r.handle(authed, GateAuth, http.MethodPost, "/stock/{id}", h.Stock.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/stock/{id}/delete", h.Stock.Delete)

	// register and verify come before {id}
	r.handle(authed, GateAuth, http.MethodGet, "/radiologists", h.Radiologist.List)
	r.handle(authed, GateAuth, http.MethodPost, "/radiologists/register", h.Radiologist.Register)
	r.handle(authed, GateAuth, http.MethodPost, "/radiologists/register/cancel", h.Radiologist.CancelRegistration)
	r.handle(authed, GateAuth, http.MethodPost, "/radiologists/verify", h.Radiologist.Verify)
	r.handle(authed, GateAuth, http.MethodPost, "/radiologists/{id}", h.Radiologist.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/radiologists/{id}/delete", h.Radiologist.Delete)

	r.handle(authed, GateAuth, http.MethodGet, "/admin/branches", h.Branch.List)
	r.handle(authed, GateAuth, http.MethodPost, "/admin/branches", h.Branch.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/admin/branches/{id}", h.Branch.Save)
	r.handle(authed, GateAuth, http.MethodPost, "/admin/branches/{id}/delete", h.Branch.Delete)

	// Super-admin pages
	admin := app.NewRoute().Subrouter()
	admin.Use(r.gateMiddleware.RequireAuth)
	admin.Use(r.gateMiddleware.RequireSuperAdmin)
	r.handle(admin, GateSuperAdmin, http.MethodGet, "/admin/representatives", h.Representative.List)
	r.handle(admin, GateSuperAdmin, http.MethodPost, "/admin/representatives", h.Representative.Save)
	r.handle(admin, GateSuperAdmin, http.MethodPost, "/admin/representatives/{id}", h.Representative.Save)
	r.handle(admin, GateSuperAdmin, http.MethodPost, "/admin/representatives/{id}/delete", h.Representative.Delete)
	r.handle(admin, GateSuperAdmin, http.MethodPost, "/admin/representatives/{id}/recount", h.Representative.Recount)
	r.handle(admin, GateSuperAdmin, http.MethodGet, "/admin/privileges", h.Privilege.List)
	r.handle(admin, GateSuperAdmin, http.MethodPost, "/admin/privileges/{id}", h.Privilege.Apply)
	r.handle(admin, GateSuperAdmin, http.MethodGet, "/admin/audit", h.AuditLog.List)

	return r.router
}
