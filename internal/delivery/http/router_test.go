package http

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/config"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/handler"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/session"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/theme"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/jwt"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/validator"
)

// labBackend fakes the parts of the lab API these tests touch. Collections
// live in memory and page like the real API; every call is recorded.
type labBackend struct {
	expired atomic.Bool
	creates atomic.Int32

	mu          sync.Mutex
	tokens      map[string]map[string]interface{}
	collections map[string][]map[string]interface{}
	calls       []string
	bodies      map[string]map[string]interface{}
	// rejectName makes POST /representatives fail validation on name.
	rejectName string
}

func newLabBackend() *labBackend {
	return &labBackend{
		tokens: map[string]map[string]interface{}{
			"tok-admin": {"_id": "u1", "username": "admin", "name": "Admin", "role": "superAdmin"},
			"tok-clerk": {"_id": "u2", "username": "clerk", "name": "Clerk", "role": "receptionist"},
		},
		collections: map[string][]map[string]interface{}{
			"representatives": {
				{"_id": "r1", "id": "REP-1", "name": "Mona Adel", "age": 31, "phoneNumber": "+201001234567", "isActive": true},
			},
			"branches": {
				{"_id": "b1", "name": "Smouha", "location": "Alexandria", "address": "Victor Emanuel Sq", "phone": "+201234567890", "manager": "Laila Saad", "isActive": true},
			},
			"radiologists": {},
		},
		bodies: map[string]map[string]interface{}{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *labBackend) setRepresentatives(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reps := make([]map[string]interface{}, 0, n)
	for i := 1; i <= n; i++ {
		reps = append(reps, map[string]interface{}{
			"_id": "r" + strconv.Itoa(i), "id": "REP-" + strconv.Itoa(i), "name": "Representative " + strconv.Itoa(i),
			"age": 30, "phoneNumber": "+201001234567", "isActive": true,
		})
	}
	b.collections["representatives"] = reps
}

// called reports the recorded calls that start with prefix, e.g. "DELETE ".
func (b *labBackend) called(prefix string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (b *labBackend) body(call string) map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[call]
}

func (b *labBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	call := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.calls = append(b.calls, call+"?"+r.URL.RawQuery)
	if body != nil {
		b.bodies[call] = body
	}
	b.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		token := "tok-" + fmt.Sprint(body["username"])
		b.mu.Lock()
		user, ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"token": token, "user": user}})

	case r.URL.Path == "/auth/logout":
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})

	case r.Method == http.MethodPost && r.URL.Path == "/auth/register":
		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": map[string]string{
			"userId":     "U",
			"otpAuthUrl": "otpauth://totp/RadLab:" + fmt.Sprint(body["username"]) + "?secret=JBSWY3DPEHPK3PXP&issuer=RadLab",
			"secret":     "JBSWY3DPEHPK3PXP",
		}})

	case r.Method == http.MethodPost && r.URL.Path == "/auth/verify-2fa":
		if body["userId"] != "U" || body["token"] != "123456" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Invalid code"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "verified"})

	case r.Method == http.MethodPost && r.URL.Path == "/representatives":
		b.mu.Lock()
		reject := b.rejectName
		b.mu.Unlock()
		if reject != "" {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"status": "error", "message": "Validation failed",
				"errors": []map[string]string{{"field": "name", "message": reject}},
			})
			return
		}
		b.creates.Add(1)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": map[string]interface{}{"_id": "r2"}})

	default:
		b.serveCollection(w, r, body)
	}
}

// serveCollection answers list, get, update and delete on /<collection>[/<id>].
func (b *labBackend) serveCollection(w http.ResponseWriter, r *http.Request, body map[string]interface{}) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	b.mu.Lock()
	defer b.mu.Unlock()
	items, ok := b.collections[parts[0]]
	if !ok || len(parts) > 2 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	if b.expired.Load() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
		return
	}

	if len(parts) == 1 && r.Method == http.MethodGet {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}
		start := (page - 1) * limit
		if start > len(items) {
			start = len(items)
		}
		end := start + limit
		if end > len(items) {
			end = len(items)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{
				parts[0]:     items[start:end],
				"pagination": map[string]int{"total": len(items), "totalPages": (len(items) + limit - 1) / limit},
			},
		})
		return
	}
	if len(parts) != 2 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}

	for i, item := range items {
		if item["_id"] != parts[1] {
			continue
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": item})
		case http.MethodPut:
			for k, v := range body {
				item[k] = v
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": item})
		case http.MethodDelete:
			b.collections[parts[0]] = append(items[:i:i], items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		}
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
}

type console struct {
	t       *testing.T
	server  *httptest.Server
	backend *labBackend
	router  *Router
	client  *http.Client
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newConsole(t *testing.T) *console {
	t.Helper()
	log := quietLogger()

	lab := newLabBackend()
	labServer := httptest.NewServer(lab)
	t.Cleanup(labServer.Close)

	catalog, err := locale.NewCatalog("en")
	require.NoError(t, err)
	renderer, err := view.NewRenderer(log)
	require.NoError(t, err)

	client := backend.NewClient(config.BackendConfig{BaseURL: labServer.URL, Timeout: 2 * time.Second}, log)
	authRepo := repository.NewAuthRepository(client)

	loader := screen.NewLoader()
	manager := session.NewManager(session.NewMemoryStore(), authRepo, jwt.NewTokenInspector(""), config.SessionConfig{
		CookieName:     "radlab_session",
		TTL:            time.Hour,
		ResolveTimeout: time.Second,
		PrincipalTTL:   time.Minute,
	}, log)
	client.OnUnauthorized(manager.Invalidate)
	manager.OnLogout(loader.Forget)

	qr := service.NewQRCodeService(128, "M")
	authUsecase := usecase.NewAuthUsecase(authRepo, log)
	appointmentRepo := repository.NewAppointmentRepository(client)

	base := handler.NewBase(
		renderer,
		validator.NewValidator(),
		loader,
		screen.NewInFlight(),
		screen.NewConfirmer(jwt.NewConfirmService("test-secret", time.Minute)),
		service.NewAuditService(log),
		catalog,
		10,
		log,
	)
	handlers := Handlers{
		Asset:          handler.NewAssetHandler(theme.NewStyleCache()),
		Auth:           handler.NewAuthHandler(base, manager, authUsecase, qr),
		Feedback:       handler.NewFeedbackHandler(base),
		Settings:       handler.NewSettingsHandler(base),
		Dashboard:      handler.NewDashboardHandler(base, usecase.NewDashboardUsecase(repository.NewDashboardRepository(client), appointmentRepo, log)),
		Profile:        handler.NewProfileHandler(base),
		Appointment:    handler.NewAppointmentHandler(base, usecase.NewAppointmentUsecase(appointmentRepo, log)),
		Patient:        handler.NewPatientHandler(base, usecase.NewPatientUsecase(repository.NewPatientRepository(client), log)),
		Doctor:         handler.NewDoctorHandler(base, usecase.NewResourceUsecase[entity.Doctor]("doctors", repository.NewDoctorRepository(client), usecase.DoctorCodec, log)),
		Scan:           handler.NewScanHandler(base, usecase.NewScanUsecase(repository.NewScanRepository(client), log)),
		Stock:          handler.NewStockHandler(base, usecase.NewStockUsecase(repository.NewStockRepository(client), service.NewStockExportService(log), log)),
		Radiologist:    handler.NewRadiologistHandler(base, usecase.NewRadiologistUsecase(repository.NewRadiologistRepository(client), authUsecase, log), qr),
		Branch:         handler.NewBranchHandler(base, usecase.NewBranchUsecase(repository.NewBranchRepository(client), log)),
		Representative: handler.NewRepresentativeHandler(base, usecase.NewRepresentativeUsecase(repository.NewRepresentativeRepository(client), log)),
		Privilege:      handler.NewPrivilegeHandler(base, usecase.NewPrivilegeUsecase(repository.NewUserRepository(client), log)),
		AuditLog:       handler.NewAuditLogHandler(base, usecase.NewAuditLogUsecase(repository.NewAuditLogRepository(client))),
	}

	router := NewRouter(
		handlers,
		middleware.NewLoggerMiddleware(log),
		middleware.NewHeadersMiddleware(false),
		middleware.NewSessionMiddleware(manager, catalog, log),
		middleware.NewGateMiddleware(base.Loading),
	)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &console{
		t:       t,
		server:  srv,
		backend: lab,
		router:  router,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *console) get(path string, header ...string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.server.URL+path, nil)
	require.NoError(c.t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return c.do(req)
}

func (c *console) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *console) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *console) login(username string) {
	c.t.Helper()
	resp, _ := c.post("/login", url.Values{"username": {username}, "password": {"secret"}})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(c.t, "/dashboard", resp.Header.Get("Location"))
}

func TestGate_AnonymousGoesToLoginWithNext(t *testing.T) {
	c := newConsole(t)

	resp, _ := c.get("/admin/representatives?page=2")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fadmin%2Frepresentatives%3Fpage%3D2", resp.Header.Get("Location"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestLogin_WrongPasswordStaysOnPage(t *testing.T) {
	c := newConsole(t)

	resp, body := c.post("/login", url.Values{"username": {"admin"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Wrong username or password")
}

func TestLogin_ThenListRepresentatives(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	resp, body := c.get("/admin/representatives")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Mona Adel")
	assert.Contains(t, body, "REP-1")
	assert.Contains(t, body, "Welcome, Admin")
}

func TestSuperAdminPages_RedirectOtherRoles(t *testing.T) {
	c := newConsole(t)
	c.login("clerk")

	resp, _ := c.get("/admin/representatives")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestCreate_InvalidFormNeverReachesBackend(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	resp, body := c.post("/admin/representatives", url.Values{
		"id":          {""},
		"name":        {"Ali"},
		"age":         {"12"},
		"phoneNumber": {"+201001234567"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "ID is required")
	assert.Contains(t, body, "Age must be at least 18")
	assert.Equal(t, int32(0), c.backend.creates.Load())
}

func TestCreate_ValidFormRedirectsToFirstPage(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	resp, _ := c.post("/admin/representatives", url.Values{
		"id":          {"REP-2"},
		"name":        {"Omar Nabil"},
		"age":         {"40"},
		"phoneNumber": {"+201001234567"},
		"isActive":    {"true"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/admin/representatives"))
	assert.Equal(t, int32(1), c.backend.creates.Load())

	_, body := c.get("/admin/representatives")
	assert.Contains(t, body, "Representative created")
}

func TestBackendUnauthorized_EndsSession(t *testing.T) {
	c := newConsole(t)
	c.login("admin")
	c.backend.expired.Store(true)

	resp, _ := c.get("/admin/representatives")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fadmin%2Frepresentatives", resp.Header.Get("Location"))

	resp, _ = c.get("/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fprofile", resp.Header.Get("Location"))

	_, body := c.get("/login")
	assert.Contains(t, body, "Your session expired")
}

func TestLogout_ClearsSession(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	resp, _ := c.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = c.get("/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestLanguageSwitch_RendersRightToLeft(t *testing.T) {
	c := newConsole(t)

	resp, _ := c.post("/settings/language", url.Values{"language": {"ar"}, "return": {"/login"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	_, body := c.get("/login")
	assert.Contains(t, body, `lang="ar"`)
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, "dir=rtl")
}

func TestLanguageSwitch_IgnoresUnknownLanguage(t *testing.T) {
	c := newConsole(t)

	resp, _ := c.post("/settings/language", url.Values{"language": {"xx"}, "return": {"https://evil.example"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, body := c.get("/login")
	assert.Contains(t, body, `dir="ltr"`)
}

func TestThemeStylesheet_ETag(t *testing.T) {
	c := newConsole(t)

	resp, body := c.get("/assets/theme.css?mode=dark&dir=rtl")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.NotEmpty(t, body)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	resp, _ = c.get("/assets/theme.css?mode=dark&dir=rtl", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestRoutes_RecordsGates(t *testing.T) {
	c := newConsole(t)

	gates := map[string]string{}
	for _, r := range c.router.Routes() {
		gates[r.Method+" "+r.Path] = r.Gate
	}
	assert.Equal(t, GateNone, gates["GET /healthz"])
	assert.Equal(t, GatePublic, gates["GET /login"])
	assert.Equal(t, GateAuth, gates["GET /stock/export"])
	assert.Equal(t, GateSuperAdmin, gates["GET /admin/audit"])
	assert.Equal(t, GateSuperAdmin, gates["POST /admin/privileges/{id}"])
}

var (
	confirmTokenPattern  = regexp.MustCompile(`name="confirmToken" value="([^"]+)"`)
	confirmReturnPattern = regexp.MustCompile(`(?s)data-dialog="confirm".*?name="return" value="([^"]*)"`)
	confirmCancelPattern = regexp.MustCompile(`(?s)data-dialog="confirm".*?<a class="btn" href="([^"]+)"`)
)

func submatch(t *testing.T, re *regexp.Regexp, body string) string {
	t.Helper()
	m := re.FindStringSubmatch(body)
	require.Len(t, m, 2, "no match for %s", re)
	return html.UnescapeString(m[1])
}

func TestList_PageBeyondLastShowsLastPage(t *testing.T) {
	c := newConsole(t)
	c.backend.setRepresentatives(10)
	c.login("admin")

	resp, body := c.get("/admin/representatives?page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-state="table"`)
	assert.NotContains(t, body, `data-state="empty"`)
	assert.Contains(t, body, "Page 1 of 1 (10 total)")
	assert.Contains(t, body, `data-id="r10"`)

	lists := c.backend.called("GET /representatives?")
	require.Len(t, lists, 2)
	assert.Contains(t, lists[0], "page=2")
	assert.Contains(t, lists[1], "page=1")
}

func TestDelete_LastRowOnLastPageFallsBackAPage(t *testing.T) {
	c := newConsole(t)
	c.backend.setRepresentatives(11)
	c.login("admin")

	_, body := c.get("/admin/representatives?page=2&confirm=delete&id=r11")
	require.Contains(t, body, `data-dialog="confirm"`)
	ret := submatch(t, confirmReturnPattern, body)
	assert.Contains(t, ret, "page=2")

	resp, _ := c.post("/admin/representatives/r11/delete", url.Values{
		"confirmToken": {submatch(t, confirmTokenPattern, body)},
		"return":       {ret},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, []string{"DELETE /representatives/r11?"}, c.backend.called("DELETE "))

	_, body = c.get(resp.Header.Get("Location"))
	assert.Contains(t, body, "Representative deleted")
	assert.Contains(t, body, `data-state="table"`)
	assert.Contains(t, body, "Page 1 of 1 (10 total)")
}

func TestDelete_OnlyAfterConfirmation(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	_, body := c.get("/admin/representatives?confirm=delete&id=r1")
	require.Contains(t, body, `data-dialog="confirm"`)
	assert.Contains(t, body, "Delete Mona Adel? This cannot be undone.")
	token := submatch(t, confirmTokenPattern, body)

	resp, body := c.get(submatch(t, confirmCancelPattern, body))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, `data-dialog="confirm"`)
	assert.Empty(t, c.backend.called("DELETE "), "cancel issues no call")

	resp, _ = c.post("/admin/representatives/r1/delete", url.Values{"confirmToken": {"forged"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Empty(t, c.backend.called("DELETE "), "a forged token issues no call")

	resp, _ = c.post("/admin/representatives/r1/delete", url.Values{"confirmToken": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, []string{"DELETE /representatives/r1?"}, c.backend.called("DELETE "))

	before := len(c.backend.called("GET /representatives?"))
	_, body = c.get(resp.Header.Get("Location"))
	assert.Contains(t, body, "Representative deleted")
	assert.Contains(t, body, `data-state="empty"`)
	assert.Len(t, c.backend.called("GET /representatives?"), before+1, "the list reloads")
}

func TestCreate_ServerFieldErrorShownUnderField(t *testing.T) {
	c := newConsole(t)
	c.backend.rejectName = "taken"
	c.login("admin")

	resp, body := c.post("/admin/representatives", url.Values{
		"id":          {"REP-2"},
		"name":        {"Omar Nabil"},
		"age":         {"40"},
		"phoneNumber": {"+201001234567"},
		"isActive":    {"true"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `data-dialog="editor"`)
	assert.Contains(t, body, `<div class="error" data-field="name">taken</div>`)
	assert.Contains(t, body, `value="Omar Nabil"`)
	assert.NotContains(t, body, `data-submitting`)
	assert.NotContains(t, body, `btn-primary" disabled`)
	assert.Equal(t, int32(0), c.backend.creates.Load())
}

func TestBranchEdit_KeepsCountryCodeOnTheWire(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	_, body := c.get("/admin/branches?dialog=edit&id=b1")
	require.Contains(t, body, `data-dialog="editor"`)
	assert.Contains(t, body, `name="phone" value="1234567890"`)

	resp, _ := c.post("/admin/branches/b1", url.Values{
		"name":     {"Smouha"},
		"location": {"Alexandria"},
		"address":  {"Victor Emanuel Sq"},
		"phone":    {"1234567890"},
		"manager":  {"Laila Saad"},
		"isActive": {"true"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	sent := c.backend.body("PUT /branches/b1")
	require.NotNil(t, sent)
	assert.Equal(t, "+201234567890", sent["phone"])
	assert.NotContains(t, sent, "email")

	_, body = c.get(resp.Header.Get("Location"))
	assert.Contains(t, body, "Branch updated")
}

func TestRadiologistRegistration_RegisterThenVerify(t *testing.T) {
	c := newConsole(t)
	c.login("admin")

	resp, _ := c.post("/radiologists/register", url.Values{
		"username":        {"dr.hana"},
		"email":           {"hana@lab.example"},
		"password":        {"s3cret-pass"},
		"confirmPassword": {"s3cret-pass"},
		"name":            {"Hana Fouad"},
		"licenseNumber":   {"LIC-77"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "dr.hana", c.backend.body("POST /auth/register")["username"])

	_, body := c.get(resp.Header.Get("Location"))
	require.Contains(t, body, `data-dialog="verify"`)
	assert.Contains(t, body, `src="data:image/png;base64,`)
	assert.Contains(t, body, `data-secret>JBSWY3DPEHPK3PXP</span>`)

	resp, _ = c.post("/radiologists/verify", url.Values{"token": {"123456"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	verify := c.backend.body("POST /auth/verify-2fa")
	assert.Equal(t, "U", verify["userId"])
	assert.Equal(t, "123456", verify["token"])

	before := len(c.backend.called("GET /radiologists?"))
	_, body = c.get(resp.Header.Get("Location"))
	assert.Contains(t, body, "Radiologist registered")
	assert.NotContains(t, body, `data-dialog="verify"`)
	assert.Len(t, c.backend.called("GET /radiologists?"), before+1, "the list reloads")

	resp, _ = c.get("/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the admin stays signed in")
}
