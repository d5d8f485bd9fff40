package handler

import (
	"net/http"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/theme"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

// SettingsHandler edits the session's language and theme.
type SettingsHandler struct {
	*Base
	schema form.Schema
}

func NewSettingsHandler(base *Base) *SettingsHandler {
	return &SettingsHandler{Base: base, schema: settingsSchema(base.catalog.Supported())}
}

func (h *SettingsHandler) formView(r *http.Request, fh *form.Handle) *view.FormView {
	t := h.translator(r)
	return &view.FormView{
		Title:       t("settings.title"),
		Action:      "/settings",
		SubmitLabel: t("common.save"),
		Fields:      view.NewFormView(fh, nil, t),
	}
}

func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())
	values := form.Values{
		"language": h.localizer(r).Language,
		"theme":    string(theme.ParseMode(s.Theme)),
	}
	fh := form.New(h.schema, values, h.formValidator(r))
	h.render(w, r, http.StatusOK, view.PageSettings, h.page(r, h.t(r, "settings.title"), "settings", h.formView(r, fh)))
}

// Save applies both preferences. They take effect on the next render.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	values := h.schema.Parse(r)
	req := dto.SettingsRequest{
		Language: strings.TrimSpace(values.Get("language")),
		Theme:    strings.TrimSpace(values.Get("theme")),
	}
	if err := h.validator.Validate(&req); err != nil {
		fh := form.New(h.schema, values, h.formValidator(r))
		errs := map[string]string{}
		for field := range h.validator.FormatValidationErrors(err) {
			name := strings.ToLower(field[:1]) + field[1:]
			f, _ := h.schema.Field(name)
			errs[name] = h.tp(r, form.MsgOneOf, map[string]interface{}{"field": h.t(r, f.Label), "options": optionList(f)})
		}
		fh.SetErrors(errs)
		h.notifyKey(r, feedback.SeverityError, "errors.validation")
		h.render(w, r, http.StatusUnprocessableEntity, view.PageSettings, h.page(r, h.t(r, "settings.title"), "settings", h.formView(r, fh)))
		return
	}

	s := middleware.GetSession(r.Context())
	s.Language = req.Language
	s.Theme = req.Theme
	s.Touch()
	// the toast is rendered in the newly chosen language
	l := h.catalog.Localizer(req.Language)
	s.Notify(feedback.SeveritySuccess, l.T("settings.saved", nil), string(l.Direction))
	response.SeeOther(w, r, "/settings")
}

// ToggleTheme flips light and dark and returns to the page it was posted from.
func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())
	s.Theme = string(theme.ParseMode(s.Theme).Toggle())
	s.Touch()
	response.SeeOther(w, r, safeReturn(r.PostFormValue("return"), "/"))
}

// SwitchLanguage sets the language from the language links on any page.
func (h *SettingsHandler) SwitchLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.PostFormValue("language")
	if h.catalog.IsSupported(lang) {
		s := middleware.GetSession(r.Context())
		s.Language = lang
		s.Touch()
	}
	response.SeeOther(w, r, safeReturn(r.PostFormValue("return"), "/"))
}

func optionList(f form.Field) string {
	values := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		values = append(values, o.Value)
	}
	return strings.Join(values, ", ")
}
