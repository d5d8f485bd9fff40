package view

import (
	"html/template"
	"time"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

// Page is the data every template receives. Content holds the screen's own
// view model.
type Page struct {
	Title      string
	Nav        string
	Path       string
	Language   string
	Direction  locale.Direction
	Styles     locale.StyleFragment
	Theme      string
	ThemeHref  string
	Principal  *entity.Principal
	SuperAdmin bool
	Languages  []string
	Toasts     []Toast
	Refresh    int
	Content    interface{}
}

// Toast is a feedback event as the page script needs it.
type Toast struct {
	ID          string
	Severity    string
	Message     string
	Direction   string
	RemainingMS int64
	Paused      bool
}

func NewToasts(events []feedback.Event, now time.Time) []Toast {
	out := make([]Toast, 0, len(events))
	for _, e := range events {
		out = append(out, Toast{
			ID:          e.ID,
			Severity:    string(e.Severity),
			Message:     e.Message,
			Direction:   e.Direction,
			RemainingMS: e.Remaining(now).Milliseconds(),
			Paused:      e.Paused(),
		})
	}
	return out
}

// Action is a button or link on a row or toolbar. A Method of POST renders
// a small form so the action never happens on a plain link.
type Action struct {
	Label  string
	Href   string
	Method string
	Class  string
	Hidden map[string]string
}

type Column struct {
	Key      string
	Label    string
	Sortable bool
	SortHref string
	Sorted   string
}

type Cell struct {
	Text  string
	Href  string
	Chip  string
	Class string
}

type Row struct {
	ID      string
	Class   string
	Cells   []Cell
	Actions []Action
}

// ListView is a Resource Screen: toolbar, table or empty state, pager and
// whichever dialog is open.
type ListView struct {
	Base         string
	Heading      string
	State        screen.ListState
	Searchable   bool
	StatusFilter bool
	Extra        []Filter
	Columns      []Column
	Rows         []Row
	Toolbar      []Action
	Loaded       bool
	Stale        bool
	PrevHref     string
	NextHref     string
	Hidden       map[string]string

	Editor  *FormView
	Confirm *ConfirmView
	Stats   *StatsView
	Verify  *VerifyView
	Matrix  *MatrixView
}

// Filter is an extra select in the toolbar, e.g. the audit action.
type Filter struct {
	Name    string
	Label   string
	Value   string
	Options []Option
}

// Empty is true once a load finished with no rows. It is never true while
// nothing has loaded, so the empty state and the spinner stay distinct.
func (v *ListView) Empty() bool {
	return v.Loaded && len(v.Rows) == 0
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type FieldView struct {
	Name        string
	Label       string
	Kind        string
	Value       string
	Error       string
	Prefix      string
	Placeholder string
	Options     []Option
	Required    bool
	ReadOnly    bool
	Checked     bool
}

// FormView is an editor dialog or a standalone form page.
type FormView struct {
	Title       string
	Action      string
	SubmitLabel string
	CancelHref  string
	Fields      []FieldView
	Hidden      map[string]string
	Submitting  bool
	Refresh     bool
	Message     string
}

// NewFormView renders a form handle. label and msg translate keys.
func NewFormView(h *form.Handle, readOnly map[string]bool, label func(string) string) []FieldView {
	values := h.Values()
	fields := make([]FieldView, 0, len(h.Schema().Fields))
	for _, f := range h.Schema().Fields {
		fv := FieldView{
			Name:        f.Name,
			Label:       label(f.Label),
			Kind:        string(f.Kind),
			Value:       values.Get(f.Name),
			Error:       h.Error(f.Name),
			Prefix:      f.Prefix,
			Placeholder: label(f.Placeholder),
			Required:    f.Required(),
			ReadOnly:    readOnly[f.Name],
		}
		if f.Kind == form.KindCheckbox {
			fv.Checked = values.Bool(f.Name)
		}
		if f.Kind == form.KindPassword {
			fv.Value = ""
		}
		for _, o := range f.Options {
			fv.Options = append(fv.Options, Option{Value: o.Value, Label: label(o.Label), Selected: o.Value == fv.Value})
		}
		fields = append(fields, fv)
	}
	return fields
}

type ConfirmView struct {
	Title      string
	Message    string
	Action     string
	Token      string
	CancelHref string
	Hidden     map[string]string
}

type StatsView struct {
	Title      string
	CloseHref  string
	Cards      []Card
	Monthly    []entity.MonthlyCount
	MonthLabel string
	CountLabel string
}

type Card struct {
	Label string
	Value string
}

// VerifyView is the second registration step: QR, secret and code input.
type VerifyView struct {
	Title      string
	QR         template.URL
	Secret     string
	Action     string
	CancelURL  string
	Field      FieldView
	Standalone bool
}

// MatrixView is the privilege editor: one row per module, one checkbox per operation.
type MatrixView struct {
	Title      string
	User       string
	Action     string
	CancelHref string
	Hidden     map[string]string
	Operations []Column
	Modules    []MatrixRow
}

type MatrixRow struct {
	Module string
	Label  string
	Cells  []MatrixCell
}

type MatrixCell struct {
	Name    string
	Checked bool
}

type DashboardView struct {
	Cards    []Card
	ByStatus []Card
	TopScans []entity.NamedCount
	TopDocs  []entity.NamedCount
	Recent   []Row
	Columns  []Column
	Partial  bool
}

// DetailView is a drilldown screen: the entity's fields and one child list.
type DetailView struct {
	Heading  string
	BackHref string
	Fields   []Card
	Child    *ListView
	Gallery  bool
	Images   []ImageView
	AddImage *FormView
	Confirm  *ConfirmView
	Events   []Row
	Columns  []Column
}

type ImageView struct {
	URL         string
	Type        string
	Description string
	Uploaded    string
	Remove      Action
}

type ProfileView struct {
	Fields     []Card
	Privileges []Row
	Columns    []Column
}

// FallbackView replaces a screen whose entity could not be loaded.
type FallbackView struct {
	Heading  string
	Message  string
	BackHref string
}

// AuthView is one of the public account pages.
type AuthView struct {
	Form   *FormView
	Verify *VerifyView
	Links  []Action
}
