package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

type EditorState string

const (
	EditorClosed     EditorState = "closed"
	EditorOpen       EditorState = "open"
	EditorSubmitting EditorState = "submitting"
)

var (
	ErrEditorClosed = errors.New("editor is not open")
	ErrEditorBusy   = errors.New("editor is submitting")
)

// Editor is the modal create/edit dialog of a resource screen.
type Editor struct {
	state  EditorState
	target string
	form   *form.Handle
	schema form.Schema
	check  *form.Validator
}

func NewEditor(schema form.Schema, check *form.Validator) *Editor {
	return &Editor{state: EditorClosed, schema: schema, check: check}
}

// OpenCreate opens the dialog with empty values.
func (e *Editor) OpenCreate() {
	e.open("", nil)
}

// OpenEdit opens the dialog seeded from an existing entity.
func (e *Editor) OpenEdit(target string, seed form.Values) {
	e.open(target, seed)
}

func (e *Editor) open(target string, seed form.Values) {
	if e.state == EditorSubmitting {
		return
	}
	if e.form == nil {
		e.form = form.New(e.schema, seed, e.check)
	} else {
		e.form.Reinitialize(seed)
	}
	e.target = target
	e.state = EditorOpen
}

// Close is a no-op while submitting.
func (e *Editor) Close() bool {
	if e.state == EditorSubmitting {
		return false
	}
	e.state = EditorClosed
	e.form = nil
	e.target = ""
	return true
}

// Submit validates and runs save. Success closes the dialog; a failure
// leaves it open with the form's errors.
func (e *Editor) Submit(ctx context.Context, save func(context.Context, form.Values) error) error {
	switch e.state {
	case EditorClosed:
		return ErrEditorClosed
	case EditorSubmitting:
		return ErrEditorBusy
	}

	err := e.form.HandleSubmit(ctx, func(ctx context.Context, v form.Values) error {
		e.state = EditorSubmitting
		defer func() { e.state = EditorOpen }()
		return save(ctx, v)
	})
	if err != nil {
		return err
	}

	e.Close()
	return nil
}

func (e *Editor) State() EditorState { return e.state }

func (e *Editor) IsOpen() bool { return e.state != EditorClosed }

func (e *Editor) Submitting() bool { return e.state == EditorSubmitting }

// IsEdit reports whether the dialog edits an existing entity.
func (e *Editor) IsEdit() bool { return e.target != "" }

func (e *Editor) Target() string { return e.target }

// Form is nil while closed.
func (e *Editor) Form() *form.Handle { return e.form }

// InFlight tracks submits that have not returned yet, per session and dialog.
// A second submit of the same dialog is refused until the first completes.
type InFlight struct {
	mu      sync.Mutex
	pending map[string]Pending
}

// Pending is what a page needs to keep showing a dialog whose submit is running.
type Pending struct {
	Dialog  string
	Target  string
	Values  form.Values
	Started time.Time
}

func NewInFlight() *InFlight {
	return &InFlight{pending: make(map[string]Pending)}
}

func inFlightKey(sessionID, dialog string) string {
	return sessionID + "\x00" + dialog
}

// Acquire registers a submit. It returns a release func, or false when the
// same dialog already has one running.
func (f *InFlight) Acquire(sessionID string, p Pending) (func(), bool) {
	key := inFlightKey(sessionID, p.Dialog)

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.pending[key]; busy {
		return nil, false
	}
	if p.Started.IsZero() {
		p.Started = time.Now()
	}
	f.pending[key] = p

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.pending, key)
			f.mu.Unlock()
		})
	}, true
}

// Lookup returns the running submit of dialog, if any.
func (f *InFlight) Lookup(sessionID, dialog string) (Pending, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pending[inFlightKey(sessionID, dialog)]
	return p, ok
}
