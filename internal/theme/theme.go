package theme

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark"; anything else is light.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(s)) == Dark {
		return Dark
	}
	return Light
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Border     string
	Primary    string
	OnPrimary  string
	Success    string
	Warning    string
	Danger     string
	Overlay    string
}

func PaletteFor(m Mode) Palette {
	if m == Dark {
		return Palette{
			Background: "#121212",
			Surface:    "#1e1e1e",
			Text:       "#f5f5f5",
			Muted:      "#a0a0a0",
			Border:     "#333333",
			Primary:    "#90caf9",
			OnPrimary:  "#0d1b2a",
			Success:    "#66bb6a",
			Warning:    "#ffa726",
			Danger:     "#ef5350",
			Overlay:    "rgba(0,0,0,.7)",
		}
	}
	return Palette{
		Background: "#f4f6f8",
		Surface:    "#ffffff",
		Text:       "#1c2025",
		Muted:      "#6b7280",
		Border:     "#e0e3e7",
		Primary:    "#1976d2",
		OnPrimary:  "#ffffff",
		Success:    "#2e7d32",
		Warning:    "#ed6c02",
		Danger:     "#d32f2f",
		Overlay:    "rgba(0,0,0,.45)",
	}
}

type sheetKey struct {
	mode Mode
	dir  locale.Direction
}

type sheet struct {
	css  []byte
	etag string
}

// StyleCache renders one stylesheet per (mode, direction) and keeps it.
type StyleCache struct {
	mu     sync.RWMutex
	sheets map[sheetKey]sheet
}

func NewStyleCache() *StyleCache {
	return &StyleCache{sheets: make(map[sheetKey]sheet)}
}

// Stylesheet returns the CSS and its ETag for mode and dir.
func (c *StyleCache) Stylesheet(mode Mode, dir locale.Direction) ([]byte, string) {
	key := sheetKey{mode: ParseMode(string(mode)), dir: dir}
	if key.dir != locale.RTL {
		key.dir = locale.LTR
	}

	c.mu.RLock()
	s, ok := c.sheets[key]
	c.mu.RUnlock()
	if ok {
		return s.css, s.etag
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sheets[key]; ok {
		return s.css, s.etag
	}

	css := render(PaletteFor(key.mode), locale.Styles(key.dir))
	sum := sha1.Sum(css)
	s = sheet{css: css, etag: `"` + hex.EncodeToString(sum[:8]) + `"`}
	c.sheets[key] = s
	return s.css, s.etag
}

// Len is the number of sheets built so far.
func (c *StyleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sheets)
}

func render(p Palette, s locale.StyleFragment) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, ":root{--bg:%s;--surface:%s;--text:%s;--muted:%s;--border:%s;--primary:%s;--on-primary:%s;--success:%s;--warning:%s;--danger:%s;--overlay:%s}\n",
		p.Background, p.Surface, p.Text, p.Muted, p.Border, p.Primary, p.OnPrimary, p.Success, p.Warning, p.Danger, p.Overlay)
	b.WriteString("*{box-sizing:border-box}\n")
	fmt.Fprintf(&b, "body{margin:0;font-family:system-ui,sans-serif;background:var(--bg);color:var(--text);direction:%s;text-align:%s}\n", s.Dir, s.TextAlign)
	b.WriteString("a{color:var(--primary)}\n")
	fmt.Fprintf(&b, ".layout{display:flex;flex-direction:%s;min-height:100vh}\n", s.FlexDirection)
	fmt.Fprintf(&b, ".nav{width:230px;background:var(--surface);border-%s:1px solid var(--border);padding:1rem 0}\n", s.End)
	fmt.Fprintf(&b, ".nav a{display:block;padding:.5rem 1rem;%s:1.25rem;text-decoration:none;color:var(--text)}\n", s.PaddingStart)
	fmt.Fprintf(&b, ".nav a.active{background:var(--bg);border-%s:3px solid var(--primary)}\n", s.Start)
	b.WriteString(".main{flex:1;padding:1.5rem;overflow:auto}\n")
	fmt.Fprintf(&b, ".toolbar{display:flex;flex-direction:%s;gap:.5rem;align-items:center;margin-bottom:1rem;flex-wrap:wrap}\n", s.FlexDirection)
	b.WriteString(".toolbar .spacer{flex:1}\n")
	b.WriteString("table{width:100%;border-collapse:collapse;background:var(--surface)}\n")
	fmt.Fprintf(&b, "th,td{padding:.6rem .75rem;border-bottom:1px solid var(--border);text-align:%s}\n", s.TextAlign)
	b.WriteString("th a{color:inherit;text-decoration:none}\n")
	b.WriteString("tr.low-stock td{background:rgba(237,108,2,.12)}\n")
	fmt.Fprintf(&b, ".actions{display:flex;flex-direction:%s;gap:.25rem}\n", s.FlexDirection)
	b.WriteString(".btn{display:inline-block;padding:.45rem .9rem;border:1px solid var(--border);border-radius:4px;background:var(--surface);color:var(--text);cursor:pointer;text-decoration:none;font:inherit}\n")
	b.WriteString(".btn-primary{background:var(--primary);border-color:var(--primary);color:var(--on-primary)}\n")
	b.WriteString(".btn-danger{background:var(--danger);border-color:var(--danger);color:#fff}\n")
	b.WriteString(".btn[disabled],.btn.disabled{opacity:.5;pointer-events:none}\n")
	fmt.Fprintf(&b, ".icon-gap{%s:.35rem}\n", s.MarginEnd)
	b.WriteString(".chip{display:inline-block;padding:.1rem .5rem;border-radius:999px;font-size:.8rem}\n")
	b.WriteString(".chip-active{background:var(--success);color:#fff}.chip-inactive{background:var(--muted);color:#fff}.chip-warning{background:var(--warning);color:#fff}\n")
	fmt.Fprintf(&b, ".pager{display:flex;flex-direction:%s;gap:.5rem;align-items:center;justify-content:flex-end;margin-top:1rem}\n", s.FlexDirection)
	b.WriteString(".empty{padding:3rem;text-align:center;color:var(--muted);background:var(--surface)}\n")
	b.WriteString(".spinner{margin:4rem auto;width:40px;height:40px;border:4px solid var(--border);border-top-color:var(--primary);border-radius:50%;animation:spin 1s linear infinite}\n")
	b.WriteString("@keyframes spin{to{transform:rotate(360deg)}}\n")
	b.WriteString(".modal-backdrop{position:fixed;inset:0;background:var(--overlay);display:flex;align-items:center;justify-content:center;z-index:10}\n")
	fmt.Fprintf(&b, ".modal{background:var(--surface);border-radius:8px;padding:1.5rem;width:min(560px,95vw);max-height:90vh;overflow:auto;text-align:%s}\n", s.TextAlign)
	fmt.Fprintf(&b, ".modal footer{display:flex;flex-direction:%s;justify-content:flex-end;gap:.5rem;margin-top:1rem}\n", s.FlexDirection)
	b.WriteString(".field{margin-bottom:.85rem}.field label{display:block;font-size:.85rem;color:var(--muted);margin-bottom:.25rem}\n")
	b.WriteString(".field input,.field select,.field textarea{width:100%;padding:.5rem;border:1px solid var(--border);border-radius:4px;background:var(--bg);color:var(--text);font:inherit}\n")
	b.WriteString(".field.invalid input,.field.invalid select,.field.invalid textarea{border-color:var(--danger)}\n")
	b.WriteString(".field .error{color:var(--danger);font-size:.8rem;margin-top:.2rem}\n")
	fmt.Fprintf(&b, ".input-group{display:flex;flex-direction:%s}.input-group span{padding:.5rem;border:1px solid var(--border);background:var(--surface)}\n", s.FlexDirection)
	b.WriteString(".cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(200px,1fr));gap:1rem;margin-bottom:1.5rem}\n")
	b.WriteString(".card{background:var(--surface);border:1px solid var(--border);border-radius:8px;padding:1rem}\n")
	b.WriteString(".card .value{font-size:1.75rem;font-weight:600}\n")
	b.WriteString(".fallback{padding:3rem;text-align:center}\n")
	fmt.Fprintf(&b, ".toasts{position:fixed;top:1rem;%s:1rem;display:flex;flex-direction:column;gap:.5rem;z-index:20}\n", toastSide(s.ToastPosition))
	fmt.Fprintf(&b, ".toast{min-width:260px;padding:.75rem 1rem;border-radius:6px;color:#fff;cursor:pointer;box-shadow:0 2px 8px rgba(0,0,0,.2);text-align:%s}\n", s.TextAlign)
	b.WriteString(".toast-success{background:var(--success)}.toast-error{background:var(--danger)}.toast-warning{background:var(--warning)}.toast-info{background:var(--primary)}\n")
	b.WriteString(".auth{max-width:420px;margin:4rem auto;background:var(--surface);padding:2rem;border-radius:8px}\n")
	b.WriteString(".qr{display:block;margin:1rem auto}\n")
	b.WriteString(".mono{font-family:ui-monospace,monospace;word-break:break-all}\n")
	return []byte(b.String())
}

func toastSide(position string) string {
	if strings.HasSuffix(position, "left") {
		return "left"
	}
	return "right"
}
