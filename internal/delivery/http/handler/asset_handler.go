package handler

import (
	"net/http"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/theme"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

// AssetHandler serves the generated stylesheet and the health probe. It runs
// outside the session middleware.
type AssetHandler struct {
	styles *theme.StyleCache
}

func NewAssetHandler(styles *theme.StyleCache) *AssetHandler {
	return &AssetHandler{styles: styles}
}

// Stylesheet serves /assets/theme.css?mode=&dir= with an ETag.
func (h *AssetHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dir := locale.LTR
	if locale.Direction(q.Get("dir")) == locale.RTL {
		dir = locale.RTL
	}
	css, etag := h.styles.Stylesheet(theme.ParseMode(q.Get("mode")), dir)

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(css)
}

func (h *AssetHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "ok", nil)
}
