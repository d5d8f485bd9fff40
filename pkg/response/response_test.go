package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{"page load", map[string]string{"Accept": "text/html,application/xhtml+xml"}, false},
		{"json", map[string]string{"Accept": "application/json"}, true},
		{"browser accepting both", map[string]string{"Accept": "text/html, application/json"}, false},
		{"fetch marker", map[string]string{"X-Requested-With": "fetch"}, true},
		{"no headers", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, WantsJSON(r))
		})
	}
}

func TestForbidden_DefaultMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Forbidden(w, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Forbidden", body.Message)
}

func TestSeeOther(t *testing.T) {
	w := httptest.NewRecorder()
	SeeOther(w, httptest.NewRequest(http.MethodPost, "/admin/branches", nil), "/admin/branches?page=1")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/branches?page=1", w.Header().Get("Location"))
}
