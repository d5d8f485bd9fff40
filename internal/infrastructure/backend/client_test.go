package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/config"
)

type item struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, quietLogger())
}

func TestClient_AttachesTokenFromContext(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"_id":"1","name":"a"}}`))
	})

	var out item
	require.NoError(t, c.Get(WithToken(context.Background(), "tok"), "/things/1", nil, &out))
	assert.Equal(t, "Bearer tok", got)
	assert.Equal(t, "a", out.Name)

	require.NoError(t, c.Get(context.Background(), "/things/1", nil, &out))
	assert.Empty(t, got)
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusTooManyRequests, KindRequest},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"status":"error","message":"nope"}`))
			})
			err := c.Get(context.Background(), "/x", nil, nil)
			be, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, be.Kind)
			assert.Equal(t, tt.status, be.Status)
			assert.Equal(t, "nope", be.Message)
		})
	}
}

func TestClient_ValidationFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","message":"Validation failed","errors":[{"field":"name","message":"taken"},{"path":"age","msg":"too young"}]}`))
	})

	err := c.Post(context.Background(), "/representatives", map[string]string{"name": "Alex"}, nil)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, be.Kind)
	assert.Equal(t, map[string]string{"name": "taken", "age": "too young"}, be.FieldMap())
}

func TestClient_UnauthorizedHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	var calls int32
	var seen string
	c.OnUnauthorized(func(ctx context.Context) {
		atomic.AddInt32(&calls, 1)
		seen = TokenFrom(ctx)
	})

	err := c.Get(WithToken(context.Background(), "stale"), "/auth/me", nil, nil)
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "stale", seen)
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(config.BackendConfig{BaseURL: base, Timeout: time.Second}, quietLogger())
	err := c.Get(context.Background(), "/x", nil, nil)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestClient_TimeoutIsNetwork(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Equal(t, KindNetwork, KindOf(c.Get(ctx, "/slow", nil, nil)))
}

func TestCollection_ListShapes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		total      int
		totalPages int
	}{
		{"raw array", `[{"_id":"1","name":"a"},{"_id":"2","name":"b"}]`, 2, 1},
		{"data array", `{"data":[{"_id":"1","name":"a"},{"_id":"2","name":"b"}]}`, 2, 1},
		{"data items", `{"data":{"items":[{"_id":"1","name":"a"},{"_id":"2","name":"b"}],"pagination":{"total":12,"totalPages":6}}}`, 12, 6},
		{"resource key", `{"data":{"representatives":[{"_id":"1","name":"a"},{"_id":"2","name":"b"}],"pagination":{"total":4,"totalPages":2}}}`, 4, 2},
		{"nested data", `{"data":{"data":{"items":[{"_id":"1","name":"a"},{"_id":"2","name":"b"}],"pagination":{"total":3,"totalPages":2}}}}`, 3, 2},
		{"top level pagination", `{"data":[{"_id":"1","name":"a"},{"_id":"2","name":"b"}],"pagination":{"total":9,"pages":5}}`, 9, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var query url.Values
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				w.Write([]byte(tt.body))
			})
			col := NewCollection[item](c, "/representatives", "representatives")

			page, err := col.List(context.Background(), url.Values{"page": {"1"}, "limit": {"2"}})
			require.NoError(t, err)
			require.Len(t, page.Items, 2)
			assert.Equal(t, "b", page.Items[1].Name)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.totalPages, page.TotalPages)
			assert.Equal(t, "1", query.Get("page"))
			assert.Equal(t, "2", query.Get("limit"))
		})
	}
}

func TestCollection_EmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[],"pagination":{"total":0,"totalPages":0}}}`))
	})
	page, err := NewCollection[item](c, "/doctors", "doctors").List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestCollection_Verbs(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{"data":{"_id":"X","name":"n"}}`))
	})
	col := NewCollection[item](c, "/representatives/", "representatives")
	ctx := context.Background()

	got, err := col.Update(ctx, "X", map[string]string{"name": "n"})
	require.NoError(t, err)
	assert.Equal(t, "X", got.ID)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/representatives/X", path)

	require.NoError(t, col.Delete(ctx, "X"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/representatives/X", path)

	_, err = col.Create(ctx, map[string]string{"name": "n"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/representatives", path)
}
