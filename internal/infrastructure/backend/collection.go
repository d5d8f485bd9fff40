package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

// Collection is the list/get/create/update/delete verb set of one backend resource.
type Collection[T any] struct {
	client  *Client
	path    string
	listKey string
}

// NewCollection binds path (e.g. "/representatives") and the key the backend
// may use for the list inside its envelope.
func NewCollection[T any](client *Client, path, listKey string) *Collection[T] {
	return &Collection[T]{client: client, path: strings.TrimRight(path, "/"), listKey: listKey}
}

// Path joins segments onto the collection path, escaping each one.
func (c *Collection[T]) Path(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.path)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func (c *Collection[T]) Client() *Client {
	return c.client
}

func (c *Collection[T]) List(ctx context.Context, query url.Values) (*entity.Page[T], error) {
	body, err := c.client.Do(ctx, http.MethodGet, c.path, query, nil)
	if err != nil {
		return nil, err
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	page, err := decodeList[T](body, c.listKey, limit)
	if err != nil {
		return nil, &Error{Kind: KindServer, Status: http.StatusOK, Message: "unexpected list body", cause: err}
	}
	return page, nil
}

// Get returns nil, nil never: a missing entity is a not-found *Error.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := c.client.Get(ctx, c.Path(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Collection[T]) Create(ctx context.Context, body interface{}) (*T, error) {
	var out T
	if err := c.client.Post(ctx, c.path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, body interface{}) (*T, error) {
	var out T
	if err := c.client.Put(ctx, c.Path(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, c.Path(id))
}
