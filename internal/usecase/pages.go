package usecase

import (
	"context"
	"net/url"
	"strconv"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

const (
	walkPageSize = 100
	walkMaxPages = 50
)

type lister[T any] interface {
	List(ctx context.Context, query url.Values) (*entity.Page[T], error)
}

// walkPages reads every page of a collection, walkPageSize items at a time,
// until the backend's totalPages or an empty page. extra is copied into
// every request. It stops after walkMaxPages.
func walkPages[T any](ctx context.Context, repo lister[T], extra url.Values) ([]T, error) {
	var items []T
	for page := 1; page <= walkMaxPages; page++ {
		q := url.Values{}
		for k, v := range extra {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(walkPageSize))

		result, err := repo.List(ctx, q)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}
	return items, nil
}
