package backend

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

var errNoItems = errors.New("response carries no list")

// decodeData unmarshals the "data" member of an envelope into out, or the
// whole body when there is no envelope.
func decodeData(body []byte, out interface{}) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(body, &env); err != nil {
			return err
		}
		if data, ok := env["data"]; ok && len(data) > 0 && string(data) != "null" {
			return json.Unmarshal(data, out)
		}
	}
	return json.Unmarshal(body, out)
}

type pagination struct {
	Total      *int `json:"total"`
	TotalItems *int `json:"totalItems"`
	Count      *int `json:"count"`
	TotalPages *int `json:"totalPages"`
	Pages      *int `json:"pages"`
}

func (p *pagination) merge(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var next pagination
	if json.Unmarshal(raw, &next) != nil {
		return
	}
	if next.Total != nil {
		p.Total = next.Total
	}
	if next.TotalItems != nil {
		p.TotalItems = next.TotalItems
	}
	if next.Count != nil {
		p.Count = next.Count
	}
	if next.TotalPages != nil {
		p.TotalPages = next.TotalPages
	}
	if next.Pages != nil {
		p.Pages = next.Pages
	}
}

func (p *pagination) total() (int, bool) {
	for _, v := range []*int{p.Total, p.TotalItems, p.Count} {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func (p *pagination) totalPages() (int, bool) {
	for _, v := range []*int{p.TotalPages, p.Pages} {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// decodeList accepts every list shape the backend produces:
//
//	[...]
//	{data: [...]}
//	{data: {items|<listKey>: [...], pagination}}
//	{data: {data: {items: [...], pagination}}}
//
// with pagination either next to the items, inside data, or at the top level.
func decodeList[T any](body []byte, listKey string, limit int) (*entity.Page[T], error) {
	body = bytes.TrimSpace(body)
	var pg pagination
	items, err := findItems(body, listKey, &pg, 0)
	if err != nil {
		return nil, err
	}

	page := &entity.Page[T]{Items: make([]T, 0)}
	if err := json.Unmarshal(items, &page.Items); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = make([]T, 0)
	}

	total, hasTotal := pg.total()
	if !hasTotal {
		total = len(page.Items)
	}
	page.Total = total

	if tp, ok := pg.totalPages(); ok {
		page.TotalPages = tp
	} else if limit > 0 {
		page.TotalPages = (total + limit - 1) / limit
	} else if total > 0 {
		page.TotalPages = 1
	}
	return page, nil
}

func findItems(body []byte, listKey string, pg *pagination, depth int) (json.RawMessage, error) {
	if len(body) == 0 || depth > 3 {
		return nil, errNoItems
	}
	if body[0] == '[' {
		return body, nil
	}
	if body[0] != '{' {
		return nil, errNoItems
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}

	pg.merge(body)
	pg.merge(obj["pagination"])
	pg.merge(obj["meta"])

	for _, key := range []string{"items", listKey, "results"} {
		if key == "" {
			continue
		}
		if raw, ok := obj[key]; ok && len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '[' {
			return raw, nil
		}
	}
	if data, ok := obj["data"]; ok {
		return findItems(bytes.TrimSpace(data), listKey, pg, depth+1)
	}
	return nil, errNoItems
}
