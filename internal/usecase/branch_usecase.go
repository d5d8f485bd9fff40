package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

type BranchUsecase interface {
	ResourceUsecase[entity.Branch]
}

type branchUsecase struct {
	ResourceUsecase[entity.Branch]
	repo repository.BranchRepository
	log  *logrus.Logger
}

func NewBranchUsecase(repo repository.BranchRepository, log *logrus.Logger) BranchUsecase {
	return &branchUsecase{
		ResourceUsecase: NewResourceUsecase[entity.Branch]("branches", repo, BranchCodec, log),
		repo:            repo,
		log:             log,
	}
}

// Load fetches every page of branches and applies search, status and paging
// locally.
func (u *branchUsecase) Load(ctx context.Context, state screen.ListState) (*entity.Page[entity.Branch], error) {
	all, err := walkPages[entity.Branch](ctx, u.repo, nil)
	if err != nil {
		u.log.Warnf("Failed to load branches: %+v", err)
		return nil, err
	}

	filtered := FilterBranches(all, state.Search, state.Status)
	SortBranches(filtered, state.SortKey, state.SortOrder)
	items, paged := screen.Slice(state, filtered)
	return &entity.Page[entity.Branch]{Items: items, Total: paged.Total, TotalPages: paged.TotalPages}, nil
}

// FilterBranches keeps branches whose name, location, address or manager
// contains search, ignoring case, and that match the status filter.
func FilterBranches(items []entity.Branch, search string, status screen.StatusFilter) []entity.Branch {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]entity.Branch, 0, len(items))
	for _, b := range items {
		switch status {
		case screen.StatusActive:
			if !b.IsActive {
				continue
			}
		case screen.StatusInactive:
			if b.IsActive {
				continue
			}
		}
		if needle != "" && !branchMatches(b, needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func branchMatches(b entity.Branch, needle string) bool {
	for _, field := range []string{b.Name, b.Location, b.Address, b.Manager} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SortBranches orders branches in place. Unknown keys keep the server order.
func SortBranches(items []entity.Branch, key string, order screen.SortOrder) {
	var less func(a, b entity.Branch) bool
	switch key {
	case "name":
		less = func(a, b entity.Branch) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "location":
		less = func(a, b entity.Branch) bool { return strings.ToLower(a.Location) < strings.ToLower(b.Location) }
	case "manager":
		less = func(a, b entity.Branch) bool { return strings.ToLower(a.Manager) < strings.ToLower(b.Manager) }
	case "createdAt":
		less = func(a, b entity.Branch) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == screen.Asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}
