package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

var sampleBranches = []entity.Branch{
	{ObjectID: "1", Name: "Downtown", Location: "Cairo", Address: "12 Tahrir St", Manager: "Mona", IsActive: true},
	{ObjectID: "2", Name: "Heliopolis", Location: "Cairo", Address: "4 Baghdad St", Manager: "Omar", IsActive: false},
	{ObjectID: "3", Name: "Smouha", Location: "Alexandria", Address: "Victor Emanuel Sq", Manager: "Laila", IsActive: true},
}

func TestFilterBranches(t *testing.T) {
	tests := []struct {
		search string
		status screen.StatusFilter
		want   []string
	}{
		{"", screen.StatusAll, []string{"1", "2", "3"}},
		{"CAIRO", screen.StatusAll, []string{"1", "2"}},
		{"baghdad", screen.StatusAll, []string{"2"}},
		{"laila", screen.StatusAll, []string{"3"}},
		{"cairo", screen.StatusActive, []string{"1"}},
		{"", screen.StatusInactive, []string{"2"}},
		{"nowhere", screen.StatusAll, []string{}},
	}
	for _, tt := range tests {
		got := FilterBranches(sampleBranches, tt.search, tt.status)
		ids := []string{}
		for _, b := range got {
			ids = append(ids, b.ObjectID)
		}
		assert.Equal(t, tt.want, ids, "search=%q status=%s", tt.search, tt.status)
	}
}

func TestSortBranches(t *testing.T) {
	items := append([]entity.Branch{}, sampleBranches...)
	items[0].CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items[1].CreatedAt = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	items[2].CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	SortBranches(items, "name", screen.Asc)
	assert.Equal(t, "Downtown", items[0].Name)
	SortBranches(items, "createdAt", screen.Desc)
	assert.Equal(t, "Smouha", items[0].Name)
	assert.Equal(t, "Heliopolis", items[2].Name)
}

func TestBranchUsecase_LoadPagesLocally(t *testing.T) {
	repo := &memoryCollection[entity.Branch]{items: sampleBranches}
	uc := NewBranchUsecase(repo, quietLogger())

	state := screen.NewListState(1, "").WithSearch("cairo").GoTo(2)
	page, err := uc.Load(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ObjectID)

	require.Len(t, repo.queries, 1)
	assert.Equal(t, "100", repo.queries[0].Get("limit"))
	assert.Empty(t, repo.queries[0].Get("search"))
}

func TestBranchUsecase_LoadReadsEveryPage(t *testing.T) {
	repo := &pagedCollection[entity.Branch]{perPage: 100}
	for i := 1; i <= 130; i++ {
		b := entity.Branch{ObjectID: strconv.Itoa(i), Name: "Branch " + strconv.Itoa(i), Location: "Giza", IsActive: true}
		if i == 125 {
			b.Manager = "Yasmin Fathy"
		}
		repo.items = append(repo.items, b)
	}
	uc := NewBranchUsecase(repo, quietLogger())

	page, err := uc.Load(context.Background(), screen.NewListState(10, ""))
	require.NoError(t, err)
	assert.Equal(t, 130, page.Total)
	assert.Equal(t, 13, page.TotalPages)

	require.Len(t, repo.queries, 2)
	assert.Equal(t, "1", repo.queries[0].Get("page"))
	assert.Equal(t, "2", repo.queries[1].Get("page"))

	page, err = uc.Load(context.Background(), screen.NewListState(10, "").WithSearch("yasmin"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "125", page.Items[0].ObjectID)
}
