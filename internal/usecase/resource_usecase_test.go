package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/converter"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

func TestResourceUsecase_LoadSendsListQuery(t *testing.T) {
	repo := &memoryCollection[entity.Representative]{items: []entity.Representative{{Name: "Alex"}}}
	uc := NewResourceUsecase[entity.Representative]("representatives", repo, RepresentativeCodec, quietLogger())

	state := screen.NewListState(10, "createdAt").WithSearch("al").ToggleSort("name")
	page, err := uc.Load(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Len())

	require.Len(t, repo.queries, 1)
	q := repo.queries[0]
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "al", q.Get("search"))
	assert.Equal(t, "name", q.Get("sortBy"))
	assert.Equal(t, "desc", q.Get("sortOrder"))
}

func TestResourceUsecase_CreateEncodesValues(t *testing.T) {
	repo := &memoryCollection[entity.Representative]{}
	uc := NewResourceUsecase[entity.Representative]("representatives", repo, RepresentativeCodec, quietLogger())

	_, err := uc.Create(context.Background(), form.Values{
		"id": "R-1", "name": "Alex", "age": "30", "phoneNumber": "+15551234567", "isActive": "true",
	})
	require.NoError(t, err)

	require.Len(t, repo.bodies, 1)
	body, ok := repo.bodies[0].(*dto.RepresentativeRequest)
	require.True(t, ok)
	assert.Equal(t, "R-1", body.ID)
	assert.Equal(t, 30, body.Age)
}

func TestResourceUsecase_ConversionErrorSkipsBackend(t *testing.T) {
	repo := &memoryCollection[entity.Representative]{}
	uc := NewResourceUsecase[entity.Representative]("representatives", repo, RepresentativeCodec, quietLogger())

	_, err := uc.Update(context.Background(), "x", form.Values{"name": "Alex", "age": "thirty"})
	var fe *converter.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "age", fe.Field)
	assert.Empty(t, repo.bodies)
}

func TestResourceUsecase_ReadOnlyRepository(t *testing.T) {
	inner := &memoryCollection[entity.Patient]{items: []entity.Patient{{ObjectID: "p1"}}}
	uc := NewResourceUsecase[entity.Patient]("patients", readOnlyCollection[entity.Patient]{inner}, Codec[entity.Patient]{}, quietLogger())

	assert.False(t, uc.Writable())
	_, err := uc.Create(context.Background(), form.Values{})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, uc.Delete(context.Background(), "p1"), ErrUnsupported)
	assert.ErrorIs(t, uc.Delete(context.Background(), ""), ErrMissingID)
}

func TestResourceUsecase_Seed(t *testing.T) {
	repo := &memoryCollection[entity.Branch]{items: []entity.Branch{{ObjectID: "b1", Name: "Main", Phone: "+201234567890"}}}
	uc := NewResourceUsecase[entity.Branch]("branches", repo, BranchCodec, quietLogger())

	values, err := uc.Seed(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", values.Get("phone"))
}
