package division

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

type fakeDivisionRepo struct {
	divisions map[string]division.Division
	employees map[string]int64
	nextID    int
}

func newFakeDivisionRepo() *fakeDivisionRepo {
	return &fakeDivisionRepo{
		divisions: map[string]division.Division{},
		employees: map[string]int64{},
	}
}

func (f *fakeDivisionRepo) Create(_ context.Context, d division.Division) (division.Division, error) {
	for _, existing := range f.divisions {
		if existing.Code == d.Code {
			return division.Division{}, division.ErrCodeExists
		}
	}
	f.nextID++
	d.ID = string(rune('a' + f.nextID - 1))
	d.IsActive = true
	f.divisions[d.ID] = d
	return d, nil
}

func (f *fakeDivisionRepo) GetByID(_ context.Context, id string) (division.Division, error) {
	d, ok := f.divisions[id]
	if !ok {
		return division.Division{}, division.ErrDivisionNotFound
	}
	return d, nil
}

func (f *fakeDivisionRepo) GetByIDForUpdate(ctx context.Context, id string) (division.Division, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeDivisionRepo) GetByCode(_ context.Context, code string) (division.Division, error) {
	for _, d := range f.divisions {
		if d.Code == code {
			return d, nil
		}
	}
	return division.Division{}, division.ErrDivisionNotFound
}

func (f *fakeDivisionRepo) Update(_ context.Context, d division.Division) error {
	if _, ok := f.divisions[d.ID]; !ok {
		return division.ErrDivisionNotFound
	}
	f.divisions[d.ID] = d
	return nil
}

func (f *fakeDivisionRepo) SoftDelete(_ context.Context, id string) error {
	d, ok := f.divisions[id]
	if !ok || !d.IsActive {
		return division.ErrDivisionNotFound
	}
	d.IsActive = false
	f.divisions[id] = d
	return nil
}

func (f *fakeDivisionRepo) List(_ context.Context, _ division.ListFilter) ([]division.Division, int64, error) {
	all, _ := f.ListAllActive(context.Background())
	return all, int64(len(all)), nil
}

func (f *fakeDivisionRepo) ListAllActive(_ context.Context) ([]division.Division, error) {
	var out []division.Division
	for _, d := range f.divisions {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDivisionRepo) ListChildren(_ context.Context, parentID string) ([]division.Division, error) {
	var out []division.Division
	for _, d := range f.divisions {
		if d.IsActive && d.ParentID != nil && *d.ParentID == parentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDivisionRepo) CountActiveChildren(ctx context.Context, id string) (int64, error) {
	children, _ := f.ListChildren(ctx, id)
	return int64(len(children)), nil
}

func (f *fakeDivisionRepo) CountActiveEmployees(_ context.Context, id string) (int64, error) {
	return f.employees[id], nil
}

type stubUserRepo struct {
	user.Repository
}

func buildService() (*fakeDivisionRepo, Service) {
	repo := newFakeDivisionRepo()
	svc := NewService(nil, repo, stubUserRepo{}).(*serviceImpl)
	svc.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return repo, svc
}

func TestCreate_RootDivisionSitsAtLevelZero(t *testing.T) {
	_, svc := buildService()

	d, err := svc.Create(context.Background(), division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Level)
	assert.Nil(t, d.ParentID)
}

func TestCreate_ChildLevelIsParentPlusOne(t *testing.T) {
	_, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)

	child, err := svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, child.Level)
}

func TestCreate_UnknownParentIsRefused(t *testing.T) {
	_, svc := buildService()

	missing := "nope"
	_, err := svc.Create(context.Background(), division.CreateRequest{Name: "X", Code: "X", ParentID: &missing})
	assert.ErrorIs(t, err, division.ErrParentNotFound)
}

func TestCreate_DeactivatedParentIsRefused(t *testing.T) {
	repo, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, root.ID))

	_, err = svc.Create(ctx, division.CreateRequest{Name: "X", Code: "X", ParentID: &root.ID})
	assert.ErrorIs(t, err, division.ErrParentDeactivated)
}

func TestCreate_MaxDepthIsEnforced(t *testing.T) {
	_, svc := buildService()
	ctx := context.Background()

	parent, err := svc.Create(ctx, division.CreateRequest{Name: "L0", Code: "L0"})
	require.NoError(t, err)

	for level := 1; level <= division.MaxDepth; level++ {
		code := "L" + string(rune('0'+level))
		parent, err = svc.Create(ctx, division.CreateRequest{Name: code, Code: code, ParentID: &parent.ID})
		require.NoError(t, err)
		assert.Equal(t, level, parent.Level)
	}

	_, err = svc.Create(ctx, division.CreateRequest{Name: "deep", Code: "DEEP", ParentID: &parent.ID})
	assert.ErrorIs(t, err, division.ErrMaxDepthExceeded)
}

func TestDelete_RefusedWithActiveChildren(t *testing.T) {
	_, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, root.ID)
	assert.ErrorIs(t, err, division.ErrHasActiveChildren)
}

func TestDelete_RefusedWithActiveEmployees(t *testing.T) {
	repo, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	repo.employees[root.ID] = 3

	err = svc.Delete(ctx, root.ID)
	assert.ErrorIs(t, err, division.ErrHasActiveEmployees)
}

func TestDelete_LeafWithoutEmployeesSucceeds(t *testing.T) {
	repo, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, root.ID))
	assert.False(t, repo.divisions[root.ID].IsActive)
}

func TestTree_AssemblesHierarchy(t *testing.T) {
	_, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	eng, err := svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, division.CreateRequest{Name: "Backend", Code: "BE", ParentID: &eng.ID})
	require.NoError(t, err)

	roots, err := svc.Tree(ctx)
	require.NoError(t, err)

	require.Len(t, roots, 1)
	assert.Equal(t, "Company", roots[0].Name)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Engineering", roots[0].Children[0].Name)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Backend", roots[0].Children[0].Children[0].Name)
}

func TestUpdate_ReparentRecomputesSubtreeLevels(t *testing.T) {
	repo, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	eng, err := svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)
	be, err := svc.Create(ctx, division.CreateRequest{Name: "Backend", Code: "BE", ParentID: &eng.ID})
	require.NoError(t, err)

	moved, err := svc.Update(ctx, be.ID, division.UpdateRequest{ParentID: &root.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, moved.Level)
	assert.Equal(t, root.ID, *moved.ParentID)
	assert.Equal(t, 1, repo.divisions[be.ID].Level)
}

func TestUpdate_ReparentUnderOwnDescendantRefused(t *testing.T) {
	_, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	eng, err := svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)
	be, err := svc.Create(ctx, division.CreateRequest{Name: "Backend", Code: "BE", ParentID: &eng.ID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, root.ID, division.UpdateRequest{ParentID: &be.ID})
	assert.ErrorIs(t, err, division.ErrCircularReference)

	_, err = svc.Update(ctx, root.ID, division.UpdateRequest{ParentID: &root.ID})
	assert.ErrorIs(t, err, division.ErrCircularReference)
}

func TestUpdate_ClearParentDetachesToRoot(t *testing.T) {
	repo, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	eng, err := svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)
	be, err := svc.Create(ctx, division.CreateRequest{Name: "Backend", Code: "BE", ParentID: &eng.ID})
	require.NoError(t, err)

	detached, err := svc.Update(ctx, eng.ID, division.UpdateRequest{ClearParent: true})
	require.NoError(t, err)

	assert.Nil(t, detached.ParentID)
	assert.Equal(t, 0, detached.Level)
	assert.Equal(t, 1, repo.divisions[be.ID].Level)
}

// seedCycle writes two divisions pointing at each other, the malformed shape
// the bounded walks must refuse instead of looping on.
func seedCycle(repo *fakeDivisionRepo) {
	a := "cyc-a"
	b := "cyc-b"
	repo.divisions[a] = division.Division{ID: a, Name: "A", Code: "A", ParentID: &b, Level: 1, IsActive: true}
	repo.divisions[b] = division.Division{ID: b, Name: "B", Code: "B", ParentID: &a, Level: 2, IsActive: true}
}

func TestAncestors_ParentCycleIsRefused(t *testing.T) {
	repo, svc := buildService()
	seedCycle(repo)

	_, err := svc.Ancestors(context.Background(), "cyc-a")
	assert.ErrorIs(t, err, division.ErrCircularReference)
}

func TestUpdate_ReparentOntoCycleIsRefused(t *testing.T) {
	repo, svc := buildService()
	ctx := context.Background()
	seedCycle(repo)

	d, err := svc.Create(ctx, division.CreateRequest{Name: "Ops", Code: "OPS"})
	require.NoError(t, err)

	cycled := "cyc-a"
	_, err = svc.Update(ctx, d.ID, division.UpdateRequest{ParentID: &cycled})
	assert.ErrorIs(t, err, division.ErrCircularReference)
}

func TestAncestors_WalksToRoot(t *testing.T) {
	_, svc := buildService()
	ctx := context.Background()

	root, err := svc.Create(ctx, division.CreateRequest{Name: "Company", Code: "COMP"})
	require.NoError(t, err)
	eng, err := svc.Create(ctx, division.CreateRequest{Name: "Engineering", Code: "ENG", ParentID: &root.ID})
	require.NoError(t, err)
	be, err := svc.Create(ctx, division.CreateRequest{Name: "Backend", Code: "BE", ParentID: &eng.ID})
	require.NoError(t, err)

	ancestors, err := svc.Ancestors(ctx, be.ID)
	require.NoError(t, err)

	require.Len(t, ancestors, 2)
	assert.Equal(t, "Engineering", ancestors[0].Name)
	assert.Equal(t, "Company", ancestors[1].Name)
}
