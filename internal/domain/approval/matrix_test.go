package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

// fakeDirectory is an in-memory org chart for resolver tests.
type fakeDirectory struct {
	divisions map[string]division.Division
	managers  map[string]user.User // division id -> manager
	admin     *user.User
}

func (d *fakeDirectory) DivisionByID(_ context.Context, id string) (division.Division, error) {
	div, ok := d.divisions[id]
	if !ok {
		return division.Division{}, division.ErrDivisionNotFound
	}
	return div, nil
}

func (d *fakeDirectory) DivisionManager(_ context.Context, divisionID string) (user.User, error) {
	mgr, ok := d.managers[divisionID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return mgr, nil
}

func (d *fakeDirectory) ActiveAdmin(_ context.Context) (user.User, error) {
	if d.admin == nil {
		return user.User{}, user.ErrUserNotFound
	}
	return *d.admin, nil
}

func strPtr(s string) *string { return &s }

// company -> hr -> engineering, each with a manager.
func orgChart() *fakeDirectory {
	return &fakeDirectory{
		divisions: map[string]division.Division{
			"company":     {ID: "company", Level: 0},
			"hr":          {ID: "hr", ParentID: strPtr("company"), Level: 1},
			"engineering": {ID: "engineering", ParentID: strPtr("hr"), Level: 2},
		},
		managers: map[string]user.User{
			"engineering": {ID: "mgr-eng", Role: user.RoleManager, DivisionID: strPtr("engineering")},
			"hr":          {ID: "mgr-hr", Role: user.RoleManager, DivisionID: strPtr("hr")},
			"company":     {ID: "mgr-company", Role: user.RoleManager, DivisionID: strPtr("company")},
		},
	}
}

func TestResolveChain_WalksDivisionsUpward(t *testing.T) {
	dir := orgChart()
	m := Matrix{MaxDepth: 3, MinApprovers: 1, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)

	require.Len(t, chain, 3)
	assert.Equal(t, "mgr-eng", chain[0].UserID)
	assert.Equal(t, "mgr-hr", chain[1].UserID)
	assert.Equal(t, "mgr-company", chain[2].UserID)
}

func TestResolveChain_MaxDepthBoundsTheWalk(t *testing.T) {
	dir := orgChart()
	m := Matrix{MaxDepth: 2, MinApprovers: 1, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)

	require.Len(t, chain, 2)
	assert.Equal(t, "mgr-eng", chain[0].UserID)
	assert.Equal(t, "mgr-hr", chain[1].UserID)
}

func TestResolveChain_RequesterNeverApprovesOwnRequest(t *testing.T) {
	dir := orgChart()
	m := Matrix{MaxDepth: 3, MinApprovers: 1, EmptyChainPolicy: EmptyChainReject}

	// The engineering manager submits; their own slot is skipped.
	requester := dir.managers["engineering"]

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)

	require.Len(t, chain, 2)
	assert.Equal(t, "mgr-hr", chain[0].UserID)
	assert.Equal(t, "mgr-company", chain[1].UserID)
}

func TestResolveChain_DuplicateManagersCollapse(t *testing.T) {
	dir := orgChart()
	// One person manages both engineering and hr.
	dir.managers["hr"] = dir.managers["engineering"]

	m := Matrix{MaxDepth: 3, MinApprovers: 1, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)

	require.Len(t, chain, 2)
	assert.Equal(t, "mgr-eng", chain[0].UserID)
	assert.Equal(t, "mgr-company", chain[1].UserID)
}

func TestResolveChain_ManagerlessLevelsAreWalkedThrough(t *testing.T) {
	dir := orgChart()
	delete(dir.managers, "hr")

	m := Matrix{MaxDepth: 3, MinApprovers: 1, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)

	require.Len(t, chain, 2)
	assert.Equal(t, "mgr-eng", chain[0].UserID)
	assert.Equal(t, "mgr-company", chain[1].UserID)
}

func TestResolveChain_RequireHRFinalAppendsAdmin(t *testing.T) {
	dir := orgChart()
	dir.admin = &user.User{ID: "admin-1", Role: user.RoleAdmin}

	m := Matrix{MaxDepth: 1, MinApprovers: 1, RequireHRFinal: true, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)

	require.Len(t, chain, 2)
	assert.Equal(t, "mgr-eng", chain[0].UserID)
	assert.Equal(t, "admin-1", chain[1].UserID)
}

func TestResolveChain_RequireHRFinalWithoutAdminFails(t *testing.T) {
	dir := orgChart()

	m := Matrix{MaxDepth: 1, MinApprovers: 1, RequireHRFinal: true, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	_, err := m.ResolveChain(context.Background(), dir, requester)
	assert.ErrorIs(t, err, ErrChainUnresolved)
}

func TestResolveChain_NoDivisionRejectPolicy(t *testing.T) {
	dir := orgChart()
	m := Matrix{MaxDepth: 3, MinApprovers: 1, EmptyChainPolicy: EmptyChainReject}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee}

	_, err := m.ResolveChain(context.Background(), dir, requester)
	assert.ErrorIs(t, err, ErrChainUnresolved)
}

func TestResolveChain_NoDivisionAutoApprovePolicy(t *testing.T) {
	dir := orgChart()
	m := Matrix{MaxDepth: 3, MinApprovers: 1, EmptyChainPolicy: EmptyChainAutoApprove}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee}

	chain, err := m.ResolveChain(context.Background(), dir, requester)
	require.NoError(t, err)
	assert.Nil(t, chain)
}

func TestResolveChain_MinApproversAppliesToNonEmptyChains(t *testing.T) {
	dir := orgChart()
	m := Matrix{MaxDepth: 1, MinApprovers: 2, EmptyChainPolicy: EmptyChainAutoApprove}
	requester := user.User{ID: "emp-1", Role: user.RoleEmployee, DivisionID: strPtr("engineering")}

	// One approver resolves but two are required.
	_, err := m.ResolveChain(context.Background(), dir, requester)
	assert.ErrorIs(t, err, ErrChainUnresolved)
}
