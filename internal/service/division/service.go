package division

import (
	"context"

	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
	"github.com/kantorkita/hrms-backend-go/internal/repository/postgresql"
)

type Service interface {
	Create(ctx context.Context, req division.CreateRequest) (division.Division, error)
	GetByID(ctx context.Context, id string) (division.Division, error)
	Update(ctx context.Context, id string, req division.UpdateRequest) (division.Division, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter division.ListFilter) ([]division.Division, int64, error)

	Tree(ctx context.Context) ([]*division.Node, error)
	Children(ctx context.Context, id string) ([]division.Division, error)
	Ancestors(ctx context.Context, id string) ([]division.Division, error)
	Employees(ctx context.Context, id string, filter user.ListFilter) ([]user.User, int64, error)
}

type serviceImpl struct {
	db           *database.DB
	divisionRepo division.Repository
	userRepo     user.Repository
	runTx        func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(db *database.DB, divisionRepo division.Repository, userRepo user.Repository) Service {
	s := &serviceImpl{db: db, divisionRepo: divisionRepo, userRepo: userRepo}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// resolveParent loads and validates the target parent, returning the level
// the child will sit at.
func (s *serviceImpl) resolveParent(ctx context.Context, parentID *string) (int, error) {
	if parentID == nil {
		return 0, nil
	}
	parent, err := s.divisionRepo.GetByID(ctx, *parentID)
	if err != nil {
		if err == division.ErrDivisionNotFound {
			return 0, division.ErrParentNotFound
		}
		return 0, err
	}
	if !parent.IsActive {
		return 0, division.ErrParentDeactivated
	}
	if parent.Level+1 > division.MaxDepth {
		return 0, division.ErrMaxDepthExceeded
	}
	return parent.Level + 1, nil
}

func (s *serviceImpl) Create(ctx context.Context, req division.CreateRequest) (division.Division, error) {
	level, err := s.resolveParent(ctx, req.ParentID)
	if err != nil {
		return division.Division{}, err
	}

	d := division.Division{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ParentID:    req.ParentID,
		Level:       level,
	}
	return s.divisionRepo.Create(ctx, d)
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (division.Division, error) {
	return s.divisionRepo.GetByID(ctx, id)
}

// Update edits a division and, when a new parent is given, moves its whole
// subtree. Reparent validation reads the same rows the move writes, so the
// moved division and the target parent are locked and everything runs inside
// one transaction; two concurrent moves cannot both validate against stale
// parent pointers and commit a cycle.
func (s *serviceImpl) Update(ctx context.Context, id string, req division.UpdateRequest) (division.Division, error) {
	err := s.runTx(ctx, func(txCtx context.Context) error {
		d, err := s.divisionRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			d.Name = *req.Name
		}
		if req.Description != nil {
			d.Description = req.Description
		}

		reparented := false
		switch {
		case req.ClearParent:
			reparented = d.ParentID != nil
			d.ParentID = nil
			d.Level = 0
		case req.ParentID != nil && (d.ParentID == nil || *req.ParentID != *d.ParentID):
			if *req.ParentID == id {
				return division.ErrCircularReference
			}
			parent, err := s.divisionRepo.GetByIDForUpdate(txCtx, *req.ParentID)
			if err != nil {
				if err == division.ErrDivisionNotFound {
					return division.ErrParentNotFound
				}
				return err
			}
			if !parent.IsActive {
				return division.ErrParentDeactivated
			}
			if parent.Level+1 > division.MaxDepth {
				return division.ErrMaxDepthExceeded
			}
			isDescendant, err := s.isDescendantOf(txCtx, *req.ParentID, id)
			if err != nil {
				return err
			}
			if isDescendant {
				return division.ErrCircularReference
			}
			d.ParentID = req.ParentID
			d.Level = parent.Level + 1
			reparented = true
		}

		if err := s.divisionRepo.Update(txCtx, d); err != nil {
			return err
		}
		if reparented {
			return s.recomputeSubtreeLevels(txCtx, d.ID, d.Level)
		}
		return nil
	})
	if err != nil {
		return division.Division{}, err
	}

	return s.divisionRepo.GetByID(ctx, id)
}

// isDescendantOf reports whether candidate sits in the subtree rooted at
// ancestorID, walking parent pointers upward from candidate. The walk is
// bounded by MaxDepth; malformed parent links that form a cycle surface as
// ErrCircularReference instead of looping forever.
func (s *serviceImpl) isDescendantOf(ctx context.Context, candidateID, ancestorID string) (bool, error) {
	currentID := &candidateID
	for hops := 0; currentID != nil; hops++ {
		if hops > division.MaxDepth {
			return false, division.ErrCircularReference
		}
		if *currentID == ancestorID {
			return true, nil
		}
		d, err := s.divisionRepo.GetByID(ctx, *currentID)
		if err != nil {
			return false, err
		}
		currentID = d.ParentID
	}
	return false, nil
}

func (s *serviceImpl) recomputeSubtreeLevels(ctx context.Context, parentID string, parentLevel int) error {
	if parentLevel+1 > division.MaxDepth {
		return division.ErrMaxDepthExceeded
	}
	children, err := s.divisionRepo.ListChildren(ctx, parentID)
	if err != nil {
		return err
	}
	for _, child := range children {
		child.Level = parentLevel + 1
		if err := s.divisionRepo.Update(ctx, child); err != nil {
			return err
		}
		if err := s.recomputeSubtreeLevels(ctx, child.ID, child.Level); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes a division. Divisions with active children or active
// employees are refused; historical records keep pointing at the row.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.divisionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	children, err := s.divisionRepo.CountActiveChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return division.ErrHasActiveChildren
	}

	employees, err := s.divisionRepo.CountActiveEmployees(ctx, id)
	if err != nil {
		return err
	}
	if employees > 0 {
		return division.ErrHasActiveEmployees
	}

	return s.divisionRepo.SoftDelete(ctx, id)
}

func (s *serviceImpl) List(ctx context.Context, filter division.ListFilter) ([]division.Division, int64, error) {
	return s.divisionRepo.List(ctx, filter)
}

// Tree assembles the active hierarchy in memory from one query.
func (s *serviceImpl) Tree(ctx context.Context) ([]*division.Node, error) {
	divisions, err := s.divisionRepo.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*division.Node, len(divisions))
	for _, d := range divisions {
		nodes[d.ID] = &division.Node{Division: d}
	}

	var roots []*division.Node
	for _, d := range divisions {
		node := nodes[d.ID]
		if d.ParentID != nil {
			if parent, ok := nodes[*d.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func (s *serviceImpl) Children(ctx context.Context, id string) ([]division.Division, error) {
	if _, err := s.divisionRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.divisionRepo.ListChildren(ctx, id)
}

// Ancestors returns the path from the division's parent up to the root. The
// walk is bounded by MaxDepth the same way isDescendantOf is.
func (s *serviceImpl) Ancestors(ctx context.Context, id string) ([]division.Division, error) {
	d, err := s.divisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var ancestors []division.Division
	parentID := d.ParentID
	for hops := 0; parentID != nil; hops++ {
		if hops > division.MaxDepth {
			return nil, division.ErrCircularReference
		}
		parent, err := s.divisionRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		ancestors = append(ancestors, parent)
		parentID = parent.ParentID
	}
	return ancestors, nil
}

func (s *serviceImpl) Employees(ctx context.Context, id string, filter user.ListFilter) ([]user.User, int64, error) {
	if _, err := s.divisionRepo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	filter.DivisionID = &id
	return s.userRepo.List(ctx, filter)
}
