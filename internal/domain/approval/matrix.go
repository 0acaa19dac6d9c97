package approval

import (
	"context"
	"errors"

	"github.com/kantorkita/hrms-backend-go/internal/domain/division"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

type EmptyChainPolicy string

const (
	// EmptyChainAutoApprove creates the request terminal approved when no
	// approver could be resolved.
	EmptyChainAutoApprove EmptyChainPolicy = "auto_approve"
	// EmptyChainReject fails submission with ErrChainUnresolved instead.
	EmptyChainReject EmptyChainPolicy = "reject"
)

// Matrix is the configured approval policy: how many division levels to
// walk, how many approvers a chain must contain, whether an HR admin closes
// every chain, and what to do when the chain comes up empty.
type Matrix struct {
	MaxDepth         int
	MinApprovers     int
	RequireHRFinal   bool
	EmptyChainPolicy EmptyChainPolicy
}

// Directory is the lookup surface the resolver needs. Implemented by the
// approval service on top of the user and division repositories.
type Directory interface {
	DivisionByID(ctx context.Context, id string) (division.Division, error)
	DivisionManager(ctx context.Context, divisionID string) (user.User, error)
	ActiveAdmin(ctx context.Context) (user.User, error)
}

// ResolveChain computes the ordered approver list for a requester by walking
// the requester's division upward, taking each division's manager, bounded
// by MaxDepth. The requester never approves their own request; duplicate
// approvers collapse to their first position. Divisions without an active
// manager are walked through.
//
// An empty result is legal only under EmptyChainAutoApprove; otherwise, or
// when fewer than MinApprovers resolve, ErrChainUnresolved is returned.
func (m Matrix) ResolveChain(ctx context.Context, dir Directory, requester user.User) ([]Approver, error) {
	var chain []Approver
	seen := map[string]bool{requester.ID: true}

	divisionID := requester.DivisionID
	for depth := 0; divisionID != nil && depth < m.MaxDepth; depth++ {
		mgr, err := dir.DivisionManager(ctx, *divisionID)
		switch {
		case err == nil:
			if !seen[mgr.ID] {
				chain = append(chain, Approver{UserID: mgr.ID, Role: mgr.Role, DivisionID: mgr.DivisionID})
				seen[mgr.ID] = true
			}
		case errors.Is(err, user.ErrUserNotFound):
			// No manager at this level; keep walking up.
		default:
			return nil, err
		}

		div, err := dir.DivisionByID(ctx, *divisionID)
		if err != nil {
			if errors.Is(err, division.ErrDivisionNotFound) {
				break
			}
			return nil, err
		}
		divisionID = div.ParentID
	}

	if m.RequireHRFinal {
		admin, err := dir.ActiveAdmin(ctx)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				// The final HR step is required but nobody can fill it.
				return nil, ErrChainUnresolved
			}
			return nil, err
		}
		if !seen[admin.ID] {
			chain = append(chain, Approver{UserID: admin.ID, Role: admin.Role, DivisionID: admin.DivisionID})
		}
	}

	if len(chain) == 0 {
		if m.EmptyChainPolicy == EmptyChainAutoApprove {
			return nil, nil
		}
		return nil, ErrChainUnresolved
	}
	if len(chain) < m.MinApprovers {
		return nil, ErrChainUnresolved
	}
	return chain, nil
}
