package dashboard

import (
	"context"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/dashboard"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

type Service interface {
	// Summary aggregates the month's activity, scoped by the viewer's role:
	// admins see the organization, managers their division, employees
	// themselves.
	Summary(ctx context.Context, viewer user.User, month time.Time) (dashboard.Summary, error)
}

type serviceImpl struct {
	repo dashboard.Repository
}

func NewService(repo dashboard.Repository) Service {
	return &serviceImpl{repo: repo}
}

func scopeFor(viewer user.User) dashboard.Scope {
	switch viewer.Role {
	case user.RoleAdmin:
		return dashboard.Scope{}
	case user.RoleManager:
		if viewer.DivisionID != nil {
			return dashboard.Scope{DivisionID: viewer.DivisionID}
		}
		return dashboard.Scope{UserID: &viewer.ID}
	default:
		return dashboard.Scope{UserID: &viewer.ID}
	}
}

func (s *serviceImpl) Summary(ctx context.Context, viewer user.User, month time.Time) (dashboard.Summary, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	scope := scopeFor(viewer)

	att, err := s.repo.AttendanceSummary(ctx, from, to, scope)
	if err != nil {
		return dashboard.Summary{}, err
	}
	lv, approvedDays, err := s.repo.LeaveSummary(ctx, from, to, scope)
	if err != nil {
		return dashboard.Summary{}, err
	}
	ot, approvedMinutes, err := s.repo.OvertimeSummary(ctx, from, to, scope)
	if err != nil {
		return dashboard.Summary{}, err
	}

	return dashboard.Summary{
		Month:           from.Format("2006-01"),
		Attendance:      att,
		Leave:           lv,
		ApprovedDays:    approvedDays,
		Overtime:        ot,
		ApprovedMinutes: approvedMinutes,
	}, nil
}
