package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/database"
	"github.com/kantorkita/hrms-backend-go/internal/repository/postgresql"
)

type Service interface {
	CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.Record, error)
	CheckOut(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.Record, error)
	ListMine(ctx context.Context, userID string, filter attendance.ListFilter) ([]attendance.Record, int64, error)
	List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error)
}

type serviceImpl struct {
	db    *database.DB
	repo  attendance.Repository
	now   func() time.Time
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(db *database.DB, repo attendance.Repository) Service {
	s := &serviceImpl{db: db, repo: repo, now: time.Now}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

func localDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckIn opens today's attendance record. One record per user per day: the
// pre-check gives the common duplicate a clean error, and the unique index
// on (user_id, date) catches racing inserts the pre-check cannot see.
func (s *serviceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.Record, error) {
	now := s.now()
	today := localDate(now)

	var rec attendance.Record
	err := s.runTx(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.HasCheckedIn(txCtx, userID, today)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrAlreadyCheckedIn
		}

		rec, err = s.repo.Create(txCtx, attendance.Record{
			UserID:           userID,
			Date:             today,
			CheckIn:          now,
			FaceMatchScore:   req.FaceMatchScore,
			CheckInLatitude:  req.Latitude,
			CheckInLongitude: req.Longitude,
		})
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// CheckOut closes today's open record and computes worked minutes.
func (s *serviceImpl) CheckOut(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.Record, error) {
	now := s.now()
	today := localDate(now)

	var rec attendance.Record
	err := s.runTx(ctx, func(txCtx context.Context) error {
		open, err := s.repo.GetOpenRecord(txCtx, userID, today)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordNotFound) {
				checkedIn, existsErr := s.repo.HasCheckedIn(txCtx, userID, today)
				if existsErr != nil {
					return existsErr
				}
				if checkedIn {
					return attendance.ErrAlreadyCheckedOut
				}
				return attendance.ErrNotCheckedIn
			}
			return err
		}

		workMinutes := int(now.Sub(open.CheckIn).Minutes())
		open.CheckOut = &now
		open.CheckOutLatitude = req.Latitude
		open.CheckOutLongitude = req.Longitude
		open.WorkMinutes = &workMinutes

		if err := s.repo.Update(txCtx, open); err != nil {
			return err
		}
		rec = open
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, userID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *serviceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	return s.repo.List(ctx, filter)
}
