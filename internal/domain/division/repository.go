package division

import "context"

type Repository interface {
	Create(ctx context.Context, d Division) (Division, error)
	GetByID(ctx context.Context, id string) (Division, error)

	// GetByIDForUpdate locks the row (SELECT ... FOR UPDATE) and must run
	// inside a transaction carried on ctx.
	GetByIDForUpdate(ctx context.Context, id string) (Division, error)

	GetByCode(ctx context.Context, code string) (Division, error)
	Update(ctx context.Context, d Division) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Division, int64, error)
	ListAllActive(ctx context.Context) ([]Division, error)
	ListChildren(ctx context.Context, parentID string) ([]Division, error)

	CountActiveChildren(ctx context.Context, id string) (int64, error)
	CountActiveEmployees(ctx context.Context, id string) (int64, error)
}

type ListFilter struct {
	Level    *int
	ParentID *string
	TopOnly  bool
	Search   *string
	Page     int
	Limit    int
}
