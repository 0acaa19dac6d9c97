package division

import "time"

// MaxDepth is the deepest allowed hierarchy level (root is level 0).
const MaxDepth = 5

// Division is a node in the organizational tree. Level is a cached depth:
// 0 for a root division, parent.level+1 otherwise.
type Division struct {
	ID          string
	Name        string
	Code        string
	Description *string
	ParentID    *string
	Level       int
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for responses
	ParentName    *string
	EmployeeCount *int64
}

// Node is a division with its resolved children, used by the tree endpoint.
type Node struct {
	Division
	Children []*Node
}
