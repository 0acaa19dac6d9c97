package division

import "time"

type CreateRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Code        string  `json:"code" validate:"required,max=20"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
}

type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`

	// ClearParent detaches the division to the root level. A JSON null in
	// parent_id is indistinguishable from an absent field, so detaching
	// needs its own flag; when set it takes precedence over parent_id.
	ClearParent bool `json:"clear_parent"`
}

type Response struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Description   *string   `json:"description,omitempty"`
	ParentID      *string   `json:"parent_id,omitempty"`
	ParentName    *string   `json:"parent_name,omitempty"`
	Level         int       `json:"level"`
	EmployeeCount *int64    `json:"employee_count,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type TreeResponse struct {
	Response
	Children []TreeResponse `json:"children"`
}

func ToResponse(d Division) Response {
	return Response{
		ID:            d.ID,
		Name:          d.Name,
		Code:          d.Code,
		Description:   d.Description,
		ParentID:      d.ParentID,
		ParentName:    d.ParentName,
		Level:         d.Level,
		EmployeeCount: d.EmployeeCount,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
	}
}
