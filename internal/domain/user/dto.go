package user

import "time"

type RegisterRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,max=20"`
	FullName     string  `json:"full_name" validate:"required,max=150"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Password     string  `json:"password" validate:"required,min=8"`
	Role         string  `json:"role" validate:"required,oneof=admin manager employee"`
	DivisionID   *string `json:"division_id" validate:"omitempty,uuid"`
	HireDate     *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=150"`
	Phone    *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type Response struct {
	ID           string     `json:"id"`
	EmployeeCode string     `json:"employee_code"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	Role         Role       `json:"role"`
	DivisionID   *string    `json:"division_id,omitempty"`
	DivisionName *string    `json:"division_name,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToResponse(u User) Response {
	return Response{
		ID:           u.ID,
		EmployeeCode: u.EmployeeCode,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		DivisionID:   u.DivisionID,
		DivisionName: u.DivisionName,
		HireDate:     u.HireDate,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}
