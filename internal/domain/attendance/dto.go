package attendance

import "time"

type CheckInRequest struct {
	FaceMatchScore *float64 `json:"face_match_score" validate:"omitempty,gte=0,lte=1"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type Response struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	UserName       *string    `json:"user_name,omitempty"`
	EmployeeCode   *string    `json:"employee_code,omitempty"`
	DivisionName   *string    `json:"division_name,omitempty"`
	Date           string     `json:"date"`
	CheckIn        time.Time  `json:"check_in"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	FaceMatchScore *float64   `json:"face_match_score,omitempty"`
	WorkMinutes    *int       `json:"work_minutes,omitempty"`
}

func ToResponse(r Record) Response {
	return Response{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		EmployeeCode:   r.EmployeeCode,
		DivisionName:   r.DivisionName,
		Date:           r.Date.Format("2006-01-02"),
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		FaceMatchScore: r.FaceMatchScore,
		WorkMinutes:    r.WorkMinutes,
	}
}
