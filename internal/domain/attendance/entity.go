package attendance

import "time"

type Record struct {
	ID     string
	UserID string
	Date   time.Time

	CheckIn  time.Time
	CheckOut *time.Time

	// FaceMatchScore is the confidence reported by the client's face
	// verification, when available. Inference itself happens elsewhere.
	FaceMatchScore *float64

	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	WorkMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for responses
	UserName     *string
	EmployeeCode *string
	DivisionName *string
}

// Open reports whether the record is checked in but not yet checked out.
func (r Record) Open() bool {
	return r.CheckOut == nil
}
