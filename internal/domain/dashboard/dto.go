package dashboard

// Scope narrows dashboard queries by role: admins see the organization,
// managers their division, employees themselves.
type Scope struct {
	UserID     *string
	DivisionID *string
}

type AttendanceSummary struct {
	TotalRecords   int64   `json:"total_records"`
	DistinctUsers  int64   `json:"distinct_users"`
	OpenRecords    int64   `json:"open_records"`
	TotalWorkHours float64 `json:"total_work_hours"`
}

type RequestSummary struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type Summary struct {
	Month           string            `json:"month"`
	Attendance      AttendanceSummary `json:"attendance"`
	Leave           RequestSummary    `json:"leave"`
	ApprovedDays    int64             `json:"approved_leave_days"`
	Overtime        RequestSummary    `json:"overtime"`
	ApprovedMinutes int64             `json:"approved_overtime_minutes"`
}
