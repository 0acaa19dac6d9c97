package approval

import "time"

type StepResponse struct {
	StepOrder    int        `json:"step_order"`
	ApproverID   string     `json:"approver_id"`
	ApproverName *string    `json:"approver_name,omitempty"`
	ApproverRole string     `json:"approver_role"`
	Decision     Decision   `json:"decision"`
	Note         *string    `json:"note,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

func ToStepResponses(steps []Step) []StepResponse {
	out := make([]StepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, StepResponse{
			StepOrder:    s.StepOrder,
			ApproverID:   s.ApproverID,
			ApproverName: s.ApproverName,
			ApproverRole: string(s.ApproverRole),
			Decision:     s.Decision,
			Note:         s.Note,
			DecidedAt:    s.DecidedAt,
		})
	}
	return out
}
