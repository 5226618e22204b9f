package portalmodel

type ApplicationStatus string

const (
	StatusSaved        ApplicationStatus = "saved"
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffered      ApplicationStatus = "offered"
	StatusRejected     ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the statuses in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	StatusSaved,
	StatusApplied,
	StatusInterviewing,
	StatusOffered,
	StatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application tracks a student's progress with one job.
type Application struct {
	ID        int64             `json:"id"`
	Job       Job               `json:"job"`
	Status    ApplicationStatus `json:"status"`
	Notes     string            `json:"notes"`
	AppliedAt string            `json:"applied_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

type CreateApplicationRequest struct {
	JobID  int64             `json:"job_id"`
	Status ApplicationStatus `json:"status,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}

// UpdateApplicationRequest is a partial update; nil fields are left alone.
type UpdateApplicationRequest struct {
	Status *ApplicationStatus `json:"status,omitempty"`
	Notes  *string            `json:"notes,omitempty"`
}
