package portalmodel

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

const (
	JobTypeInternship = "internship"
	JobTypePartTime   = "part_time"
	JobTypeGraduate   = "graduate"
	JobTypeFullTime   = "full_time"
)

// Profile is the student profile returned by /api/users/me/.
type Profile struct {
	Skills            []Skill `json:"skills"`
	PreferredJobType  string  `json:"preferred_job_type"`
	PreferredLocation string  `json:"preferred_location"`
	Course            string  `json:"course"`
}

// ProfileUpdate is a partial profile update. SkillIDs replaces the skill set
// when present.
type ProfileUpdate struct {
	SkillIDs          []int64 `json:"skills_ids,omitempty"`
	PreferredJobType  *string `json:"preferred_job_type,omitempty"`
	PreferredLocation *string `json:"preferred_location,omitempty"`
	Course            *string `json:"course,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Subject     string `json:"subject,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// CV is the student's structured CV.
type CV struct {
	Name       string       `json:"name"`
	Summary    string       `json:"cv_summary"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
}

type CVSummary struct {
	Summary string `json:"summary"`
}
