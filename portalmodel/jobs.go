package portalmodel

// Job is a cached job listing.
type Job struct {
	ID          int64  `json:"id"`
	ExternalID  string `json:"external_id"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	JobType     string `json:"job_type,omitempty"`
	URL         string `json:"url,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"` // YYYY-MM-DD
	CachedAt    string `json:"cached_at,omitempty"`
}

// SaveResult is the answer to saving or unsaving a job.
type SaveResult struct {
	Saved bool `json:"saved"`
}

// FetchJobsRequest asks the backend to import listings from its job feed.
type FetchJobsRequest struct {
	Search         string `json:"search,omitempty"`
	Location       string `json:"location,omitempty"`
	ResultsPerPage int    `json:"results_per_page,omitempty"`
	Page           int    `json:"page,omitempty"`
}

type FetchJobsResponse struct {
	SourceCount int   `json:"source_count"`
	Saved       int   `json:"saved"`
	Created     int   `json:"created"`
	Updated     int   `json:"updated"`
	Jobs        []Job `json:"jobs"`
}

// RecommendedJob is a Job with the server computed match. The score and the
// reasons are opaque to the client.
type RecommendedJob struct {
	Job
	MatchScore        int      `json:"match_score"`
	RecommendedReason []string `json:"recommended_reason"`
}
