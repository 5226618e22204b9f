package stubserver

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteRegister     = "/api/users/register/"
	RouteLogin        = "/api/users/login/"
	RouteTokenRefresh = "/api/users/token/refresh/"

	// Student Routes
	RouteProfile   = "/api/users/me/"
	RouteSkills    = "/api/users/skills/"
	RouteCourses   = "/api/users/courses/"
	RouteCV        = "/api/users/me/cv/"
	RouteCVSummary = "/api/users/me/cv/ai-summary/"

	// Job Routes
	RouteJobs            = "/api/jobs/"
	RouteFetchJobs       = "/api/jobs/fetch/"
	RouteSavedJobs       = "/api/jobs/saved/"
	RouteJob             = "/api/jobs/{job_id}/"
	RouteApplications    = "/api/jobs/applications/"
	RouteApplication     = "/api/jobs/applications/{id}/"
	RouteRecommendedJobs = "/api/recommendations/"
)
