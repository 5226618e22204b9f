package stubserver

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler(route("POST", RouteRegister), ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler(route("POST", RouteLogin), ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler(route("POST", RouteTokenRefresh), ChainMiddleware(s.TokenRefreshHandler(), s.APIMiddleware()...))

	// Public lookups
	s.RegisterRouteHandler(route("GET", RouteSkills), ChainMiddleware(s.SkillsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler(route("GET", RouteCourses), ChainMiddleware(s.CoursesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler(route("GET", RouteJobs), ChainMiddleware(s.JobListHandler(), s.APIMiddleware()...))

	// Student routes (require a valid access token)
	s.RegisterRouteHandler(route("GET", RouteProfile), ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("PATCH", RouteProfile), ChainMiddleware(s.ProfileUpdateHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("GET", RouteCV), ChainMiddleware(s.CVHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("PUT", RouteCV), ChainMiddleware(s.CVUpdateHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("POST", RouteCVSummary), ChainMiddleware(s.CVSummaryHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler(route("GET", RouteSavedJobs), ChainMiddleware(s.SavedJobsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("POST", RouteJob), ChainMiddleware(s.SaveJobHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("DELETE", RouteJob), ChainMiddleware(s.UnsaveJobHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler(route("GET", RouteApplications), ChainMiddleware(s.ApplicationListHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("POST", RouteApplications), ChainMiddleware(s.ApplicationCreateHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("PATCH", RouteApplication), ChainMiddleware(s.ApplicationUpdateHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler(route("DELETE", RouteApplication), ChainMiddleware(s.ApplicationDeleteHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler(route("GET", RouteRecommendedJobs), ChainMiddleware(s.RecommendationsHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Admin routes
	s.RegisterRouteHandler(route("POST", RouteFetchJobs), ChainMiddleware(s.FetchJobsHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	s.RegisterRouteFunc("/", s.NotFoundHandler())
}

// route builds an exact-match pattern. Every API path ends in a slash, which
// ServeMux would otherwise treat as a subtree.
func route(method, path string) string {
	return method + " " + path + "{$}"
}
