package server

// Route path constants
// All console routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/{$}"

	// Public auth pages
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"

	// Pages behind the session guard
	RouteDashboard   = "/{userId}/dashboard"
	RouteEstimates   = "/{userId}/estimates"
	RouteEstimateAdd = "/{userId}/estimates/add"

	// API Routes
	RouteAPIValidatePassword = "/api/validate-password"
	RouteAPISession          = "/api/session"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/static/css/{file}"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

func dashboardPath(userID string) string {
	return "/" + userID + "/dashboard"
}

func estimatesPath(userID string) string {
	return "/" + userID + "/estimates"
}

func estimateAddPath(userID string) string {
	return "/" + userID + "/estimates/add"
}
