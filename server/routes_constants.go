package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth API Routes
	RouteAPILogin          = "/api/login"
	RouteAPILogout         = "/api/logout"
	RouteAPIUser           = "/api/user"
	RouteAPIChangePassword = "/api/change-password"

	// Directory API Routes
	RouteAPIContacts    = "/api/contacts"
	RouteAPIContact     = "/api/contacts/{id}"
	RouteAPIDepartments = "/api/departments"

	// Page Routes
	RouteIndex    = "/{$}"
	RouteContacts = "/contacts"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
