package server

import "net/http"

// ANSI colours for the development route listing
const (
	Green   = "\033[32m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Yellow  = "\033[33m"
	Gray    = "\033[90m"

	ResetColor = "\033[0m"
)

var methodColors = map[string]string{
	http.MethodGet:     Green,
	http.MethodPost:    Blue,
	http.MethodPut:     Cyan,
	http.MethodDelete:  Yellow,
	http.MethodOptions: Magenta,
}

// methodColor picks the listing colour for an HTTP method, gray for anything unlisted
func methodColor(method string) string {
	if color, ok := methodColors[method]; ok {
		return color
	}
	return Gray
}
