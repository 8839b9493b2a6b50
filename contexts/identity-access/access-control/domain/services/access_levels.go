package services

import (
	"net/http"
	"strings"
)

// RequiresAdmin maps HTTP methods to access levels: read methods only
// need an authenticated principal, anything mutating needs admin.
func RequiresAdmin(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// EmailIsAdmin reports membership in the operator e-mail list.
// E-mail comparison is case-insensitive.
func EmailIsAdmin(email string, admins []string) bool {
	if email == "" {
		return false
	}
	for _, admin := range admins {
		if strings.EqualFold(email, admin) {
			return true
		}
	}
	return false
}

// AnyGroupAdmin reports whether any of the principal's groups appears
// in the admin entitlement list. Entitlements match exactly.
func AnyGroupAdmin(groups, admins []string) bool {
	for _, group := range groups {
		for _, admin := range admins {
			if group == admin {
				return true
			}
		}
	}
	return false
}
