package services

import "strings"

// NormalizeIssuer canonicalizes an issuer URL so that lookups and the
// (sub, issuer) uniqueness constraint are insensitive to a trailing
// slash.
func NormalizeIssuer(issuer string) string {
	return strings.TrimSuffix(strings.TrimSpace(issuer), "/")
}

// ValidEmail applies the minimal structural check the registry needs:
// one @ with a non-empty local part and a dotted domain.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	if domain == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// ValidIssuer accepts absolute http(s) URLs only.
func ValidIssuer(issuer string) bool {
	issuer = strings.TrimSpace(issuer)
	return strings.HasPrefix(issuer, "http://") || strings.HasPrefix(issuer, "https://")
}
