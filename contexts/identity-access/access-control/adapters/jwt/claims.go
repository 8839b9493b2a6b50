package jwtadapter

import (
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
)

// principalFromToken maps verified token claims onto a Principal.
// Group claims may arrive as a JSON array or a single string.
func principalFromToken(tok jwt.Token, groupsClaim string) entities.Principal {
	principal := entities.Principal{
		Subject: tok.Subject(),
		Issuer:  tok.Issuer(),
	}

	if value, ok := tok.Get("name"); ok {
		if s, ok := value.(string); ok {
			principal.Name = s
		}
	}
	if value, ok := tok.Get("email"); ok {
		if s, ok := value.(string); ok {
			principal.Email = s
		}
	}
	if value, ok := tok.Get(groupsClaim); ok {
		principal.Groups = claimStrings(value)
	}
	return principal
}

func claimStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
