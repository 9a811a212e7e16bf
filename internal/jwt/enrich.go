package jwt

import (
	"blog-service/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// EnrichIdentity adds the user's firstName and lastName to claims. It returns
// a new map; claims already present are kept as they are.
func EnrichIdentity(claims jwt.MapClaims, user *model.User) jwt.MapClaims {
	out := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		out[k] = v
	}

	if _, ok := out["firstName"]; !ok {
		out["firstName"] = user.FirstName
	}
	if _, ok := out["lastName"]; !ok {
		out["lastName"] = user.LastName
	}

	return out
}
