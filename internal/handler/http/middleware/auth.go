package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/auth"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
)

type identityKey struct{}

// Identity is the authenticated caller extracted from the access token.
type Identity struct {
	UserID     string
	Role       user.Role
	DivisionID *string
}

// IdentityFromContext returns the caller placed on the context by
// AuthRequired. The boolean is false on routes outside the auth group.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			identity := Identity{UserID: userID, Role: user.Role(roleStr)}
			if divisionID, ok := claims["division_id"].(string); ok && divisionID != "" {
				identity.DivisionID = &divisionID
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
