package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"restropos-services/internal/auth"
)

type contextKey string

const authContextKey contextKey = "authContext"

// AuthContext is the verified manager identity attached to admin requests.
type AuthContext struct {
	ManagerID int64
	Role      auth.Role
	Email     string
	StoreID   *int64
}

func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	value := ctx.Value(authContextKey)
	if value == nil {
		return nil, false
	}
	ac, ok := value.(*AuthContext)
	return ac, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}

// AdminAuth guards the back-office API: a valid manager bearer token is
// required, any role.
func AdminAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ParseBearerToken(r.Header.Get("Authorization"))
			claims, err := auth.VerifyToken(token, jwtSecret)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			authCtx := &AuthContext{
				ManagerID: claims.ManagerID,
				Role:      claims.Role,
				Email:     claims.Email,
				StoreID:   claims.StoreID,
			}
			next.ServeHTTP(w, r.WithContext(WithAuthContext(r.Context(), authCtx)))
		})
	}
}

// RequireAdmin further restricts a subtree to the ADMIN role. Management of
// managers themselves sits behind it.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCtx, ok := GetAuthContext(r.Context())
		if !ok || authCtx.Role != auth.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
