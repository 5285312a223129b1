package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/respond"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// Principal is the authenticated caller.
type Principal struct {
	Email string
	Role  entity.Role
}

// UserLookup returns the current account for an email.
type UserLookup interface {
	User(email string) (entity.User, bool)
}

// PrincipalFromContext returns the caller set by Authz.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// Authz authenticates the bearer token and authorizes the request against
// RolePermissions. The role is re-read from users on every request, so a
// removed account or a changed role takes effect before the token expires.
func Authz(issuer *Issuer, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicRequest(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := bearerClaims(issuer, r.Header.Get("Authorization"))
			if err != nil {
				recordRejection(tokenRejectReason(err), "", r.Method, r.URL.Path)
				respond.SafeErrorV2(w, http.StatusUnauthorized,
					respond.NewAppError(http.StatusUnauthorized, "unauthorized", err))
				return
			}

			u, ok := users.User(claims.Subject)
			if !ok {
				recordRejection("unknown_user", "", r.Method, r.URL.Path)
				respond.SafeErrorV2(w, http.StatusUnauthorized,
					respond.NewAppError(http.StatusUnauthorized, "unauthorized",
						fmt.Errorf("user %s no longer registered", claims.Subject)))
				return
			}

			if !Allowed(u.Role, r.Method, r.URL.Path) {
				recordRejection("forbidden", string(u.Role), r.Method, r.URL.Path)
				respond.SafeErrorV2(w, http.StatusForbidden,
					respond.NewAppError(http.StatusForbidden, "forbidden",
						fmt.Errorf("role %s may not %s %s", u.Role, r.Method, r.URL.Path)))
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{Email: u.Email, Role: u.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerClaims(issuer *Issuer, header string) (*Claims, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	return issuer.Parse(strings.TrimSpace(token))
}
