package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/requestid"
	"direct-admission/internal/handler/http/respond"
	"direct-admission/internal/usecase/catalog"
)

// Authenticator admits a registered user and refreshes their avatar.
type Authenticator interface {
	Authenticate(ctx context.Context, email, avatarURL string) (entity.User, error)
}

// loginRequest is the identity asserted by the sign-in widget. The
// assertion is trusted as-is; verifying it with the identity provider is
// out of scope for this service.
//
// Deployment warning: anyone who knows a registered email, including an
// Admin's, can obtain that user's token from POST /auth/login. Bearer
// tokens therefore only separate roles among trusted callers; expose the
// write API behind an authenticating proxy or on a private network.
type loginRequest struct {
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      entity.User `json:"user"`
}

// LoginHandler handles POST /auth/login.
func LoginHandler(authn Authenticator, issuer *Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		fail := func(code int, outcome, msg string, err error) {
			logger.Warn("authentication failed", slog.String("reason", msg), slog.Any("error", err))
			recordLogin("", outcome, start)
			respond.SafeErrorV2(w, code, respond.NewAppError(code, msg, err))
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(http.StatusBadRequest, loginBadRequest, "invalid request", err)
			return
		}
		if err := entity.ValidateEmail(entity.NormalizeEmail(req.Email)); err != nil {
			fail(http.StatusBadRequest, loginBadRequest, "invalid email", err)
			return
		}

		u, err := authn.Authenticate(r.Context(), req.Email, req.Avatar)
		switch {
		case errors.Is(err, catalog.ErrUserNotAuthorized):
			fail(http.StatusForbidden, loginNotAuthorized, "access denied: email is not authorized", err)
			return
		case errors.Is(err, catalog.ErrInvalidRole):
			fail(http.StatusForbidden, loginInvalidRole, "access denied: account role is invalid", err)
			return
		case err != nil:
			fail(http.StatusInternalServerError, loginError, "internal server error", err)
			return
		}

		token, exp, err := issuer.Issue(u)
		if err != nil {
			fail(http.StatusInternalServerError, loginError, "internal server error", err)
			return
		}

		role := string(u.Role)
		recordLogin(role, loginSuccess, start)
		logger.Info("authentication successful",
			slog.String("user_email", u.Email),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		respond.JSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, User: u})
	}
}
