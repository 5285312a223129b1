package catalog

import (
	"encoding/json"
	"net/http"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/auth"
	"direct-admission/internal/handler/http/pathutil"
	"direct-admission/internal/handler/http/respond"
	catUC "direct-admission/internal/usecase/catalog"
)

// CreateUserHandler serves POST /api/users.
type CreateUserHandler struct{ Svc *catUC.Service }

func (h CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var u entity.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		badRequest(w, "invalid request", err)
		return
	}
	added, err := h.Svc.AddUser(r.Context(), u)
	accepted(w, http.StatusCreated, added, err)
}

// DeleteUserHandler serves DELETE /api/users/{email} on behalf of the
// authenticated caller, who cannot remove their own account.
type DeleteUserHandler struct{ Svc *catUC.Service }

func (h DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.SafeErrorV2(w, http.StatusUnauthorized,
			respond.NewAppError(http.StatusUnauthorized, "unauthorized", nil))
		return
	}
	email, err := pathutil.ExtractID(r.URL.Path, "/api/users/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	accepted(w, http.StatusOK, nil, h.Svc.RemoveUser(r.Context(), actor.Email, email))
}
