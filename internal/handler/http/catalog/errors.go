package catalog

import (
	"errors"
	"net/http"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/respond"
	catUC "direct-admission/internal/usecase/catalog"
)

const persistWarning = "change applied but not saved to the durable store; it may be lost on the next reload"

// writeError maps catalog errors to statuses: integrity and duplicate
// conflicts are 409, self-deletion 403, validation 400 and unknown
// targets 404. Anything else is a masked 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		integrity *entity.ReferentialIntegrityError
		duplicate *entity.DuplicateUserError
		dupID     *entity.DuplicateIDError
		self      *entity.SelfDeletionError
	)
	var appErr *respond.AppError
	switch {
	case errors.As(err, &integrity):
		appErr = respond.NewAppError(http.StatusConflict, integrity.Error(), err)
	case errors.As(err, &duplicate):
		appErr = respond.NewAppError(http.StatusConflict, duplicate.Error(), err)
	case errors.As(err, &dupID):
		appErr = respond.NewAppError(http.StatusConflict, dupID.Error(), err)
	case errors.As(err, &self):
		appErr = respond.NewAppError(http.StatusForbidden, "cannot delete your own account", err)
	case errors.Is(err, entity.ErrValidationFailed):
		appErr = respond.NewAppError(http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, catUC.ErrCourseNotFound):
		appErr = respond.NewAppError(http.StatusNotFound, "course not found", nil)
	case errors.Is(err, catUC.ErrCollegeNotFound):
		appErr = respond.NewAppError(http.StatusNotFound, "college not found", nil)
	case errors.Is(err, catUC.ErrUserNotFound):
		appErr = respond.NewAppError(http.StatusNotFound, "user not found", nil)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.SafeErrorV2(w, appErr.Code, appErr)
}

func badRequest(w http.ResponseWriter, msg string, err error) {
	respond.SafeErrorV2(w, http.StatusBadRequest, respond.NewAppError(http.StatusBadRequest, msg, err))
}

// accepted answers a write that returned err. A persistence failure still
// counts as success, with a warning; any other error is written as such.
func accepted(w http.ResponseWriter, code int, item any, err error) {
	resp := MutationResponse{Success: true, Item: item}
	if err != nil {
		if !catUC.IsPersistenceError(err) {
			writeError(w, err)
			return
		}
		resp.Warning = persistWarning
	}
	respond.JSON(w, code, resp)
}
