package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"direct-admission/internal/handler/http/respond"
	"direct-admission/internal/infra/sheet"
	catUC "direct-admission/internal/usecase/catalog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves GET /api/export as an .xlsx attachment.
type ExportHandler struct{ Svc *catUC.Service }

func (h ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := sheet.Write(&buf, h.Svc.Snapshot()); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	name := fmt.Sprintf("catalog-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ImportHandler serves POST /api/import. The workbook is the raw request
// body or the "file" field of a multipart form. Each present sheet fully
// replaces its collection.
type ImportHandler struct{ Svc *catUC.Service }

func (h ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, closeFn, err := workbookBody(r)
	if err != nil {
		badRequest(w, "invalid request: expected an .xlsx workbook", err)
		return
	}
	defer closeFn()

	sheets, err := sheet.Read(body)
	switch {
	case errors.Is(err, sheet.ErrNoCatalogSheets):
		badRequest(w, "invalid workbook: no Colleges, Courses or Users sheet", err)
		return
	case err != nil:
		badRequest(w, "invalid request: expected an .xlsx workbook", err)
		return
	}

	summary, err := h.Svc.Import(r.Context(), sheets)
	resp := ImportResponse{Success: true, Summary: summary}
	if err != nil {
		if !catUC.IsPersistenceError(err) {
			writeError(w, err)
			return
		}
		resp.Warning = persistWarning
	}
	respond.JSON(w, http.StatusOK, resp)
}

func workbookBody(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
