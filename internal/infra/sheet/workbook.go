// Package sheet reads and writes the catalog as an .xlsx workbook with one
// sheet per collection.
package sheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"direct-admission/internal/repository"
	"direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
)

// CollegeNameReference is a read-only helper column of the Courses sheet.
// It is ignored on import.
const CollegeNameReference = "college_name_reference"

var (
	collegeHeader = []string{"id", "name", "location", "state", "logoUrl", "description", "phone", "rating", "ratingCount"}
	courseHeader  = []string{"id", "collegeId", "courseName", "fees", "duration", "description", "rating", "ratingCount", CollegeNameReference}
	userHeader    = []string{"email", "name", "role", "avatar"}
)

// ErrNoCatalogSheets is returned by Read when a workbook contains none of
// the Colleges, Courses or Users sheets.
var ErrNoCatalogSheets = errors.New("workbook has no Colleges, Courses or Users sheet")

// Write encodes snap as a workbook with the sheets Colleges, Courses and
// Users, in that order.
func Write(w io.Writer, snap repository.Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), catalog.SheetColleges); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := writeRows(f, catalog.SheetColleges, collegeHeader, len(snap.Colleges), func(i int) []any {
		c := snap.Colleges[i]
		return []any{c.ID, c.Name, c.Location, c.State, c.LogoURL, c.Description, c.Phone, c.Rating, c.RatingCount}
	}); err != nil {
		return err
	}

	enriched := search.Enrich(snap.Courses, snap.Colleges)
	if err := writeRows(f, catalog.SheetCourses, courseHeader, len(enriched), func(i int) []any {
		c := enriched[i]
		return []any{c.ID, c.CollegeID, c.CourseName, c.Fees, c.Duration, c.Description, c.Rating, c.RatingCount, c.CollegeName}
	}); err != nil {
		return err
	}

	if err := writeRows(f, catalog.SheetUsers, userHeader, len(snap.Users), func(i int) []any {
		u := snap.Users[i]
		return []any{u.Email, u.Name, string(u.Role), u.Avatar}
	}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, header []string, n int, row func(int) []any) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write sheet %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// Read decodes the catalog sheets of a workbook into untyped rows. Only
// sheets that are present appear in the result; a present sheet with no
// data rows maps to an empty slice. The first row of each sheet is the
// header.
func Read(r io.Reader) (catalog.Sheets, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	wanted := map[string]bool{
		catalog.SheetColleges: true,
		catalog.SheetCourses:  true,
		catalog.SheetUsers:    true,
	}
	sheets := catalog.Sheets{}
	for _, name := range f.GetSheetList() {
		if !wanted[name] {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		out := make([]catalog.Row, 0, len(rows))
		if len(rows) > 0 {
			header := rows[0]
			for _, cells := range rows[1:] {
				if blank(cells) {
					continue
				}
				out = append(out, catalog.NewRow(header, cells))
			}
		}
		sheets[name] = out
	}
	if len(sheets) == 0 {
		return nil, ErrNoCatalogSheets
	}
	return sheets, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
