package service

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"hrm/backend/internal/repository/mongo/user"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ImportColumns is the expected column order of the employee import sheet.
var ImportColumns = []string{"Name", "Email", "Password", "Role", "Department", "Designation", "Joining Date", "Salary"}

// RowError explains why a sheet row was skipped. Row is 1-based as shown
// in spreadsheet applications.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportRow is a valid sheet row ready to be registered.
type ImportRow struct {
	Row     int
	Request user.RegisterRequest
}

// ReadEmployees parses the first sheet of an xlsx workbook into register
// requests. The header row is skipped. Invalid rows and emails repeated
// within the file are reported instead of returned.
func ReadEmployees(r io.Reader) ([]ImportRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading rows")
	}

	var (
		list    []ImportRow
		skipped []RowError
		seen    = make(map[string]int)
	)

	for i, row := range rows {
		n := i + 1
		if i == 0 || blank(row) {
			continue
		}

		col := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		request := user.RegisterRequest{
			Name:        col(0),
			Email:       user.NormalizeEmail(col(1)),
			Password:    col(2),
			Role:        col(3),
			Department:  col(4),
			Designation: col(5),
			JoiningDate: col(6),
		}

		var missing []string
		for j, v := range []string{request.Name, request.Email, request.Password} {
			if v == "" {
				missing = append(missing, ImportColumns[j])
			}
		}
		if len(missing) > 0 {
			skipped = append(skipped, RowError{Row: n, Error: "missing " + strings.Join(missing, ", ")})
			continue
		}

		if !emailRegex.MatchString(request.Email) {
			skipped = append(skipped, RowError{Row: n, Error: fmt.Sprintf("invalid email %q", request.Email)})
			continue
		}
		if prev, ok := seen[request.Email]; ok {
			skipped = append(skipped, RowError{Row: n, Error: fmt.Sprintf("email repeats row %d", prev)})
			continue
		}

		if request.Role != "" && request.Role != "Admin" && request.Role != "Employee" {
			skipped = append(skipped, RowError{Row: n, Error: fmt.Sprintf("invalid role %q", request.Role)})
			continue
		}

		if s := col(7); s != "" {
			salary, err := strconv.ParseFloat(s, 64)
			if err != nil {
				skipped = append(skipped, RowError{Row: n, Error: fmt.Sprintf("invalid salary %q", s)})
				continue
			}
			request.Salary = &salary
		}

		seen[request.Email] = n
		list = append(list, ImportRow{Row: n, Request: request})
	}

	return list, skipped, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
