package service

import (
	"fmt"
	"io"
	"time"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/attendance"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	EmployeeSheet   = "Employees"
	AttendanceSheet = "Attendance"

	// XLSXContentType is the media type of the generated workbooks.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var employeeHeaders = []string{"Name", "Email", "Role", "Department", "Designation", "Joining Date", "Salary", "Status"}

var attendanceHeaders = []string{"Date", "Name", "Email", "Check In", "Check Out", "Status", "Total Hours"}

// WriteEmployees writes the employee directory as an xlsx workbook to w.
func WriteEmployees(w io.Writer, users []entity.User) error {
	f, err := newWorkbook(EmployeeSheet, employeeHeaders)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, u := range users {
		row := []any{u.Name, u.Email, u.Role, u.Department, u.Designation, u.JoiningDate, u.Salary, u.Status}
		if err = setRow(f, EmployeeSheet, i+2, row); err != nil {
			return err
		}
	}

	return errors.Wrap(f.Write(w), "writing employee workbook")
}

// WriteAttendance writes a monthly attendance report as an xlsx workbook
// to w. Times are rendered in UTC.
func WriteAttendance(w io.Writer, rows []attendance.ReportRow) error {
	f, err := newWorkbook(AttendanceSheet, attendanceHeaders)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, r := range rows {
		row := []any{r.Date, r.Name, r.Email, clock(r.CheckIn), clock(r.CheckOut), r.Status, r.TotalHours}
		if err = setRow(f, AttendanceSheet, i+2, row); err != nil {
			return err
		}
	}

	return errors.Wrap(f.Write(w), "writing attendance workbook")
}

func newWorkbook(sheet string, headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}

	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err = setRow(f, sheet, 1, row); err != nil {
		return nil, err
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err = f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return nil, errors.Wrap(err, "styling header")
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, n int, values []any) error {
	cell := fmt.Sprintf("A%d", n)
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &values), "writing row %d", n)
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("15:04:05")
}
