package user

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/mongo/user"
	"hrm/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	user User
}

func NewController(user User) *Controller {
	return &Controller{user}
}

func (uc Controller) GetUserList(c *web.Context) error {
	list, err := uc.user.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetUserDetailById(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateUserColumns(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request user.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.user.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) DeleteUser(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.user.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   map[string]string{"message": "Employee removed"},
		"status": true,
	}, http.StatusOK)
}

// ExportEmployee streams the employee directory as an xlsx workbook.
func (uc Controller) ExportEmployee(c *web.Context) error {
	list, err := uc.user.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = service.WriteEmployees(&buf, list); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="employees.xlsx"`)
	c.Data(http.StatusOK, service.XLSXContentType, buf.Bytes())
	return nil
}

// ImportEmployee registers every valid row of an uploaded xlsx workbook.
// Rows that fail validation or registration are reported back.
func (uc Controller) ImportEmployee(c *web.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("Please upload an xlsx file"), http.StatusBadRequest))
	}

	src, err := file.Open()
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "opening upload"), http.StatusInternalServerError))
	}
	defer src.Close()

	rows, skipped, err := service.ReadEmployees(src)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	created := 0
	for _, row := range rows {
		if _, err = uc.user.Register(c.Ctx, row.Request); err != nil {
			if status := web.StatusOf(err); status == http.StatusForbidden || status == http.StatusUnauthorized || status >= http.StatusInternalServerError {
				return c.RespondError(err)
			}
			skipped = append(skipped, service.RowError{Row: row.Row, Error: err.Error()})
			continue
		}
		created++
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created": created,
			"skipped": skipped,
		},
		"status": true,
	}, http.StatusOK)
}

// GetQrCodeByEmployeeId renders the badge QR code of one employee.
func (uc Controller) GetQrCodeByEmployeeId(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := service.QRCode(detail)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, detail.ID.Hex()))
	c.Data(http.StatusOK, "image/png", png)
	return nil
}

// GetQrCodeList renders a printable pdf with the badges of all employees.
func (uc Controller) GetQrCodeList(c *web.Context) error {
	list, err := uc.user.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = service.WriteBadges(&buf, list); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", `attachment; filename="badges.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	return nil
}
