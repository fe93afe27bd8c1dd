package attendance

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/mongo/attendance"
	"hrm/backend/internal/service"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

func (uc Controller) CheckIn(c *web.Context) error {
	response, err := uc.attendance.CheckIn(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) CheckOut(c *web.Context) error {
	response, err := uc.attendance.CheckOut(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetMyHistory(c *web.Context) error {
	list, err := uc.attendance.GetMyHistory(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if day, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = day
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

// Export streams the attendance of one month as an xlsx workbook. The month
// is taken from ?month=YYYY-MM-DD and defaults to the current one.
func (uc Controller) Export(c *web.Context) error {
	month := date.Date{Time: time.Now().UTC()}

	if raw, ok := c.GetQueryFunc(reflect.String, "month").(*string); ok {
		parsed, err := date.ParseDate(*raw)
		if err != nil {
			return c.RespondError(web.NewRequestError(errors.New("month must be formatted as YYYY-MM-DD"), http.StatusBadRequest))
		}
		month = parsed
	}

	rows, err := uc.attendance.GetMonthReport(c.Ctx, month)
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = service.WriteAttendance(&buf, rows); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	name := fmt.Sprintf("attendance-%s.xlsx", month.ToTime().Format("2006-01"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, service.XLSXContentType, buf.Bytes())
	return nil
}
