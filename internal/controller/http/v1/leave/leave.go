package leave

import (
	"net/http"
	"reflect"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/leave"
)

type Controller struct {
	leave Leave
	mail  Mailer
}

func NewController(leave Leave, mail Mailer) *Controller {
	return &Controller{leave, mail}
}

func (uc Controller) CreateLeave(c *web.Context) error {
	var request leave.CreateRequest

	if err := c.BindFunc(&request, "StartDate", "EndDate", "Reason"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.leave.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) GetMyLeaves(c *web.Context) error {
	list, err := uc.leave.GetMyLeaves(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetLeaveList(c *web.Context) error {
	list, err := uc.leave.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

// UpdateLeaveStatus records the decision and notifies the requester. A mail
// failure does not fail the request.
func (uc Controller) UpdateLeaveStatus(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request leave.UpdateStatusRequest

	if err := c.BindFunc(&request, "Status"); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.leave.UpdateStatus(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	uc.notify(c, response.Employee, response.Leave)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) notify(c *web.Context, to *entity.UserRef, l entity.Leave) {
	if uc.mail == nil || to == nil || to.Email == "" {
		return
	}
	if err := uc.mail.LeaveDecision(to.Name, to.Email, l); err != nil {
		c.Log().Warn("leave decision mail", "leave", l.ID.Hex(), "error", err)
	}
}
