package meeting

import (
	"net/http"
	"reflect"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/mongo/meeting"
)

type Controller struct {
	meeting Meeting
}

func NewController(meeting Meeting) *Controller {
	return &Controller{meeting}
}

func (uc Controller) GetMeetingList(c *web.Context) error {
	list, err := uc.meeting.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CreateMeeting(c *web.Context) error {
	var request meeting.CreateRequest

	if err := c.BindFunc(&request, "Title", "Date", "StartTime", "EndTime"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.meeting.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) DeleteMeeting(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.meeting.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   map[string]string{"message": "Meeting deleted"},
		"status": true,
	}, http.StatusOK)
}
