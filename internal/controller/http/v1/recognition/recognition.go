package recognition

import (
	"net/http"
	"reflect"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/mongo/recognition"
)

type Controller struct {
	recognition Recognition
}

func NewController(recognition Recognition) *Controller {
	return &Controller{recognition}
}

func (uc Controller) GetRecognitionList(c *web.Context) error {
	list, err := uc.recognition.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CreateRecognition(c *web.Context) error {
	var request recognition.CreateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.recognition.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) GetStats(c *web.Context) error {
	response, err := uc.recognition.Stats(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetUserStats(c *web.Context) error {
	userID := c.GetParam(reflect.String, "userId").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.recognition.UserStats(c.Ctx, userID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
