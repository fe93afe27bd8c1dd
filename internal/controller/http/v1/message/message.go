package message

import (
	"net/http"
	"reflect"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/mongo/message"
)

type Controller struct {
	message Message
}

func NewController(message Message) *Controller {
	return &Controller{message}
}

func (uc Controller) GetConversations(c *web.Context) error {
	list, err := uc.message.GetConversations(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

// GetThread returns the exchange with :userId and marks it read.
func (uc Controller) GetThread(c *web.Context) error {
	other := c.GetParam(reflect.String, "userId").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.message.GetThread(c.Ctx, other)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) SendMessage(c *web.Context) error {
	var request message.SendRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.message.Send(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) GetChatUsers(c *web.Context) error {
	list, err := uc.message.GetUsers(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}
