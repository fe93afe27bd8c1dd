package auth

import (
	"net/http"
	"strconv"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/mongo/user"
	"hrm/backend/internal/service"

	"github.com/pkg/errors"
)

// Media tells where avatars are written and under which URL they are served.
type Media struct {
	Dir    string
	Prefix string
}

type Controller struct {
	user     User
	tokens   Tokens
	throttle Throttle
	mail     Mailer
	media    Media
}

func NewController(user User, tokens Tokens, throttle Throttle, mail Mailer, media Media) *Controller {
	return &Controller{user: user, tokens: tokens, throttle: throttle, mail: mail, media: media}
}

var errInvalidCredentials = errors.New("Invalid email or password")

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	err := c.BindFunc(&data, "Email", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	email := user.NormalizeEmail(data.Email)

	allowed, err := uc.throttle.Allowed(c.Ctx, email)
	if err != nil {
		c.Log().Warn("login throttle unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		if wait := uc.throttle.RetryAfter(c.Ctx, email); wait > 0 {
			c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())))
		}
		return c.RespondError(web.NewRequestError(errors.New("Too many login attempts, try again later"), http.StatusTooManyRequests))
	}

	detail, err := uc.user.GetByEmail(c.Ctx, email)
	if err == nil {
		err = user.CheckPassword(detail.Password, data.Password)
	}
	if err != nil {
		if web.StatusOf(err) >= http.StatusInternalServerError {
			return c.RespondError(err)
		}
		if ferr := uc.throttle.Fail(c.Ctx, email); ferr != nil {
			c.Log().Warn("recording failed login", "error", ferr)
		}
		return c.RespondError(web.NewRequestError(errInvalidCredentials, http.StatusUnauthorized))
	}

	if err = uc.throttle.Reset(c.Ctx, email); err != nil {
		c.Log().Warn("resetting login throttle", "error", err)
	}

	token, err := uc.tokens.GenerateToken(detail.ID.Hex(), detail.Role)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating token"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": user.SignInResponse{
			ID:     detail.ID,
			Name:   detail.Name,
			Email:  detail.Email,
			Role:   detail.Role,
			Avatar: detail.Avatar,
			Token:  token,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Register(c *web.Context) error {
	var data user.RegisterRequest

	if err := c.BindFunc(&data, "Name", "Email", "Password"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.user.Register(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	if err = uc.mail.Welcome(response.Name, response.Email); err != nil {
		c.Log().Warn("welcome mail not sent", "email", response.Email, "error", err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) GetProfile(c *web.Context) error {
	response, err := uc.user.GetProfile(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// UploadAvatar expects a multipart form with the image in the "avatar" field.
func (uc Controller) UploadAvatar(c *web.Context) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("Please upload a file"), http.StatusBadRequest))
	}

	name, err := service.Upload(file, uc.media.Dir)
	if errors.Is(err, service.ErrInvalidImage) || errors.Is(err, service.ErrAvatarTooLarge) {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "storing avatar"), http.StatusInternalServerError))
	}

	avatar := uc.media.Prefix + "/" + name
	if err = uc.user.UpdateAvatar(c.Ctx, avatar); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": user.AvatarResponse{
			Avatar:  avatar,
			Message: "Avatar uploaded successfully",
		},
		"status": true,
	}, http.StatusOK)
}
