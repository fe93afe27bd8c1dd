// Package mail sends the notification emails of the service over SMTP.
package mail

import (
	"bytes"
	"crypto/tls"
	"html/template"

	"hrm/backend/internal/entity"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Config holds the SMTP settings. An empty Host disables mail.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	sender Sender
	from   string
}

// New returns a Mailer for cfg, or nil when mail is disabled. A nil Mailer
// silently drops every message.
func New(cfg Config) *Mailer {
	if cfg.Host == "" {
		return nil
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return NewWithSender(d, from)
}

func NewWithSender(s Sender, from string) *Mailer {
	return &Mailer{sender: s, from: from}
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	`<p>Hello {{.Name}},</p>
<p>An account has been created for you. Sign in with <b>{{.Email}}</b>.</p>`))

var leaveTmpl = template.Must(template.New("leave").Parse(
	`<p>Hello {{.Name}},</p>
<p>Your {{.Leave.Type}} leave from {{.Leave.StartDate.Format "2006-01-02"}} to {{.Leave.EndDate.Format "2006-01-02"}} is now <b>{{.Leave.Status}}</b>.</p>`))

// Welcome notifies a newly registered employee.
func (m *Mailer) Welcome(name, email string) error {
	if m == nil {
		return nil
	}

	body, err := render(welcomeTmpl, struct{ Name, Email string }{name, email})
	if err != nil {
		return err
	}

	return m.send(email, "Welcome to HRM", body)
}

// LeaveDecision tells the requester about the new status of their leave.
func (m *Mailer) LeaveDecision(name, email string, leave entity.Leave) error {
	if m == nil || email == "" {
		return nil
	}

	body, err := render(leaveTmpl, struct {
		Name  string
		Leave entity.Leave
	}{name, leave})
	if err != nil {
		return err
	}

	return m.send(email, "Leave request "+leave.Status, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return errors.Wrapf(m.sender.DialAndSend(msg), "sending mail to %s", to)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "rendering %s mail", t.Name())
	}
	return buf.String(), nil
}
