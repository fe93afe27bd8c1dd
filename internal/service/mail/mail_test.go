package mail

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hrm/backend/internal/entity"

	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return nil
}

func body(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestLeaveDecision(t *testing.T) {
	s := &fakeSender{}
	m := NewWithSender(s, "hr@hrm.io")

	leave := entity.Leave{
		Type:      "Sick",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		Status:    entity.LeaveApproved,
	}
	if err := m.LeaveDecision("Bob", "bob@hrm.io", leave); err != nil {
		t.Fatal(err)
	}

	if len(s.sent) != 1 {
		t.Fatalf("sent: got %d", len(s.sent))
	}
	if got := s.sent[0].GetHeader("To"); len(got) != 1 || got[0] != "bob@hrm.io" {
		t.Errorf("to: %v", got)
	}
	if got := s.sent[0].GetHeader("Subject"); got[0] != "Leave request Approved" {
		t.Errorf("subject: %v", got)
	}
	if b := body(t, s.sent[0]); !strings.Contains(b, "2026-04-01") {
		t.Errorf("body misses start date: %s", b)
	}
}

func TestWelcome(t *testing.T) {
	s := &fakeSender{}
	if err := NewWithSender(s, "hr@hrm.io").Welcome("Ada", "ada@hrm.io"); err != nil {
		t.Fatal(err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("sent: got %d", len(s.sent))
	}
}

func TestDisabled(t *testing.T) {
	m := New(Config{})
	if m != nil {
		t.Fatal("empty host should disable mail")
	}
	if err := m.Welcome("Ada", "ada@hrm.io"); err != nil {
		t.Fatal(err)
	}
	if err := m.LeaveDecision("Ada", "ada@hrm.io", entity.Leave{}); err != nil {
		t.Fatal(err)
	}
}
