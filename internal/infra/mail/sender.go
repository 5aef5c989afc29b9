package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/pipeline-crm/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from, notifyTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		NotifyTo: notifyTo,
	}
}

// SendStatusChanged mails the pipeline inbox about a recorded transition.
func (s *EmailSender) SendStatusChanged(payload queue.StatusChangedPayload) error {
	body, err := renderTemplate("status_changed.html", statusChangedData{
		ProspectName: payload.ProspectName,
		OldStatus:    payload.OldStatus,
		NewStatus:    payload.NewStatus,
		StatusDate:   payload.StatusDate,
		Notes:        payload.Notes,
		UserName:     payload.UserName,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Pipeline: %s est passé de %s à %s",
		payload.ProspectName, payload.OldStatus, payload.NewStatus)

	return s.send(s.NotifyTo, subject, body)
}

// SendTempPassword mails a recovery password set by an admin.
func (s *EmailSender) SendTempPassword(to, name, password string) error {
	body, err := renderTemplate("temp_password.html", tempPasswordData{
		Name:     name,
		Password: password,
	})
	if err != nil {
		return err
	}

	return s.send(to, "Votre nouveau mot de passe", body)
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func renderTemplate(name string, data any) (string, error) {
	tmplPath := filepath.Join("templates", name)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}

	return body.String(), nil
}
