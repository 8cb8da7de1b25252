package utils

import (
	"errors"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
)

// Mailer sends portal email over SMTP. Credentials come from configuration.
// It implements workflow.Notifier.
type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func NewMailer(host string, port int, username, password string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password}
}

// Send delivers a single email.
func (m *Mailer) Send(to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}

// ApplicationSubmitted emails the applying student a confirmation and the
// posting recruiter a heads-up. Both sends are attempted even if one fails.
func (m *Mailer) ApplicationSubmitted(student *models.Student, job *models.Job, recruiter *models.Recruiter) error {
	studentErr := m.Send(
		student.Email,
		"Application Confirmation - CampusHire",
		fmt.Sprintf("You have successfully applied for the job: %s at %s.", job.JobTitle, job.OrgName),
	)

	var recruiterErr error
	if recruiter != nil {
		recruiterErr = m.Send(
			recruiter.ContactEmail,
			"New Job Application - CampusHire",
			fmt.Sprintf("%s has applied for the job: %s. Check the CampusHire portal for details.", student.Name, job.JobTitle),
		)
	}

	return errors.Join(studentErr, recruiterErr)
}
