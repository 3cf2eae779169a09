package utils

import (
	"fmt"
	"strconv"

	"business-permits-backend/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := config.GetEnv("SMTP_HOST")
	mailPort := config.GetEnv("SMTP_PORT")
	mailUser := config.GetEnv("SMTP_USER")
	mailPassword := config.GetEnv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// SendPermitIssuedEmail notifies the applicant that their business permit has
// been issued, attaching the generated certificate.
func SendPermitIssuedEmail(to, businessName, certificatePath string) error {
	if mailer == nil {
		return fmt.Errorf("mailer is not initialized")
	}
	if to == "" {
		return fmt.Errorf("recipient email is empty")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.GetEnv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Business Permit Issued - %s", businessName))
	m.SetBody("text/html", fmt.Sprintf(`
		<p>Good day,</p>
		<p>The business permit for <strong>%s</strong> has been issued.
		The signed certificate is attached to this email.</p>
		<p>Please keep this document and display it conspicuously at your
		place of business.</p>
		<p>This is an automated message, please do not reply.</p>
	`, businessName))
	if certificatePath != "" {
		m.Attach(certificatePath)
	}

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Failed to send permit issued email",
			zap.String("to", to),
			zap.String("businessName", businessName),
			zap.Error(err),
		)
		return err
	}

	config.Logger.Info("Permit issued email sent", zap.String("to", to))
	return nil
}
