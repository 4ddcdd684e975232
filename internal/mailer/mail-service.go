package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type MailService struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	mailFrom     string
	mailFromName string
}

func NewMailService(host, port, user, password, from, fromName string) *MailService {
	return &MailService{
		smtpHost:     host,
		smtpPort:     port,
		smtpUser:     user,
		smtpPassword: password,
		mailFrom:     from,
		mailFromName: fromName,
	}
}

func (s *MailService) SendVerifyEmail(to, verifyURL string) error {
	body, err := renderTemplate("internal/mailer/templates/verify-email.html", verifyURL)
	if err != nil {
		return err
	}
	return s.send(to, "Verify Your Blood Donor Account", body)
}

func (s *MailService) SendResetEmail(to, resetURL string) error {
	body, err := renderTemplate("internal/mailer/templates/reset-password.html", resetURL)
	if err != nil {
		return err
	}
	return s.send(to, "Reset Your LifeDrop Password", body)
}

func renderTemplate(path, link string) (string, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"Link": link}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) send(to, subject, htmlBody string) error {
	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s:%s", to, s.smtpHost, s.smtpPort)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.smtpHost, s.smtpPort)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole exchange so a stalled server cannot hang
	// the worker
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}

	if s.smtpUser != "" {
		auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
