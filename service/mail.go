package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer delivers the one-time verification code.
type Mailer interface {
	SendVerificationCode(sendTo, code string) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	password string
}

func NewSMTPMailer(host string, port int, sender string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Sender:   sender,
		password: viper.GetString("mail.password"),
	}
}

func (m *SMTPMailer) SendVerificationCode(sendTo, code string) error {
	if sendTo == m.Sender {
		return errors.New("invalid email address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("To", sendTo)
	msg.SetHeader("Subject", "Email Verification")
	msg.SetBody("text/html", fmt.Sprintf("<p>Your verification code is <strong>%v</strong>. It will expire in 1 day.</p>", code))

	d := gomail.NewDialer(m.Host, m.Port, m.Sender, m.password)

	return d.DialAndSend(msg)
}
