// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"fmt"
	"strings"

	"github.com/tannermartz/breakline/logx"
)

// NotificationService handles sending notifications via push and email
type NotificationService interface {
	SendPush(deviceToken, title, body string) error
	SendEmail(email, subject, message string) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	pushProvider  PushProvider
	emailProvider EmailProvider
}

// PushProvider interface for mobile push delivery
type PushProvider interface {
	SendPush(deviceToken, title, body string) error
}

// EmailProvider interface for email sending
type EmailProvider interface {
	SendEmail(email, subject, message string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(pushProvider PushProvider, emailProvider EmailProvider) NotificationService {
	return &NotificationServiceImpl{
		pushProvider:  pushProvider,
		emailProvider: emailProvider,
	}
}

// SendPush sends a push notification to the specified device token
func (s *NotificationServiceImpl) SendPush(deviceToken, title, body string) error {
	if s.pushProvider == nil {
		return fmt.Errorf("push provider not configured")
	}

	if strings.TrimSpace(deviceToken) == "" {
		return fmt.Errorf("device token is empty")
	}

	return s.pushProvider.SendPush(deviceToken, title, body)
}

// SendEmail sends an email to the specified email address
func (s *NotificationServiceImpl) SendEmail(email, subject, message string) error {
	if s.emailProvider == nil {
		return fmt.Errorf("email provider not configured")
	}

	if len(email) == 0 || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %s", email)
	}

	return s.emailProvider.SendEmail(email, subject, message)
}

type MockPushProvider struct{}

func NewMockPushProvider() PushProvider {
	return &MockPushProvider{}
}

func (p *MockPushProvider) SendPush(deviceToken, title, body string) error {
	logx.Info("push sent", "device_token", deviceToken, "title", title, "body", body)
	return nil
}

type MockEmailProvider struct{}

func NewMockEmailProvider() EmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(email, subject, message string) error {
	logx.Info("email sent", "email", email, "subject", subject)
	return nil
}

// SMTPEmailProvider delivers mail through a plain SMTP relay
type SMTPEmailProvider struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

func NewSMTPEmailProvider(host string, port int, username, password, fromEmail string) EmailProvider {
	return &SMTPEmailProvider{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
	}
}

func (p *SMTPEmailProvider) SendEmail(email, subject, message string) error {
	// Real delivery would open an SMTP session against p.host:p.port.
	// Kept as a logged no-op until a relay is provisioned.
	logx.Info("email queued via smtp", "host", p.host, "to", email, "subject", subject)
	return nil
}

// FCMPushProvider delivers push notifications through Firebase Cloud Messaging
type FCMPushProvider struct {
	serverKey string
}

func NewFCMPushProvider(serverKey string) PushProvider {
	return &FCMPushProvider{serverKey: serverKey}
}

func (p *FCMPushProvider) SendPush(deviceToken, title, body string) error {
	// Real delivery would POST to the FCM HTTP v1 endpoint.
	// Kept as a logged no-op until credentials are provisioned.
	logx.Info("push queued via fcm", "device_token", deviceToken, "title", title)
	return nil
}
