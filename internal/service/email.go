package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/templui/goalpace/internal/model"
)

// EmailService delivers milestone notifications through Resend.
// In development mode messages are only logged.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) SendGoalMilestone(ctx context.Context, contact string, n *model.MilestoneNotification) error {
	goalURL := fmt.Sprintf("%s/app/goals/%s", s.appURL, n.GoalID)
	subject, body := goalMilestoneEmailTemplate(n, goalURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "goal_milestone", "to", contact, "subject", subject, "milestone", n.Milestone)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{contact},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "goal_milestone", "to", contact, "goal_id", n.GoalID)
	}
	return err
}
