package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"firebase.google.com/go/v4/messaging"

	"disasterreport/model"
)

// Notifier announces reports that need attention.
type Notifier interface {
	NotifyUrgent(ctx context.Context, report model.Report) error
}

// MessageSender is the part of *messaging.Client the notifier uses.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotifier publishes urgent reports to an FCM topic.
type FCMNotifier struct {
	client MessageSender
	topic  string
	logger *slog.Logger
}

func NewFCMNotifier(client MessageSender, topic string, logger *slog.Logger) *FCMNotifier {
	return &FCMNotifier{client: client, topic: topic, logger: logger}
}

func (n *FCMNotifier) NotifyUrgent(ctx context.Context, report model.Report) error {
	message := &messaging.Message{
		Data: map[string]string{
			"reportId":     strconv.FormatInt(report.ID, 10),
			"urgencyLevel": report.UrgencyLevel,
			"severity":     report.Severity,
			"humanitarian": report.Humanitarian,
			"location":     report.Location,
		},
		Notification: &messaging.Notification{
			Title: fmt.Sprintf("Urgency %s report", report.UrgencyLevel),
			Body:  report.Location,
		},
		Topic: n.topic,
	}

	response, err := n.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	n.logger.Info("urgent report notification sent", "report_id", report.ID, "message", response)
	return nil
}
