package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/sandeshj07/event-management-backend/utils"
)

// Channel delivers a notification to a list of recipients
type Channel interface {
	Send(recipients []string, title, body string) error
}

// FCMChannel pushes notifications through Firebase Cloud Messaging.
// Recipients are device tokens.
type FCMChannel struct {
	ctx context.Context
}

func NewFCMChannel() Channel {
	return &FCMChannel{ctx: context.Background()}
}

func (f *FCMChannel) Send(recipients []string, title, body string) error {
	client := utils.GetFCMClient()
	if client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no device tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(client, recipients[0], title, body)
	}
	return f.sendMulticast(client, recipients, title, body)
}

func (f *FCMChannel) sendSingle(client *messaging.Client, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "event_notifications",
				Priority:  messaging.PriorityHigh,
			},
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
			},
		},
	}

	if _, err := client.Send(f.ctx, message); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

func (f *FCMChannel) sendMulticast(client *messaging.Client, tokens []string, title, body string) error {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "event_notifications",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	response, err := client.SendEachForMulticast(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM multicast: %w", err)
	}
	if response.FailureCount > 0 {
		log.Printf("fcm: %d of %d pushes failed", response.FailureCount, len(tokens))
	}
	return nil
}
