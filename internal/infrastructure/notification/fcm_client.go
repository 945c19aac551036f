package notification

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotifier delivers push notifications through Firebase Cloud Messaging.
// Delivery is best-effort; callers treat failures as log-and-continue.
type FCMNotifier struct {
	client *messaging.Client
}

func NewFCMNotifier(client *messaging.Client) *FCMNotifier {
	return &FCMNotifier{
		client: client,
	}
}

func (n *FCMNotifier) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := n.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})

	return err
}
