package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"huduma/services/user"
	"huduma/utils"
)

// NotificationService dispatches pushes to accounts. Delivery is best
// effort everywhere it is used; callers log failures and move on.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
}

// FCMNotificationService is the production implementation, delivering via
// Firebase Cloud Messaging.
type FCMNotificationService struct {
	Users user.UserService
}

// NewFCMNotificationService builds the FCM-backed dispatcher.
func NewFCMNotificationService(userSvc user.UserService) (*FCMNotificationService, error) {
	if userSvc == nil {
		return nil, fmt.Errorf("notification service initialization error: user service is nil")
	}
	return &FCMNotificationService{Users: userSvc}, nil
}

// SendUserPush looks up the account's FCM token and sends a push.
func (s *FCMNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("SendUserPush: push delivery disabled, dropping message for user %s", userID)
	}

	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPush: user %s has no FCM token", userID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPush: failed to send FCM message: %w", err)
	}
	return nil
}
