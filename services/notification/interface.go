package notification

import "context"

// NotificationService mirrors booking changes to interested audiences.
type NotificationService interface {
	// AnnounceBookingChange posts one update to the broadcast channel.
	AnnounceBookingChange(ctx context.Context, text string) error
}
