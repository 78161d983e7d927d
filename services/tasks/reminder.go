package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"huduma/config"
	"huduma/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the queued task for a booking reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues booking reminders on the redis-backed
// asynq queue, to fire shortly before the booking start.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// ScheduleBookingReminder enqueues a reminder for the order's booking slot.
// Bookings whose reminder moment has already passed are skipped.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(ctx context.Context, o *models.Order) error {
	start, err := time.ParseInLocation("2006-01-02 15:04", o.BookingDate+" "+o.BookingTime, time.Local)
	if err != nil {
		return fmt.Errorf("unparseable booking slot %q %q: %w", o.BookingDate, o.BookingTime, err)
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := start.Add(-lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		Title:       "Upcoming booking",
		Body:        fmt.Sprintf("Your booking %q starts at %s.", o.Service.Title, o.BookingTime),
		BookingDate: o.BookingDate,
		BookingTime: o.BookingTime,
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}

	s.logger().Debug("booking reminder scheduled",
		zap.String("orderId", o.ID), zap.Time("fireAt", fireAt))
	return nil
}

func (s *AsynqReminderScheduler) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
