package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonflow/config"
	"salonflow/models"
	"salonflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// ReminderPayload is the queued task body for one appointment reminder.
type ReminderPayload struct {
	BookingID    string `json:"bookingId"`
	SessionID    string `json:"sessionId"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// ReminderNotifier delivers a reminder to the customer. The default just
// logs; a real channel (SMS, push) plugs in here.
type ReminderNotifier interface {
	Notify(ctx context.Context, payload ReminderPayload) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, payload ReminderPayload) error {
	utils.GetLogger().Info("appointment reminder due",
		zap.String("bookingID", payload.BookingID),
		zap.String("customer", payload.CustomerName),
		zap.String("date", payload.Date),
		zap.String("time", payload.Time))
	return nil
}

// Scheduler enqueues appointment reminders to fire ahead of the booked time.
type Scheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewScheduler builds a scheduler against the configured reminder queue.
func NewScheduler() *Scheduler {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = 2 * time.Hour
	}
	return &Scheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		}),
		lead: lead,
	}
}

// ScheduleForBooking enqueues a reminder for a confirmed session. Bookings
// closer than the lead time get an immediate reminder instead of none.
func (s *Scheduler) ScheduleForBooking(ctx context.Context, session *models.BookingSession) error {
	if session.Confirmation == nil || session.CustomerDetails == nil {
		return fmt.Errorf("session %s is not a confirmed booking", session.SessionID)
	}

	appointment, err := time.Parse("2006-01-02 15:04", session.SelectedDate+" "+session.SelectedTime)
	if err != nil {
		return fmt.Errorf("parse appointment time: %w", err)
	}

	payload, err := json.Marshal(ReminderPayload{
		BookingID:    session.Confirmation.BookingID,
		SessionID:    session.SessionID,
		Date:         session.SelectedDate,
		Time:         session.SelectedTime,
		CustomerName: session.CustomerDetails.Name,
		Email:        session.CustomerDetails.Email,
		Phone:        session.CustomerDetails.Phone,
	})
	if err != nil {
		return err
	}

	fireAt := appointment.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	utils.GetLogger().Info("reminder scheduled",
		zap.String("bookingID", session.Confirmation.BookingID),
		zap.Time("fireAt", fireAt))
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifier ReminderNotifier) {
	if notifier == nil {
		notifier = LogNotifier{}
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifier))

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(notifier ReminderNotifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}
		return notifier.Notify(ctx, p)
	}
}
