package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"infinitewash/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeSendReminder = "reminder:send"

	// ReminderLead is how long before the booked slot the reminder fires.
	ReminderLead = 24 * time.Hour
)

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// One reminder per session and slot.
func reminderTaskID(p models.ReminderPayload) string {
	return fmt.Sprintf("reminder:%s:%s", p.SessionID, models.SlotKey(p.Date, p.Time))
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler queues booking reminders on asynq.
type Scheduler struct {
	client enqueuer
	now    func() time.Time
	logger *zap.Logger
}

func NewScheduler(client *asynq.Client, logger *zap.Logger) *Scheduler {
	return &Scheduler{client: client, now: time.Now, logger: logger}
}

// ScheduleReminder queues a reminder ReminderLead before slotStart.
// Nothing is queued once that moment has passed.
func (s *Scheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, slotStart time.Time) error {
	fireAt := slotStart.Add(-ReminderLead)
	if !fireAt.After(s.now()) {
		s.logger.Debug("reminder skipped, slot is too close",
			zap.String("sessionID", payload.SessionID), zap.Time("slotStart", slotStart))
		return nil
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.logger.Info("reminder scheduled", zap.String("taskID", info.ID), zap.Time("fireAt", fireAt))
	return nil
}
