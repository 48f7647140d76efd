package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/lumiere-institute/lumiere/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeWelcomeEmail is the task type for the enrollment welcome mail.
	TaskTypeWelcomeEmail = "mail:welcome"
	// TaskTypeStatsSnapshot is the task type for the dashboard stats refresh.
	TaskTypeStatsSnapshot = "stats:snapshot"
)

// WelcomeEmailPayload describes the recipient of a welcome mail.
type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewWelcomeEmailTask constructs an Asynq task.
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWelcomeEmail, data), nil
}

// NewStatsSnapshotTask constructs the recurring snapshot task.
func NewStatsSnapshotTask() *asynq.Task {
	return asynq.NewTask(TaskTypeStatsSnapshot, nil)
}

// Mailer sends transactional mail on behalf of job handlers.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
}

// LogMailer writes outgoing mail to the log instead of an SMTP relay. It is
// the default until a relay is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendWelcome(_ context.Context, email, name string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("welcome mail", slog.String("to", email), slog.String("name", name))
	return nil
}

// SnapshotFunc recomputes and stores the dashboard snapshot.
type SnapshotFunc func(ctx context.Context) error

// HandleWelcomeEmailTask processes TaskTypeWelcomeEmail tasks.
func HandleWelcomeEmailTask(mailer Mailer, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskTypeWelcomeEmail)
		var payload WelcomeEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			_ = tracker.End(err)
			return asynq.SkipRetry
		}
		return tracker.End(mailer.SendWelcome(ctx, payload.Email, payload.Name))
	}
}

// HandleStatsSnapshotTask processes TaskTypeStatsSnapshot tasks.
func HandleStatsSnapshotTask(refresh SnapshotFunc, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		tracker := metrics.Track(TaskTypeStatsSnapshot)
		return tracker.End(refresh(ctx))
	}
}
