package tasks

import (
	"encoding/json"
	"fmt"

	"business-permits-backend/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypePreviewPreRender = "export:preview_prerender"

type PreviewPreRenderPayload struct {
	ApplicationID string `json:"application_id"`
}

// Enqueuer queues background jobs. A nil inner client (Redis not configured)
// turns every enqueue into a logged no-op.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisAddr string) *Enqueuer {
	if redisAddr == "" {
		return &Enqueuer{}
	}
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

// EnqueuePreviewPreRender queues a cache-warming render after an assessment
// changes, so the officer's next preview is a cache hit.
func (e *Enqueuer) EnqueuePreviewPreRender(applicationID string) error {
	if e.client == nil {
		config.Logger.Debug("Task queue disabled, skipping pre-render",
			zap.String("applicationId", applicationID))
		return nil
	}

	payload, err := json.Marshal(PreviewPreRenderPayload{ApplicationID: applicationID})
	if err != nil {
		return fmt.Errorf("failed to encode pre-render payload: %w", err)
	}

	task := asynq.NewTask(TypePreviewPreRender, payload)
	info, err := e.client.Enqueue(task, asynq.MaxRetry(2), asynq.Queue("exports"))
	if err != nil {
		return fmt.Errorf("failed to enqueue pre-render task: %w", err)
	}

	config.Logger.Info("Preview pre-render queued",
		zap.String("applicationId", applicationID),
		zap.String("taskId", info.ID),
	)
	return nil
}

func (e *Enqueuer) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}
