package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"business-permits-backend/config"
	export_services "business-permits-backend/export/services"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes export jobs from the queue.
type Worker struct {
	server        *asynq.Server
	exportService *export_services.ExportService
}

func NewWorker(redisAddr string, exportService *export_services.ExportService) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"exports": 1,
			},
		},
	)
	return &Worker{server: server, exportService: exportService}
}

// Start runs the worker loop in the background.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePreviewPreRender, w.handlePreviewPreRender)

	if err := w.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start task worker: %w", err)
	}
	return nil
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// handlePreviewPreRender renders the full preview once with the cache
// bypassed, leaving the fresh bytes behind for the next interactive request.
func (w *Worker) handlePreviewPreRender(ctx context.Context, task *asynq.Task) error {
	var payload PreviewPreRenderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid pre-render payload: %w", err)
	}

	_, _, _, err := w.exportService.RenderPreviewPDF(ctx, payload.ApplicationID, false, true)
	if err != nil {
		config.Logger.Warn("Preview pre-render failed",
			zap.String("applicationId", payload.ApplicationID),
			zap.Error(err),
		)
		return err
	}

	config.Logger.Info("Preview pre-rendered",
		zap.String("applicationId", payload.ApplicationID))
	return nil
}
