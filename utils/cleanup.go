package utils

import (
	"os"
	"strconv"
	"time"

	"business-permits-backend/config"
	"business-permits-backend/export/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCleanupScheduler registers the nightly job that removes generated
// documents past their retention window, both the file on disk and the
// database record. Returns the scheduler so the caller can stop it on
// shutdown.
func StartCleanupScheduler(documentRepo repositories.DocumentRepository) *cron.Cron {
	retentionDays := 30
	if v, err := strconv.Atoi(config.GetEnv("DOCUMENT_RETENTION_DAYS")); err == nil && v > 0 {
		retentionDays = v
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc("0 2 * * *", func() {
		cleanupExpiredDocuments(documentRepo, retentionDays)
	})
	if err != nil {
		config.Logger.Error("Failed to schedule document cleanup", zap.Error(err))
		return scheduler
	}

	scheduler.Start()
	config.Logger.Info("Document cleanup scheduled",
		zap.Int("retentionDays", retentionDays))
	return scheduler
}

func cleanupExpiredDocuments(documentRepo repositories.DocumentRepository, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	documents, err := documentRepo.GetDocumentsOlderThan(cutoff)
	if err != nil {
		config.Logger.Error("Document cleanup query failed", zap.Error(err))
		return
	}

	removed := 0
	for _, document := range documents {
		if err := os.Remove(document.FilePath); err != nil && !os.IsNotExist(err) {
			config.Logger.Warn("Failed to remove expired document file",
				zap.String("path", document.FilePath), zap.Error(err))
			continue
		}
		if err := documentRepo.DeleteDocument(&document); err != nil {
			config.Logger.Warn("Failed to delete expired document record",
				zap.String("id", document.ID.String()), zap.Error(err))
			continue
		}
		removed++
	}

	config.Logger.Info("Document cleanup finished",
		zap.Int("expired", len(documents)),
		zap.Int("removed", removed),
	)
}
