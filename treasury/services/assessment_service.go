package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	app_services "business-permits-backend/applications/services"
	"business-permits-backend/config"
	"business-permits-backend/db/models"
	"business-permits-backend/treasury/repositories"

	"go.uber.org/zap"
)

// AssessmentService serves normalized assessments and applies the write-side
// rules on save: issued-at preservation for unchanged document numbers and
// most-recent-wins across duplicate rows.
type AssessmentService struct {
	Repo repositories.TreasuryRepository
}

func NewAssessmentService(repo repositories.TreasuryRepository) *AssessmentService {
	return &AssessmentService{Repo: repo}
}

// GetLatestAssessment returns the current normalized assessment for an
// application, or (nil, nil) when none exists.
func (s *AssessmentService) GetLatestAssessment(ctx context.Context, applicationUID string) (*TreasuryAssessmentRecord, error) {
	rows, err := s.Repo.GetAssessmentsByApplication(applicationUID)
	if err != nil {
		return nil, err
	}

	records := make([]*TreasuryAssessmentRecord, 0, len(rows))
	for _, row := range rows {
		raw := map[string]interface{}{}
		if err := json.Unmarshal(row.Payload, &raw); err != nil {
			config.Logger.Warn("Skipping assessment with corrupt payload",
				zap.String("id", row.ID.String()), zap.Error(err))
			continue
		}
		record := NormalizeAssessment(raw)
		if record == nil {
			continue
		}
		// Row timestamps stand in when the payload carries none.
		if record.CreatedAt == 0 {
			record.CreatedAt = row.CreatedAt.UnixMilli()
		}
		if record.UpdatedAt == 0 {
			record.UpdatedAt = row.UpdatedAt.UnixMilli()
		}
		records = append(records, record)
	}

	return MostRecent(records), nil
}

// SaveAssessment stores a raw assessment payload for an application. When an
// assessment already exists its row is updated in place; the cedula and
// official-receipt issued-at timestamps survive a re-save with unchanged
// numbers.
func (s *AssessmentService) SaveAssessment(ctx context.Context, applicationUID string, raw map[string]interface{}, actor string) (*TreasuryAssessmentRecord, error) {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	raw["application_uid"] = applicationUID

	incoming := NormalizeAssessment(raw)
	if incoming == nil {
		return nil, fmt.Errorf("assessment payload is missing an application identifier")
	}

	previous, err := s.GetLatestAssessment(ctx, applicationUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	var prevCedulaNo, prevORNo string
	var prevCedulaAt, prevORAt int64
	if previous != nil {
		prevCedulaNo, prevCedulaAt = previous.CedulaNo, previous.CedulaIssuedAt
		prevORNo, prevORAt = previous.ORNo, previous.ORIssuedAt
	}
	raw["cedula_issued_at"] = float64(PreserveIssuedAt(prevCedulaNo, prevCedulaAt, incoming.CedulaNo, now))
	raw["or_issued_at"] = float64(PreserveIssuedAt(prevORNo, prevORAt, incoming.ORNo, now))
	raw["updated_at"] = float64(now)

	payloadBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assessment payload: %w", err)
	}

	rows, err := s.Repo.GetAssessmentsByApplication(applicationUID)
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		// Always write to the newest row; older duplicates stay untouched
		// and lose on every read.
		row := rows[0]
		row.Payload = payloadBytes
		row.UpdatedBy = &actor
		if err := s.Repo.UpdateAssessment(&row); err != nil {
			return nil, err
		}
	} else {
		row := models.TreasuryAssessment{
			ApplicationUID: applicationUID,
			Payload:        payloadBytes,
			CreatedBy:      actor,
		}
		if err := s.Repo.CreateAssessment(&row); err != nil {
			return nil, err
		}
	}

	saved := NormalizeAssessment(raw)
	config.Logger.Info("Assessment saved",
		zap.String("applicationUid", applicationUID),
		zap.String("actor", actor),
		zap.String("grandTotal", app_services.AsString(raw["grand_total"])),
	)
	return saved, nil
}
