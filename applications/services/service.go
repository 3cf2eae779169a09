package services

import (
	"context"
	"encoding/json"
	"fmt"

	"business-permits-backend/applications/repositories"
	"business-permits-backend/db/models"
)

// DecodePayload unmarshals a stored application payload. A corrupt payload is
// an error here, not a fail-soft case: the row exists but cannot be served.
func DecodePayload(payload []byte) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	if len(payload) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode application payload: %w", err)
	}
	return raw, nil
}

// ApplicationService serves normalized application records, merging the
// payload chat with messages written through the review threads.
type ApplicationService struct {
	Repo     repositories.ApplicationRepository
	Messages repositories.RequirementMessageRepository
}

func NewApplicationService(repo repositories.ApplicationRepository, messages repositories.RequirementMessageRepository) *ApplicationService {
	return &ApplicationService{Repo: repo, Messages: messages}
}

// GetApplication loads and normalizes one application.
func (s *ApplicationService) GetApplication(ctx context.Context, id string) (BusinessApplicationRecord, error) {
	row, err := s.Repo.GetApplicationByID(id)
	if err != nil {
		return BusinessApplicationRecord{}, err
	}

	raw, err := DecodePayload(row.Payload)
	if err != nil {
		return BusinessApplicationRecord{}, err
	}

	record := NormalizeApplication(row.ID, raw)

	if s.Messages != nil {
		stored, err := s.Messages.GetApplicationMessages(id)
		if err != nil {
			return BusinessApplicationRecord{}, err
		}
		mergeStoredMessages(&record, stored)
	}

	return record, nil
}

// mergeStoredMessages appends review-thread messages from the database to the
// payload chat, keeping each thread sorted by send time. Messages arrive
// pre-sorted from the repository, so only threads that mix both sources need
// a re-sort.
func mergeStoredMessages(record *BusinessApplicationRecord, stored []models.RequirementMessage) {
	if len(stored) == 0 {
		return
	}
	if record.Chat == nil {
		record.Chat = map[string][]RequirementChatMessage{}
	}

	touched := map[string]bool{}
	for _, msg := range stored {
		record.Chat[msg.RequirementName] = append(record.Chat[msg.RequirementName], RequirementChatMessage{
			Sender: msg.SenderName,
			Text:   msg.Body,
			SentAt: msg.SentAt.UnixMilli(),
		})
		touched[msg.RequirementName] = true
	}

	for thread := range touched {
		sortMessages(record.Chat[thread])
	}
}
