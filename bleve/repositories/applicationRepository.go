package repositories

import (
	"fmt"
	"strings"

	app_services "business-permits-backend/applications/services"
	"business-permits-backend/config"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

const applicationIndex = "applications"

type bleveApplicationDoc struct {
	ID              string `json:"id"`
	ApplicantName   string `json:"applicant_name"`
	BusinessName    string `json:"business_name"`
	ApplicationType string `json:"application_type"`
	OverallStatus   string `json:"overall_status"`
	SubmittedAt     int64  `json:"submitted_at"`
}

func applicationDoc(record app_services.BusinessApplicationRecord) bleveApplicationDoc {
	return bleveApplicationDoc{
		ID:              record.ID,
		ApplicantName:   record.ApplicantName,
		BusinessName:    record.BusinessName,
		ApplicationType: record.ApplicationType,
		OverallStatus:   record.OverallStatus,
		SubmittedAt:     record.SubmittedAt,
	}
}

func (r *BleveRepository) IndexSingleApplication(record app_services.BusinessApplicationRecord) error {
	if err := r.indexer.IndexDocument(applicationIndex, record.ID, applicationDoc(record)); err != nil {
		config.Logger.Error("Failed to index application",
			zap.String("id", record.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingApplications(records []app_services.BusinessApplicationRecord) error {
	for _, record := range records {
		if err := r.IndexSingleApplication(record); err != nil {
			return err
		}
	}
	config.Logger.Info("Bulk application indexing complete", zap.Int("count", len(records)))
	return nil
}

func (r *BleveRepository) UpdateApplication(record app_services.BusinessApplicationRecord) error {
	return r.IndexSingleApplication(record)
}

func (r *BleveRepository) DeleteApplication(applicationID string) error {
	return r.indexer.DeleteDocument(applicationIndex, applicationID)
}

// SearchApplications matches the query against the applicant name, business
// name and status fields. Short queries behave as prefix matches so the
// search box works while typing.
func (r *BleveRepository) SearchApplications(queryString string, size int) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(strings.ToLower(queryString))
	if queryString == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	match := bleve.NewMatchQuery(queryString)
	prefix := bleve.NewPrefixQuery(queryString)
	combined := bleve.NewDisjunctionQuery(match, prefix)

	return r.indexer.SearchIndex(applicationIndex, combined, size)
}
