package repositories

import (
	"context"

	app_services "business-permits-backend/applications/services"
	bleveindex "business-permits-backend/bleve/services"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	// General
	DeleteAllIndices(ctx context.Context) error

	// ==== Application Indexing ====
	IndexSingleApplication(record app_services.BusinessApplicationRecord) error
	IndexExistingApplications(records []app_services.BusinessApplicationRecord) error
	UpdateApplication(record app_services.BusinessApplicationRecord) error
	DeleteApplication(applicationID string) error
	SearchApplications(queryString string, size int) (*bleve.SearchResult, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
