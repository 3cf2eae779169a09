package services

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MergePDFs concatenates the given PDF documents in order into a single
// document. Empty inputs are skipped; a single surviving document is returned
// as is.
func MergePDFs(documents ...[]byte) ([]byte, error) {
	parts := make([][]byte, 0, len(documents))
	for _, doc := range documents {
		if len(doc) > 0 {
			parts = append(parts, doc)
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("nothing to merge")
	}
	if len(parts) == 1 {
		return parts[0], nil
	}

	readers := make([]io.ReadSeeker, len(parts))
	for i, part := range parts {
		readers[i] = bytes.NewReader(part)
	}

	var merged bytes.Buffer
	if err := api.MergeRaw(readers, &merged, false, nil); err != nil {
		return nil, fmt.Errorf("failed to merge documents: %w", err)
	}
	return merged.Bytes(), nil
}
