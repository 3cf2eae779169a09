package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewFixture() map[string]interface{} {
	return map[string]interface{}{
		"requirements": []interface{}{
			map[string]interface{}{
				"name": "Barangay Clearance",
				"files": []interface{}{
					map[string]interface{}{"name": "scan.pdf", "status": "pending review"},
					map[string]interface{}{"name": "retake.pdf", "status": "pending review"},
				},
			},
			map[string]interface{}{
				"name":  "Fire Safety Certificate",
				"files": []interface{}{},
			},
		},
	}
}

func TestReviewRequirementFileSingleFile(t *testing.T) {
	raw := reviewFixture()

	err := ReviewRequirementFile(raw, "barangay-clearance-0", "scan.pdf", "approved")
	require.NoError(t, err)

	record := NormalizeApplication("app-1", raw)
	files := record.Requirements[0].Files
	statuses := map[string]string{}
	for _, f := range files {
		statuses[f.Name] = f.Status
	}
	assert.Equal(t, "approved", statuses["scan.pdf"])
	assert.Equal(t, "pending review", statuses["retake.pdf"])
	// One file still pending keeps the requirement pending.
	assert.Equal(t, RequirementPending, record.Requirements[0].State)
}

func TestReviewRequirementFileWholeRequirement(t *testing.T) {
	raw := reviewFixture()

	err := ReviewRequirementFile(raw, "barangay-clearance-0", "", "approved")
	require.NoError(t, err)

	record := NormalizeApplication("app-1", raw)
	assert.Equal(t, RequirementApproved, record.Requirements[0].State)
}

func TestReviewRequirementFileErrors(t *testing.T) {
	raw := reviewFixture()

	err := ReviewRequirementFile(raw, "nonexistent-9", "", "approved")
	assert.Error(t, err)

	err = ReviewRequirementFile(raw, "barangay-clearance-0", "missing.pdf", "approved")
	assert.Error(t, err)

	// A requirement without files has nothing to review.
	err = ReviewRequirementFile(raw, "fire-safety-certificate-1", "", "approved")
	assert.Error(t, err)
}
