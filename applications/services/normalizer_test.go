package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirementPayload(name string, statuses ...string) map[string]interface{} {
	files := []interface{}{}
	for i, status := range statuses {
		files = append(files, map[string]interface{}{
			"name":       "file",
			"status":     status,
			"uploadedAt": float64(1000 + i),
		})
	}
	return map[string]interface{}{"name": name, "files": files}
}

func TestDeriveRequirementState(t *testing.T) {
	cases := []struct {
		name     string
		statuses []string
		want     RequirementState
	}{
		{"all approved", []string{"approved", "Approved by staff"}, RequirementApproved},
		{"empty status wins", []string{"approved", ""}, RequirementPending},
		{"updated exact match is pending", []string{"Updated"}, RequirementPending},
		{"pending substring", []string{"still PENDING review"}, RequirementPending},
		{"reject beats approve", []string{"approved", "rejected"}, RequirementRejected},
		{"no files falls back to pending", nil, RequirementPending},
		{"unknown text falls back to pending", []string{"weird"}, RequirementPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files := []BusinessRequirementFile{}
			for _, s := range tc.statuses {
				files = append(files, BusinessRequirementFile{Status: s})
			}
			assert.Equal(t, tc.want, DeriveRequirementState(files))
		})
	}
}

func TestDeriveOverallStatus(t *testing.T) {
	reqs := func(states ...RequirementState) []BusinessRequirement {
		out := make([]BusinessRequirement, len(states))
		for i, s := range states {
			out[i] = BusinessRequirement{State: s}
		}
		return out
	}

	assert.Equal(t, StatusPendingReview, DeriveOverallStatus(reqs(RequirementApproved, RequirementPending), ""))
	assert.Equal(t, StatusApproved, DeriveOverallStatus(reqs(RequirementApproved, RequirementApproved), ""))
	assert.Equal(t, StatusIncomplete, DeriveOverallStatus(reqs(RequirementApproved, RequirementRejected), ""))
	assert.Equal(t, "Collected", DeriveOverallStatus(nil, "Collected"))
	assert.Equal(t, "", DeriveOverallStatus(nil, ""))
}

func TestNormalizeApplicationApproved(t *testing.T) {
	raw := map[string]interface{}{
		"applicantUid": "uid-9",
		"form": map[string]interface{}{
			"firstName":       "Juan",
			"lastName":        "Dela Cruz",
			"businessName":    "JDC Trading",
			"applicationType": "Renewal",
		},
		"requirements": []interface{}{
			requirementPayload("Barangay Clearance", "approved"),
		},
	}

	record := NormalizeApplication("app-1", raw)

	assert.Equal(t, "app-1", record.ID)
	assert.Equal(t, "Juan Dela Cruz", record.ApplicantName)
	assert.Equal(t, "Renewal", record.ApplicationType)
	assert.Equal(t, StatusApproved, record.OverallStatus)
	require.Len(t, record.Requirements, 1)
	assert.Equal(t, "barangay-clearance-0", record.Requirements[0].ID)
	// No explicit meta approval date, so the latest approved upload wins.
	assert.Equal(t, int64(1000), record.ApprovedAt)
}

func TestNormalizeApplicationNameFallbacks(t *testing.T) {
	record := NormalizeApplication("app-2", map[string]interface{}{
		"form": map[string]interface{}{"businessName": "Sari-Sari Store"},
	})
	assert.Equal(t, "Sari-Sari Store", record.ApplicantName)

	record = NormalizeApplication("app-3", map[string]interface{}{})
	assert.Equal(t, "Unnamed Applicant", record.ApplicantName)
	assert.Equal(t, "New", record.ApplicationType)
	assert.Equal(t, "", record.OverallStatus)
}

func TestNormalizeApplicationPendingBeatsEverything(t *testing.T) {
	raw := map[string]interface{}{
		"requirements": []interface{}{
			requirementPayload("Barangay Clearance", "approved"),
			requirementPayload("Fire Safety", "approved", ""),
		},
	}
	record := NormalizeApplication("app-4", raw)
	assert.Equal(t, StatusPendingReview, record.OverallStatus)
}

func TestNormalizeApplicationSortsFilesAndChat(t *testing.T) {
	raw := map[string]interface{}{
		"requirements": []interface{}{
			map[string]interface{}{
				"name": "Lease Contract",
				"files": []interface{}{
					map[string]interface{}{"status": "approved", "uploadedAt": float64(300)},
					map[string]interface{}{"status": "approved"},
					map[string]interface{}{"status": "approved", "uploadedAt": float64(200)},
				},
			},
		},
		"chat": map[string]interface{}{
			"Lease Contract": []interface{}{
				map[string]interface{}{"text": "second", "sentAt": float64(20)},
				map[string]interface{}{"text": "first", "sentAt": float64(10)},
			},
		},
	}

	record := NormalizeApplication("app-5", raw)
	require.Len(t, record.Requirements, 1)
	files := record.Requirements[0].Files
	require.Len(t, files, 3)
	// Missing uploadedAt sorts first as 0.
	assert.Equal(t, int64(0), files[0].UploadedAt)
	assert.Equal(t, int64(200), files[1].UploadedAt)
	assert.Equal(t, int64(300), files[2].UploadedAt)

	thread := record.Chat["Lease Contract"]
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Text)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "barangay-clearance", Slug("Barangay Clearance"))
	assert.Equal(t, "dti-sec-registration", Slug("DTI / SEC Registration"))
	assert.Equal(t, "requirement", Slug("???"))
}

func TestRenewalRequiresExactMatch(t *testing.T) {
	record := NormalizeApplication("app-6", map[string]interface{}{
		"form": map[string]interface{}{"applicationType": "renewal"},
	})
	assert.Equal(t, "New", record.ApplicationType)
}
