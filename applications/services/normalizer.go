package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RequirementState is the derived per-requirement approval state.
type RequirementState string

const (
	RequirementPending  RequirementState = "pending"
	RequirementApproved RequirementState = "approved"
	RequirementRejected RequirementState = "rejected"
)

// Overall status labels shown to citizens and staff.
const (
	StatusPendingReview = "Pending Review"
	StatusApproved      = "Approved"
	StatusIncomplete    = "Incomplete"
)

// BusinessRequirementFile is one uploaded piece of evidence for a requirement.
type BusinessRequirementFile struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Status     string `json:"status"`
	UploadedAt int64  `json:"uploadedAt"`
}

// BusinessRequirement is a named document category the applicant must
// satisfy. Name is unique within an application and doubles as the
// chat-thread key.
type BusinessRequirement struct {
	ID    string                    `json:"id"`
	Name  string                    `json:"name"`
	State RequirementState          `json:"state"`
	Files []BusinessRequirementFile `json:"files"`
}

// RequirementChatMessage is one message in a requirement's approval thread.
type RequirementChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	SentAt int64  `json:"sentAt"`
}

// BusinessApplicationRecord is the canonical read-time projection of a raw
// application payload. It is never persisted; OverallStatus is always derived
// from the requirement file states.
type BusinessApplicationRecord struct {
	ID              string                              `json:"id"`
	ApplicantUID    string                              `json:"applicantUid"`
	ApplicantName   string                              `json:"applicantName"`
	BusinessName    string                              `json:"businessName"`
	ApplicationType string                              `json:"applicationType"`
	Form            map[string]interface{}              `json:"form"`
	OverallStatus   string                              `json:"overallStatus"`
	SubmittedAt     int64                               `json:"submittedAt"`
	ApprovedAt      int64                               `json:"approvedAt"`
	Requirements    []BusinessRequirement               `json:"requirements"`
	Chat            map[string][]RequirementChatMessage `json:"chat"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases a requirement name and collapses non-alphanumeric runs to
// single hyphens. An empty result falls back to "requirement".
func Slug(name string) string {
	s := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "requirement"
	}
	return s
}

// FileState folds a single free-text file status into the pending/rejected/
// approved vocabulary used by DeriveRequirementState. Matching is substring
// based and case insensitive because legacy records carry free text; a status
// like "not approved" therefore counts as approved. Intentional: changing it
// would silently reclassify historical applications.
func fileStatusClass(status string) RequirementState {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" || s == "updated" || strings.Contains(s, "pending") {
		return RequirementPending
	}
	if strings.Contains(s, "reject") {
		return RequirementRejected
	}
	if strings.Contains(s, "approve") {
		return RequirementApproved
	}
	return RequirementPending
}

// DeriveRequirementState computes a requirement's state from its files.
// Priority: any pending-class file wins, then any rejection, then approvals;
// a requirement with no files is pending.
func DeriveRequirementState(files []BusinessRequirementFile) RequirementState {
	anyRejected := false
	anyApproved := false
	for _, f := range files {
		switch fileStatusClass(f.Status) {
		case RequirementPending:
			return RequirementPending
		case RequirementRejected:
			anyRejected = true
		case RequirementApproved:
			anyApproved = true
		}
	}
	if anyRejected {
		return RequirementRejected
	}
	if anyApproved {
		return RequirementApproved
	}
	return RequirementPending
}

// DeriveOverallStatus aggregates requirement states into the application's
// overall status. fallback is the stored meta.overallStatus, used only when
// no requirement state is decisive.
func DeriveOverallStatus(requirements []BusinessRequirement, fallback string) string {
	anyPending := false
	anyRejected := false
	allApproved := len(requirements) > 0
	for _, req := range requirements {
		switch req.State {
		case RequirementPending:
			anyPending = true
			allApproved = false
		case RequirementRejected:
			anyRejected = true
			allApproved = false
		}
	}
	if anyPending {
		return StatusPendingReview
	}
	if allApproved {
		return StatusApproved
	}
	if anyRejected {
		return StatusIncomplete
	}
	return fallback
}

// NormalizeApplication converts a raw application payload into the canonical
// record. It is a pure projection: malformed fields degrade to zero values
// and it never fails.
func NormalizeApplication(id string, raw map[string]interface{}) BusinessApplicationRecord {
	form := AsMap(raw["form"])
	meta := AsMap(raw["meta"])

	record := BusinessApplicationRecord{
		ID:           id,
		ApplicantUID: AsString(raw["applicantUid"]),
		BusinessName: strings.TrimSpace(AsString(form["businessName"])),
		Form:         form,
	}
	if record.ApplicantUID == "" {
		record.ApplicantUID = AsString(meta["applicantUid"])
	}

	record.ApplicantName = applicantName(form, record.BusinessName)
	record.ApplicationType = "New"
	if AsString(form["applicationType"]) == "Renewal" {
		record.ApplicationType = "Renewal"
	}

	record.Requirements = normalizeRequirements(raw["requirements"])
	record.Chat = normalizeChat(raw["chat"])
	record.OverallStatus = DeriveOverallStatus(record.Requirements, AsString(meta["overallStatus"]))

	record.SubmittedAt = AsMillis(form["dateOfApplication"])
	if record.SubmittedAt == 0 {
		record.SubmittedAt = AsMillis(form["registrationDate"])
	}
	if record.SubmittedAt == 0 && IsNumeric(meta["updatedAt"]) {
		record.SubmittedAt = AsMillis(meta["updatedAt"])
	}

	record.ApprovedAt = resolveApprovedAt(meta, record)

	return record
}

func applicantName(form map[string]interface{}, businessName string) string {
	parts := []string{}
	for _, key := range []string{"firstName", "middleName", "lastName"} {
		if p := strings.TrimSpace(AsString(form[key])); p != "" {
			parts = append(parts, p)
		}
	}
	if name := strings.Join(parts, " "); name != "" {
		return name
	}
	if businessName != "" {
		return businessName
	}
	return "Unnamed Applicant"
}

func normalizeRequirements(raw interface{}) []BusinessRequirement {
	entries := EntriesInOrder(raw)
	requirements := make([]BusinessRequirement, 0, len(entries))
	for i, entry := range entries {
		reqMap := AsMap(entry)
		if reqMap == nil {
			continue
		}
		name := strings.TrimSpace(AsString(reqMap["name"]))
		requirement := BusinessRequirement{
			ID:    Slug(name) + "-" + strconv.Itoa(i),
			Name:  name,
			Files: normalizeFiles(reqMap["files"]),
		}
		requirement.State = DeriveRequirementState(requirement.Files)
		requirements = append(requirements, requirement)
	}
	return requirements
}

func normalizeFiles(raw interface{}) []BusinessRequirementFile {
	entries := EntriesInOrder(raw)
	files := make([]BusinessRequirementFile, 0, len(entries))
	for _, entry := range entries {
		fileMap := AsMap(entry)
		if fileMap == nil {
			continue
		}
		files = append(files, BusinessRequirementFile{
			Name:       AsString(fileMap["name"]),
			URL:        AsString(fileMap["url"]),
			Status:     AsString(fileMap["status"]),
			UploadedAt: AsMillis(fileMap["uploadedAt"]),
		})
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt < files[j].UploadedAt
	})
	return files
}

func normalizeChat(raw interface{}) map[string][]RequirementChatMessage {
	chatMap := AsMap(raw)
	if chatMap == nil {
		return map[string][]RequirementChatMessage{}
	}
	chat := make(map[string][]RequirementChatMessage, len(chatMap))
	for threadKey, rawThread := range chatMap {
		entries := EntriesInOrder(rawThread)
		messages := make([]RequirementChatMessage, 0, len(entries))
		for _, entry := range entries {
			msgMap := AsMap(entry)
			if msgMap == nil {
				continue
			}
			messages = append(messages, RequirementChatMessage{
				Sender: AsString(msgMap["sender"]),
				Text:   AsString(msgMap["text"]),
				SentAt: AsMillis(msgMap["sentAt"]),
			})
		}
		sortMessages(messages)
		chat[threadKey] = messages
	}
	return chat
}

func sortMessages(messages []RequirementChatMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAt < messages[j].SentAt
	})
}

// resolveApprovedAt picks the approval timestamp: explicit meta fields win,
// then (only for approved applications) the latest approval upload, then the
// meta update time.
func resolveApprovedAt(meta map[string]interface{}, record BusinessApplicationRecord) int64 {
	for _, key := range []string{"approvedAt", "approvedOn", "approvalDate", "approvedDate", "dateApproved"} {
		if value, ok := meta[key]; ok && value != nil {
			return AsMillis(value)
		}
	}
	if record.OverallStatus != StatusApproved {
		return 0
	}
	var latest int64
	for _, req := range record.Requirements {
		for _, f := range req.Files {
			if strings.Contains(strings.ToLower(f.Status), "approve") && f.UploadedAt > latest {
				latest = f.UploadedAt
			}
		}
	}
	if latest > 0 {
		return latest
	}
	return AsMillis(meta["updatedAt"])
}
