package services

import (
	"fmt"
	"strconv"
	"strings"
)

// ReviewRequirementFile sets the status of an uploaded file inside the raw
// application payload, in place. The requirement is addressed by its derived
// id (name slug plus positional index, the same id the read path serves).
// fileName selects one file; an empty fileName reviews every file under the
// requirement. Entries are mutated through their map references, so the
// caller's payload is updated directly.
func ReviewRequirementFile(raw map[string]interface{}, requirementID, fileName, status string) error {
	reqMap := findRequirement(raw["requirements"], requirementID)
	if reqMap == nil {
		return fmt.Errorf("requirement %s not found", requirementID)
	}

	updated := 0
	for _, entry := range EntriesInOrder(reqMap["files"]) {
		fileMap := AsMap(entry)
		if fileMap == nil {
			continue
		}
		if fileName != "" && AsString(fileMap["name"]) != fileName {
			continue
		}
		fileMap["status"] = status
		updated++
	}

	if updated == 0 {
		if fileName != "" {
			return fmt.Errorf("file %s not found under requirement %s", fileName, requirementID)
		}
		return fmt.Errorf("requirement %s has no files to review", requirementID)
	}
	return nil
}

// findRequirement walks the raw requirements container in the same order the
// normalizer does, so derived ids resolve to the same entries the client saw.
func findRequirement(raw interface{}, requirementID string) map[string]interface{} {
	for i, entry := range EntriesInOrder(raw) {
		reqMap := AsMap(entry)
		if reqMap == nil {
			continue
		}
		name := strings.TrimSpace(AsString(reqMap["name"]))
		if Slug(name)+"-"+strconv.Itoa(i) == requirementID {
			return reqMap
		}
	}
	return nil
}
