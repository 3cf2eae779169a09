package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// PreviewCacheVersion is baked into every cache key so a mapper change
// invalidates stale previews without a flush.
const PreviewCacheVersion = "v2"

// StableSerialize renders a value as JSON with object keys sorted at every
// nesting level, so two structurally equal maps built in different insertion
// orders serialize identically. Nil values serialize as null. Required for
// deterministic preview cache keys.
func StableSerialize(value interface{}) string {
	var b strings.Builder
	writeStable(&b, value)
	return b.String()
}

func writeStable(b *strings.Builder, value interface{}) {
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("{")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(",")
			}
			writeScalar(b, k)
			b.WriteString(":")
			writeStable(b, v[k])
		}
		b.WriteString("}")
	case []interface{}:
		b.WriteString("[")
		for i, item := range v {
			if i > 0 {
				b.WriteString(",")
			}
			writeStable(b, item)
		}
		b.WriteString("]")
	default:
		writeScalar(b, v)
	}
}

func writeScalar(b *strings.Builder, value interface{}) {
	encoded, err := json.Marshal(value)
	if err != nil {
		b.WriteString("null")
		return
	}
	b.Write(encoded)
}

// PreviewCacheKey derives the deterministic cache key for a rendered PDF
// preview from everything that influences its bytes.
func PreviewCacheKey(applicationID string, swornOnly bool, data TemplateData) string {
	payload := map[string]interface{}{
		"cacheVersion":  PreviewCacheVersion,
		"applicationId": applicationID,
		"swornOnly":     swornOnly,
		"templateData":  map[string]interface{}(data),
	}
	digest := sha256.Sum256([]byte(StableSerialize(payload)))
	return "preview:" + hex.EncodeToString(digest[:])
}
