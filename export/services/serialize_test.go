package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStableSerializeSortsKeys(t *testing.T) {
	a := map[string]interface{}{"b": float64(1), "a": float64(2)}
	b := map[string]interface{}{"a": float64(2), "b": float64(1)}

	assert.Equal(t, `{"a":2,"b":1}`, StableSerialize(a))
	assert.Equal(t, StableSerialize(a), StableSerialize(b))
}

func TestStableSerializeNested(t *testing.T) {
	value := map[string]interface{}{
		"outer": map[string]interface{}{"z": nil, "a": "x"},
		"list":  []interface{}{float64(1), "two", nil},
	}
	assert.Equal(t, `{"list":[1,"two",null],"outer":{"a":"x","z":null}}`, StableSerialize(value))
}

func TestPreviewCacheKeyDeterministic(t *testing.T) {
	data := TemplateData{"businessName": "Store", "grand_total": "500"}
	same := TemplateData{"grand_total": "500", "businessName": "Store"}

	key := PreviewCacheKey("app-1", false, data)
	assert.Equal(t, key, PreviewCacheKey("app-1", false, same))
	assert.Contains(t, key, "preview:")

	assert.NotEqual(t, key, PreviewCacheKey("app-2", false, data))
	assert.NotEqual(t, key, PreviewCacheKey("app-1", true, data))

	changed := TemplateData{"businessName": "Store", "grand_total": "501"}
	assert.NotEqual(t, key, PreviewCacheKey("app-1", false, changed))
}
