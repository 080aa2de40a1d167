package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "istqbquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// EmbeddingKey addresses the cached embedding of text for model. Text is hashed so
// keys stay short.
func EmbeddingKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return GenerateCacheKey("embedding", "vector", hex.EncodeToString(sum[:]), model)
}

// SourceLockKey addresses the ingestion lock of a source document.
func SourceLockKey(sourceID string) string {
	return GenerateCacheKey("pipeline", "lock", sourceID)
}
