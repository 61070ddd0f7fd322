// Package cache stores fetched filing text so repeated scans of the
// same accession never re-hit EDGAR. Memory in front for hot batches,
// disk behind for long-lived reuse across runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Cache defines the caching interface
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FilingKey generates a stable cache key for a filing accession.
// Dashes are stripped so 0001193125-26-012345 and its bare form map
// to the same entry.
func FilingKey(cik, accession string) string {
	acc := strings.ReplaceAll(strings.TrimSpace(accession), "-", "")
	return fmt.Sprintf("catalyst:v1:filing:%s:%s", strings.TrimSpace(cik), acc)
}

// URLKey generates a cache key from an arbitrary URL
func URLKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "catalyst:v1:url:" + hex.EncodeToString(hash[:])
}
