package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// FingerprintLength is the number of hex characters kept from the URL hash.
// 16 hex chars carry 64 bits, enough to make accidental collisions negligible
// for any realistic number of processed items.
const FingerprintLength = 16

// Item is one normalized unit of content produced from a single feed entry.
// Items are immutable after normalization.
type Item struct {
	Title       string
	URL         string
	Body        string
	Published   *time.Time
	FeedName    string
	Category    string
	Fingerprint string
}

// Fingerprint derives the deduplication key for a URL. Equal URLs always
// produce equal fingerprints.
func Fingerprint(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:FingerprintLength]
}
