package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"comboforge/internal/combo"
)

// Key is the structured cache key for a generation result.
type Key struct {
	Mode combo.Mode
	Hash string
}

// String converts the structured key into the final string used in Redis/map.
func (k Key) String() string {
	// combo:<MODE>:<HASH_HEX>
	return fmt.Sprintf("combo:%s:%s", k.Mode, k.Hash)
}

// fingerprintFields fixes the serialization order of the hashed fields.
// Field names are part of the key format; renaming them invalidates every
// cached entry.
type fingerprintFields struct {
	Topic    string     `json:"topic"`
	Mode     combo.Mode `json:"mode"`
	Tone     string     `json:"tone"`
	Seed     string     `json:"seed"`
	LineHint int        `json:"lineHint"`
}

// Fingerprint builds the cache key for a request. The request must already
// be normalized; the same normalized fields always produce the same key, and
// changing any single field changes it.
func Fingerprint(req combo.GenerationRequest) Key {
	body, err := json.Marshal(fingerprintFields{
		Topic:    req.Topic,
		Mode:     req.Mode,
		Tone:     req.Tone,
		Seed:     req.Seed,
		LineHint: req.LineHint,
	})
	if err != nil {
		// A flat struct of strings and ints cannot fail to marshal.
		panic(fmt.Sprintf("cache: fingerprint marshal: %v", err))
	}

	sum := sha256.Sum256(body)
	return Key{
		Mode: req.Mode,
		Hash: hex.EncodeToString(sum[:]),
	}
}

// keyParts is the parsed form of Key.String, used by the logging decorator.
type keyParts struct {
	mode string
	hash string
}

// Expecting: combo:<MODE>:<HASH>
func parseKey(key string) (keyParts, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != "combo" {
		return keyParts{}, false
	}
	return keyParts{mode: parts[1], hash: parts[2]}, true
}
