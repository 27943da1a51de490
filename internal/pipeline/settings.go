// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SettingsKey fingerprints the configuration values that shape an outline.
// Cached outlines saved under a different key are not reused.
func SettingsKey(v ...any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
