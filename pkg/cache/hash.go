package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/minio/highwayhash"

	"github.com/matzehuels/depchecker/pkg/buildinfo"
)

// fingerprintKey is fixed so fingerprints stay stable across runs.
var fingerprintKey = []byte("depchecker-scan-fingerprint-0001")

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Fingerprint returns a 64-bit HighwayHash of content as 16 hex digits.
func Fingerprint(content []byte) (string, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(content); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// ScanKey builds the key of a scan result:
// scan:<scanner>:<version>:<fingerprint>. The version keeps results of an
// older depchecker from being served after an upgrade.
func ScanKey(scanner string, content []byte) (string, error) {
	fp, err := Fingerprint(content)
	if err != nil {
		return "", err
	}
	return "scan:" + scanner + ":" + buildinfo.Resolved() + ":" + fp, nil
}
