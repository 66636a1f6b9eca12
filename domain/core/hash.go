package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SnapshotHash identifies a loaded source table by content
type SnapshotHash Hash

func NewSnapshotHash(data []byte) SnapshotHash { return SnapshotHash(NewHash(data)) }

func (h SnapshotHash) String() string { return Hash(h).String() }

// Short returns the leading 12 hex characters, enough to tell snapshots apart in logs
func (h SnapshotHash) Short() string {
	s := Hash(h).String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

// ComputeSnapshotHash computes a deterministic fingerprint over a table's
// headers and row contents. Cell order within a row is normalized by sorting
// keys so the hash is stable regardless of map iteration order.
func ComputeSnapshotHash(headers []string, rows []map[string]string) SnapshotHash {
	var data strings.Builder
	for _, h := range headers {
		data.WriteString(h)
		data.WriteByte('|')
	}
	data.WriteByte('\n')

	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			data.WriteString(k)
			data.WriteByte('=')
			data.WriteString(row[k])
			data.WriteByte('|')
		}
		data.WriteByte('\n')
	}

	return NewSnapshotHash([]byte(data.String()))
}
