// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Snapshot is one loaded dataset.
//
// The node list is never resized or reordered after construction. The
// hierarchy builder may rewrite node annotations in place, which is
// idempotent for the same node list.
type Snapshot struct {
	Nodes       []*CertificateNode
	Fingerprint string    // content hash of the records that shape the graph
	Duplicates  int       // records replaced by a later record with the same id
	LoadedAt    time.Time // zero for the empty snapshot
}

// Len returns the number of nodes in the snapshot.
func (s *Snapshot) Len() int { return len(s.Nodes) }

// NewSnapshot builds a snapshot from records with last-write-wins on
// duplicate version ids.
func NewSnapshot(records []Record, loadedAt time.Time) *Snapshot {
	nodes, dups := NewNodes(records)
	return &Snapshot{
		Nodes:       nodes,
		Fingerprint: Fingerprint(nodes),
		Duplicates:  dups,
		LoadedAt:    loadedAt,
	}
}

// emptySnapshot is what a Store holds before the first load and after Clear.
var emptySnapshot = &Snapshot{Fingerprint: Fingerprint(nil)}

// Fingerprint hashes the fields of nodes that affect grouping and chain
// structure. Equal node lists always produce the same fingerprint.
func Fingerprint(nodes []*CertificateNode) string {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes
	for _, n := range nodes {
		for _, field := range []string{
			n.VersionID,
			n.IssuerVersion,
			n.Foundation,
			n.CertName,
			strconv.FormatBool(n.IsCA),
			strconv.FormatBool(n.Transitional),
		} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Store holds the current snapshot and swaps it atomically.
//
// Readers always observe either the old or the new snapshot, never a mix.
// Concurrent replacements are last-replace-wins. The zero value is ready to
// use and holds an empty snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Current returns the active snapshot. It never returns nil.
func (s *Store) Current() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return emptySnapshot
}

// Replace installs a snapshot built from records and returns it.
func (s *Store) Replace(records []Record) *Snapshot {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	snap := NewSnapshot(records, now())
	s.current.Store(snap)
	return snap
}

// Clear discards the dataset.
func (s *Store) Clear() { s.current.Store(emptySnapshot) }
