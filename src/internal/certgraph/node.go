// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

// Sentinel depths written by [BuildHierarchy].
//
// Values 1..95 are ordinary hierarchy levels. Everything from 96 upward marks
// an anomaly rather than a real position in the chain.
const (
	DepthRoot         = 1  // CA without issuer
	DepthDanglingCA   = 2  // CA whose issuer is unknown, also the minimum non-root CA depth
	DepthRunaway      = 96 // walk exceeded the hop bound
	DepthDanglingLeaf = 97 // leaf whose issuer is unknown, always overridden to DepthLeaf
	DepthCycle        = 98 // issuer chain revisits a node
	DepthLeaf         = 99 // every non-CA node
)

// shortIDLen is the length of a derived VersionIDShort.
const shortIDLen = 8

// CertificateNode is one certificate version in a dataset.
//
// The fields above the blank line come from ingestion and are never changed by
// the engine. Depth, Parent, Trace, CycleDetected and Dangling are owned by
// [BuildHierarchy] and rewritten on every build.
type CertificateNode struct {
	VersionID      string   // unique key within a dataset
	VersionIDShort string   // display form, not unique
	CertName       string   // grouping key
	Foundation     string   // grouping key
	IssuerVersion  string   // VersionID of the issuer, empty for a claimed root
	IsCA           bool     // certificate authority
	Transitional   bool     // temporary authority during rotation
	Active         bool     // currently deployed version
	DaysRemaining  *int     // nil means no expiry date
	ValidUntil     string   // raw expiry timestamp as supplied
	Deployments    []string // canonical deployment tags
	Location       string
	RotationStatus string

	Depth         int              // tier depth or sentinel
	Parent        *CertificateNode // lookup only, nil when the issuer is unresolved
	Trace         string           // root-to-node chain description
	CycleDetected bool             // issuer chain loops back on itself
	Dangling      bool             // issuer chain ends at an unknown id
}

// IsRoot reports whether the node is a CA that claims no issuer.
func (n *CertificateNode) IsRoot() bool { return n.IsCA && n.IssuerVersion == "" }

// Bucket returns the urgency bucket for the node's remaining days.
func (n *CertificateNode) Bucket() Bucket { return BucketFor(n.DaysRemaining) }

// Label returns the "{certName}({versionIdShort})" form used in traces.
func (n *CertificateNode) Label() string { return n.CertName + "(" + n.VersionIDShort + ")" }

// resetAnnotations clears every field owned by the hierarchy builder.
func (n *CertificateNode) resetAnnotations() {
	n.Depth = 0
	n.Parent = nil
	n.Trace = ""
	n.CycleDetected = false
	n.Dangling = false
}

// Record is a raw certificate record as handed over by an ingestion layer.
//
// DaysRemaining and Deployments are loosely typed because upstream data
// carries them in several shapes; [NewNodes] converts them once so that no
// consumer downstream has to branch on type.
type Record struct {
	VersionID      string `json:"versionId"`
	VersionIDShort string `json:"versionIdShort,omitempty"`
	CertName       string `json:"certName"`
	Foundation     string `json:"foundation"`
	IssuerVersion  string `json:"issuerVersion,omitempty"`
	IsCA           bool   `json:"isCA"`
	Transitional   bool   `json:"transitional"`
	Active         bool   `json:"active"`
	DaysRemaining  any    `json:"daysRemaining,omitempty"`
	ValidUntil     string `json:"validUntil,omitempty"`
	Deployments    any    `json:"deployments,omitempty"`
	Location       string `json:"location,omitempty"`
	RotationStatus string `json:"rotationStatus,omitempty"`
}

// NewNode converts a single record into a node.
func NewNode(r Record) *CertificateNode {
	short := r.VersionIDShort
	if short == "" {
		short = shortID(r.VersionID)
	}

	return &CertificateNode{
		VersionID:      r.VersionID,
		VersionIDShort: short,
		CertName:       r.CertName,
		Foundation:     r.Foundation,
		IssuerVersion:  r.IssuerVersion,
		IsCA:           r.IsCA,
		Transitional:   r.Transitional,
		Active:         r.Active,
		DaysRemaining:  ParseDays(r.DaysRemaining),
		ValidUntil:     r.ValidUntil,
		Deployments:    NormalizeDeployments(r.Deployments),
		Location:       r.Location,
		RotationStatus: r.RotationStatus,
	}
}

// NewNodes converts records into nodes, resolving duplicate version ids.
//
// A later record with an already seen VersionID replaces the earlier one in
// place, so the output keeps first-seen order while the last write wins.
// The number of replaced records is returned for reporting.
func NewNodes(records []Record) ([]*CertificateNode, int) {
	nodes := make([]*CertificateNode, 0, len(records))
	pos := make(map[string]int, len(records))
	duplicates := 0

	for _, r := range records {
		n := NewNode(r)
		if i, ok := pos[n.VersionID]; ok {
			nodes[i] = n
			duplicates++
			continue
		}
		pos[n.VersionID] = len(nodes)
		nodes = append(nodes, n)
	}

	return nodes, duplicates
}

func shortID(id string) string {
	r := []rune(id)
	if len(r) <= shortIDLen {
		return id
	}
	return string(r[:shortIDLen])
}
