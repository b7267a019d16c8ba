// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/helper/fieldkey"
	"github.com/goccy/go-json"
)

var (
	// ErrSyntax indicates that the input is not valid JSON.
	ErrSyntax = errors.New("ingest: invalid JSON")

	// ErrShape indicates JSON that is neither a record, a list of records
	// nor an object with a certificates or roots list.
	ErrShape = errors.New("ingest: unsupported document shape")

	// ErrRead indicates a failure to read an input file.
	ErrRead = errors.New("ingest: failed to read file")
)

// Canonical field names, see [fieldkey.Key]. The first name of each list is
// the documented spelling, the rest are aliases found in older exports.
var (
	keyVersionID      = []string{"versionid", "id"}
	keyVersionIDShort = []string{"versionidshort"}
	keyCertName       = []string{"certname", "name"}
	keyFoundation     = []string{"foundation"}
	keyIssuerVersion  = []string{"issuerversion", "issuerversionid", "issuerid"}
	keyIsCA           = []string{"isca", "ca"}
	keyTransitional   = []string{"transitional"}
	keyActive         = []string{"active"}
	keyDaysRemaining  = []string{"daysremaining", "daysuntil"}
	keyValidUntil     = []string{"validuntil", "notafter"}
	keyDeployments    = []string{"deployments", "deploymentslist"}
	keyLocation       = []string{"location"}
	keyRotationStatus = []string{"rotationstatus"}
	keySigns          = []string{"signs", "children"}
	keyLists          = []string{"certificates", "roots"}
)

// dateOnly is the accepted layout for validUntil values without a time.
const dateOnly = "2006-01-02"

// Options controls decoding and loading.
type Options struct {
	// Now is the reference time for daysRemaining derived from validUntil.
	// Nil uses time.Now.
	Now func() time.Time

	// Foundation is assigned to records that carry none. X.509 imports
	// fall back to the file name when it is empty.
	Foundation string

	// Concurrency bounds the number of files read at once by LoadFiles.
	// Zero or less uses DefaultConcurrency.
	Concurrency int

	// Source names the input being decoded. It is appended to synthetic
	// version ids so records without ids stay distinct across inputs.
	// LoadFiles sets it to each file's path.
	Source string
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Decode parses a JSON export into records.
//
// Nested children get the parent's version id as issuer pointer and
// inherit its foundation when they name none. Records without a version id
// get a synthetic one derived from their cert name, position and
// opts.Source so they can still be addressed. Records without an "active"
// field are active.
//
// Parameters:
//   - data: JSON document
//   - opts: Reference clock and default foundation
//
// Returns:
//   - []certgraph.Record: Records in document order, parents before children
//   - error: ErrSyntax or ErrShape, wrapped
func Decode(data []byte, opts Options) ([]certgraph.Record, error) {
	items, err := documentItems(data)
	if err != nil {
		return nil, err
	}

	d := &decoder{now: opts.now(), source: opts.Source, records: make([]certgraph.Record, 0, len(items))}
	for _, item := range items {
		d.walk(item, "", opts.Foundation)
	}
	return d.records, nil
}

// documentItems decodes data and returns its top-level record objects with
// canonical keys.
func documentItems(data []byte) ([]map[string]any, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	var list []any
	switch v := fieldkey.Value(doc).(type) {
	case []any:
		list = v
	case map[string]any:
		if inner, ok := fieldkey.Lookup(v, keyLists...); ok {
			l, ok := inner.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: certificates must be a list", ErrShape)
			}
			list = l
		} else {
			list = []any{v}
		}
	default:
		return nil, fmt.Errorf("%w: top level is %T", ErrShape, v)
	}

	items := make([]map[string]any, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not an object", ErrShape, i)
		}
		items = append(items, m)
	}
	return items, nil
}

type decoder struct {
	now     time.Time
	source  string
	records []certgraph.Record
}

// walk appends the record for m and then its children, depth first.
func (d *decoder) walk(root map[string]any, issuer, foundation string) {
	type frame struct {
		m          map[string]any
		issuer     string
		foundation string
	}
	stack := []frame{{root, issuer, foundation}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r := d.record(f.m, f.issuer, f.foundation)
		d.records = append(d.records, r)

		children, _ := fieldkey.Lookup(f.m, keySigns...)
		list, _ := children.([]any)
		// Push in reverse so children come out in document order.
		for i := len(list) - 1; i >= 0; i-- {
			if child, ok := list[i].(map[string]any); ok {
				stack = append(stack, frame{child, r.VersionID, r.Foundation})
			}
		}
	}
}

func (d *decoder) record(m map[string]any, issuer, foundation string) certgraph.Record {
	r := certgraph.Record{
		VersionID:      stringField(m, keyVersionID),
		VersionIDShort: stringField(m, keyVersionIDShort),
		CertName:       stringField(m, keyCertName),
		Foundation:     stringField(m, keyFoundation),
		IssuerVersion:  stringField(m, keyIssuerVersion),
		IsCA:           boolField(m, keyIsCA, false),
		Transitional:   boolField(m, keyTransitional, false),
		Active:         boolField(m, keyActive, true),
		ValidUntil:     stringField(m, keyValidUntil),
		Location:       stringField(m, keyLocation),
		RotationStatus: stringField(m, keyRotationStatus),
	}

	if r.Foundation == "" {
		r.Foundation = foundation
	}
	if r.IssuerVersion == "" {
		r.IssuerVersion = issuer
	}
	if r.VersionID == "" {
		local := syntheticID(r.CertName, len(d.records))
		if r.VersionIDShort == "" {
			r.VersionIDShort = local
		}
		r.VersionID = local
		if d.source != "" {
			r.VersionID += "@" + d.source
		}
	}

	if v, ok := fieldkey.Lookup(m, keyDaysRemaining...); ok {
		r.DaysRemaining = number(v)
	} else if r.ValidUntil != "" {
		if days, ok := DaysUntil(r.ValidUntil, d.now); ok {
			r.DaysRemaining = days
		}
	}

	if v, ok := fieldkey.Lookup(m, keyDeployments...); ok {
		r.Deployments = v
	}

	return r
}

// syntheticID names a record that carries no version id within one input.
// The position keeps two unnamed records with the same cert name apart.
func syntheticID(certName string, pos int) string {
	if certName == "" {
		certName = "record"
	}
	return fmt.Sprintf("%s#%d", certName, pos)
}

// DaysUntil returns the whole days from now until the timestamp s, floored.
// s is RFC 3339 or a plain date, which is read as midnight UTC.
func DaysUntil(s string, now time.Time) (int, bool) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse(dateOnly, s); err != nil {
			return 0, false
		}
	}
	return int(math.Floor(t.Sub(now).Hours() / 24)), true
}

func stringField(m map[string]any, aliases []string) string {
	v, ok := fieldkey.Lookup(m, aliases...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func boolField(m map[string]any, aliases []string, def bool) bool {
	v, ok := fieldkey.Lookup(m, aliases...)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
		return strings.EqualFold(strings.TrimSpace(b), "yes")
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	default:
		return def
	}
}

// number turns json.Number into float64 so the engine's day parser sees a
// plain numeric value. Other values pass through unchanged.
func number(v any) any {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}
