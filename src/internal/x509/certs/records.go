// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"math"
	"time"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
)

// ToRecords maps certificates to records for the hierarchy engine.
//
// The version id is the hex subject key id, or the SHA-256 fingerprint of
// the raw certificate when the extension is absent. The issuer pointer is
// the hex authority key id and is left empty for self-signed certificates
// so they read as roots. Days remaining are floored relative to now.
//
// Parameters:
//   - certs: Decoded certificates
//   - foundation: Foundation assigned to every record
//   - now: Reference time for the remaining validity
//
// Returns:
//   - []certgraph.Record: One record per certificate, in input order
func ToRecords(certs []*x509.Certificate, foundation string, now time.Time) []certgraph.Record {
	records := make([]certgraph.Record, 0, len(certs))
	for _, cert := range certs {
		records = append(records, certgraph.Record{
			VersionID:     VersionID(cert),
			CertName:      CommonName(cert),
			Foundation:    foundation,
			IssuerVersion: IssuerID(cert),
			IsCA:          cert.IsCA,
			Active:        !now.Before(cert.NotBefore) && !now.After(cert.NotAfter),
			DaysRemaining: DaysRemaining(cert, now),
			ValidUntil:    cert.NotAfter.UTC().Format(time.RFC3339),
			Deployments:   cert.DNSNames,
		})
	}
	return records
}

// VersionID returns the identifier a certificate is indexed by.
func VersionID(cert *x509.Certificate) string {
	if len(cert.SubjectKeyId) > 0 {
		return hex.EncodeToString(cert.SubjectKeyId)
	}
	sum := sha256.Sum256(cert.Raw)
	return hex.EncodeToString(sum[:])
}

// IssuerID returns the version id of the certificate's issuer, or an
// empty string when the certificate is self-signed or names no authority
// key.
func IssuerID(cert *x509.Certificate) string {
	if len(cert.AuthorityKeyId) == 0 {
		return ""
	}
	if bytes.Equal(cert.AuthorityKeyId, cert.SubjectKeyId) {
		return ""
	}
	return hex.EncodeToString(cert.AuthorityKeyId)
}

// CommonName returns the subject CN, falling back to the full subject
// string and then to the first DNS name.
func CommonName(cert *x509.Certificate) string {
	if cert.Subject.CommonName != "" {
		return cert.Subject.CommonName
	}
	if s := cert.Subject.String(); s != "" {
		return s
	}
	if len(cert.DNSNames) > 0 {
		return cert.DNSNames[0]
	}
	return ""
}

// DaysRemaining returns whole days until NotAfter, floored, negative once
// expired.
func DaysRemaining(cert *x509.Certificate, now time.Time) int {
	return int(math.Floor(cert.NotAfter.Sub(now).Hours() / 24))
}
