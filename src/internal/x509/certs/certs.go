// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// PEM block types accepted as certificates. "PKCS7" blocks carry a
// certificate bundle and are unpacked.
const (
	blockCertificate = "CERTIFICATE"
	blockPKCS7       = "PKCS7"
)

// Certificate decodes [X.509] certificates from PEM, DER and PKCS#7 input.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: blockCertificate,
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// DecodeMultiple decodes every certificate in data.
//
// PEM input may mix CERTIFICATE and PKCS7 blocks; other block types (keys,
// CSRs) are rejected. Binary input is tried as concatenated DER first and
// as a PKCS#7 container second.
//
// Parameters:
//   - data: PEM, DER or PKCS#7 encoded bundle
//
// Returns:
//   - []*x509.Certificate: Certificates in input order
//   - error: Wrapped sentinel error describing the first failure
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if !c.IsPEM(data) {
		return c.decodeBinary(data)
	}

	var certs []*x509.Certificate
	for len(bytes.TrimSpace(data)) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		data = rest

		switch block.Type {
		case c.certBlockType:
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
			}
			certs = append(certs, cert)
		case blockPKCS7:
			bundle, err := c.decodePKCS7(block.Bytes)
			if err != nil {
				return nil, err
			}
			certs = append(certs, bundle...)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidBlockType, block.Type)
		}
	}

	if len(certs) == 0 {
		return nil, ErrInvalidPEMBlock
	}
	return certs, nil
}

// Decode decodes the first certificate in data.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	certs, err := c.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

func (c *Certificate) decodeBinary(data []byte) ([]*x509.Certificate, error) {
	certs, err := x509.ParseCertificates(data)
	if err == nil && len(certs) > 0 {
		return certs, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	bundle, p7err := c.decodePKCS7(data)
	if p7err == nil {
		return bundle, nil
	}
	if errors.Is(p7err, ErrNoCertificatesInPKCS) {
		return nil, p7err
	}
	if err == nil {
		err = errors.New("empty input")
	}
	return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
}

func (c *Certificate) decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsePKCS7, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates, nil
}
