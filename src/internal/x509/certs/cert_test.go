// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	x509certs "github.com/H0llyW00dzZ/certview/src/internal/x509/certs"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type testCert struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

// issue creates a certificate for cn signed by parent, or self-signed when
// parent is nil.
func issue(t testing.TB, cn string, isCA bool, parent *testCert, notAfter time.Time, dns ...string) *testCert {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             notAfter.AddDate(-20, 0, 0),
		NotAfter:              notAfter,
		IsCA:                  isCA,
		BasicConstraintsValid: true,
		DNSNames:              dns,
	}
	if isCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	}

	signer, signerKey := tmpl, key
	if parent != nil {
		signer, signerKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, signer, &key.PublicKey, signerKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return &testCert{cert: cert, key: key}
}

func encodePEM(certs ...*testCert) []byte {
	var out []byte
	for _, c := range certs {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.cert.Raw})...)
	}
	return out
}

func chainFixture(t testing.TB) (root, mid, leaf *testCert) {
	root = issue(t, "Test Root", true, nil, testNow.AddDate(10, 0, 0))
	mid = issue(t, "Test Intermediate", true, root, testNow.AddDate(2, 0, 0))
	leaf = issue(t, "www.example.com", false, mid, testNow.Add(45*24*time.Hour+time.Hour), "www.example.com", "example.com")
	return root, mid, leaf
}

func TestDecodeMultiple(t *testing.T) {
	root, mid, leaf := chainFixture(t)
	decoder := x509certs.New()

	tests := []struct {
		name    string
		data    []byte
		want    int
		wantErr error
	}{
		{"PEM bundle", encodePEM(leaf, mid, root), 3, nil},
		{"PEM with surrounding text", append(append([]byte("# bundle\n"), encodePEM(leaf)...), "\n\n"...), 1, nil},
		{"concatenated DER", append(append([]byte{}, leaf.cert.Raw...), mid.cert.Raw...), 2, nil},
		{"single DER", root.cert.Raw, 1, nil},
		{"private key block", pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{1, 2}}), 0, x509certs.ErrInvalidBlockType},
		{"corrupt PEM payload", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("nope")}), 0, x509certs.ErrParseCertificate},
		{"garbage", []byte("definitely not a certificate"), 0, x509certs.ErrParseCertificate},
		{"empty", nil, 0, x509certs.ErrParseCertificate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certs, err := decoder.DecodeMultiple(tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, certs)
				return
			}
			require.NoError(t, err)
			assert.Len(t, certs, tt.want)
		})
	}
}

func TestDecode(t *testing.T) {
	root, _, leaf := chainFixture(t)
	decoder := x509certs.New()

	cert, err := decoder.Decode(encodePEM(leaf, root))
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", cert.Subject.CommonName)

	cert, err = decoder.Decode(root.cert.Raw)
	require.NoError(t, err)
	assert.Equal(t, "Test Root", cert.Subject.CommonName)

	assert.True(t, decoder.IsPEM(encodePEM(root)))
	assert.False(t, decoder.IsPEM(root.cert.Raw))
}

func TestToRecords(t *testing.T) {
	root, mid, leaf := chainFixture(t)
	records := x509certs.ToRecords([]*x509.Certificate{leaf.cert, mid.cert, root.cert}, "prod", testNow)
	require.Len(t, records, 3)

	l, m, r := records[0], records[1], records[2]

	assert.Equal(t, "www.example.com", l.CertName)
	assert.Equal(t, "prod", l.Foundation)
	assert.False(t, l.IsCA)
	assert.True(t, l.Active)
	assert.Equal(t, 45, l.DaysRemaining)
	assert.Equal(t, []string{"www.example.com", "example.com"}, l.Deployments)
	assert.Equal(t, m.VersionID, l.IssuerVersion, "leaf points at the intermediate")

	assert.True(t, m.IsCA)
	assert.Equal(t, r.VersionID, m.IssuerVersion)

	assert.True(t, r.IsCA)
	assert.Empty(t, r.IssuerVersion, "self-signed roots carry no issuer")
	assert.Equal(t, root.cert.NotAfter.UTC().Format(time.RFC3339), r.ValidUntil)
}

func TestToRecords_BuildsAHierarchy(t *testing.T) {
	root, mid, leaf := chainFixture(t)
	records := x509certs.ToRecords([]*x509.Certificate{leaf.cert, mid.cert, root.cert}, "prod", testNow)

	nodes, dups := certgraph.NewNodes(records)
	require.Zero(t, dups)
	certgraph.BuildHierarchy(nodes, certgraph.HierarchyOptions{})

	assert.Equal(t, certgraph.DepthLeaf, nodes[0].Depth)
	assert.Equal(t, 2, nodes[1].Depth)
	assert.Equal(t, certgraph.DepthRoot, nodes[2].Depth)
	assert.False(t, nodes[0].Dangling)
	assert.Equal(t, "Test Root", nodes[0].Parent.Parent.CertName)
}

func TestToRecords_Expired(t *testing.T) {
	old := issue(t, "Old", false, nil, testNow.Add(-36*time.Hour))
	rec := x509certs.ToRecords([]*x509.Certificate{old.cert}, "", testNow)[0]

	assert.Equal(t, -2, rec.DaysRemaining, "expiry is floored")
	assert.False(t, rec.Active)
}

func TestVersionID_FallsBackToFingerprint(t *testing.T) {
	c := &x509.Certificate{Raw: []byte("raw")}
	assert.Len(t, x509certs.VersionID(c), 64)
	assert.Empty(t, x509certs.IssuerID(c))

	c.SubjectKeyId = []byte{0xab, 0xcd}
	assert.Equal(t, "abcd", x509certs.VersionID(c))

	c.AuthorityKeyId = []byte{0xab, 0xcd}
	assert.Empty(t, x509certs.IssuerID(c), "self-issued")

	c.AuthorityKeyId = []byte{0x01}
	assert.Equal(t, "01", x509certs.IssuerID(c))
}

func TestCommonName(t *testing.T) {
	assert.Equal(t, "cn", x509certs.CommonName(&x509.Certificate{Subject: pkix.Name{CommonName: "cn"}}))
	assert.Equal(t, "O=Org", x509certs.CommonName(&x509.Certificate{Subject: pkix.Name{Organization: []string{"Org"}}}))
	assert.Equal(t, "a.example", x509certs.CommonName(&x509.Certificate{DNSNames: []string{"a.example"}}))
	assert.Empty(t, x509certs.CommonName(&x509.Certificate{}))
}

func BenchmarkDecodeMultiple(b *testing.B) {
	root, mid, leaf := chainFixture(b)
	data := encodePEM(leaf, mid, root)
	decoder := x509certs.New()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := decoder.DecodeMultiple(data); err != nil {
			b.Fatal(err)
		}
	}
}
