// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs decodes [X.509] certificate bundles and maps them to
// certificate records for the hierarchy engine.
//
// It accepts [PEM] bundles, concatenated DER and [PKCS7] containers. Records
// are linked through key identifiers: a certificate's subject key id
// becomes its version id and its authority key id becomes the issuer
// pointer, so a bundle imports as a connected chain without any name
// matching.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
