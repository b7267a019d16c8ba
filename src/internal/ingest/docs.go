// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package ingest turns certificate exports into records for the hierarchy
// engine.
//
// Accepted JSON shapes are an array of records, an object carrying a
// "certificates" or "roots" array, or a single record. Records may be flat,
// pointing at their issuer through issuerVersion, or nested, listing the
// certificates they sign under "signs". Field names are matched regardless
// of case and separators.
//
// Files that are not JSON are handed to the X.509 importer, so PEM bundles,
// DER files and PKCS#7 containers can be mixed with JSON exports in one
// load.
package ingest
