// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package fieldkey normalizes the spelling of JSON object keys.
//
// Certificate exports spell the same field as version_id, versionId,
// VersionID or "version id". [Key] folds every spelling to one canonical
// form (lowercase, separators removed) and [Map] applies it to a decoded
// document so consumers match fields with a single lookup.
package fieldkey
