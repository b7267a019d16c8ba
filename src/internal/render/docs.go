// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package render formats hierarchy engine results for terminals and tools.
//
// Grouped tiers render as an ASCII tree, a markdown table or structured
// JSON. When a chain selection is active, selected nodes are marked and the
// rest are dimmed rather than hidden, so the surrounding hierarchy stays
// visible. Deployment summaries, bucket counts and cycle reports have their
// own table renderers.
package render
