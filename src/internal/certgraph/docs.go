// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certgraph reconstructs certificate trust hierarchies from flat records
// that point at their issuer by version id.
//
// It provides capabilities to:
//   - Classify remaining validity into urgency buckets.
//   - Normalize deployment tags and index them for exact or substring lookups.
//   - Annotate every node with a bounded, cycle-safe depth and a readable trace.
//   - Partition nodes into Root, Transitional, Intermediate and Leaf tiers.
//   - Select the ancestors and descendants of an anchor for highlighting.
//   - Report issuer cycles as strongly connected components.
//
// Input is treated as untrusted. Dangling issuers, cycles and runaway chains
// never produce errors; they degrade to the sentinel depths documented on
// [DepthRoot] and friends plus the CycleDetected and Dangling flags, so a
// caller always gets a total result in bounded time.
//
// The package performs no I/O. Datasets are held by [Store] as immutable
// snapshots that are replaced wholesale.
package certgraph
