// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the certview command-line interface.
//
// It implements a Cobra command tree over the certificate graph engine:
// tiers, chain, deployments, buckets, cycles, validate and watch. Every
// command loads its inputs into a certgraph.Store, annotates the snapshot
// and writes rendered output to stdout. Load statistics and anomalies such
// as dangling issuers or issuer cycles go to the logger on stderr.
package cli
