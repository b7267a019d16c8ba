// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// certview groups certificate inventories into hierarchy tiers and explores
// issuer chains, expiry buckets, deployments and issuer cycles.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/certview/cmd/certview@latest
//
// # Usage
//
//	certview [command] [flags] FILE...
//
// Inputs are JSON record exports or X.509 files (PEM, DER or PKCS#7). They
// are given as positional arguments or with -f, which commands that take an
// operand (chain, deployments) require.
//
// # Commands
//
//	tiers         Group certificates into root, intermediate and leaf tiers
//	chain ANCHOR  Show the issuer chain of a certificate
//	deployments   List deployment tags, or the certificates matching QUERY
//	buckets       Count certificates per expiry bucket
//	cycles        Report issuer cycles
//	validate      Check JSON inputs against the record schema
//	watch         Re-render tiers whenever an input file changes
//
// # Flags
//
//	    --config      Configuration file (JSON or YAML)
//	    --log-format  Log format on stderr: text or json
//	-q, --quiet       Suppress log output
//	-f, --file        Input file (repeatable)
//	    --group-by    foundation or foundation-cert
//	    --sort        urgency, name or depth
//	    --format      tree, table or json
//	    --foundation  Only show one foundation
//	    --select      Emphasize the chain of a version id (tiers, watch)
//
// # Environment Variables
//
//	CERTVIEW_CONFIG_FILE  Path to configuration file (alternative to --config)
//
// # Examples
//
// Render tiers of an inventory export as a tree:
//
//	certview tiers --format tree inventory.json
//
// Highlight one chain among its siblings:
//
//	certview tiers --select 3f2a9c1e inventory.json
//
// Find certificates deployed to a load balancer:
//
//	certview deployments lb-eu -f inventory.json -f bundle.pem
//
// Keep a live view while the export is rewritten:
//
//	certview watch --format tree inventory.json
package main
