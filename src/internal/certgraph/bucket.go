// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"math"
	"strconv"
	"strings"
)

// Bucket is an urgency class derived from remaining validity days.
type Bucket string

// Urgency buckets in display order.
const (
	BucketNoDate Bucket = "no-date"
	Bucket30     Bucket = "<=30"
	Bucket60     Bucket = "<=60"
	Bucket90     Bucket = "<=90"
	BucketLater  Bucket = ">90"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{Bucket30, Bucket60, Bucket90, BucketLater, BucketNoDate}

// bucketThresholds are checked in ascending order, first match wins.
var bucketThresholds = []struct {
	limit  float64
	bucket Bucket
}{
	{30, Bucket30},
	{60, Bucket60},
	{90, Bucket90},
}

// BucketFor classifies a remaining-days value. A nil value is "no-date".
func BucketFor(days *int) Bucket {
	if days == nil {
		return BucketNoDate
	}
	return classify(float64(*days))
}

// BucketOf classifies a loosely typed remaining-days value.
//
// It accepts nil, strings (empty or unparsable ones are "no-date"), every Go
// integer and float kind, *int, and number types exposing Float64 such as
// json.Number. Fractional values are compared as-is, so 30.5 is "<=60".
func BucketOf(raw any) Bucket {
	f, ok := toFloat(raw)
	if !ok {
		return BucketNoDate
	}
	return classify(f)
}

func classify(days float64) Bucket {
	for _, t := range bucketThresholds {
		if days <= t.limit {
			return t.bucket
		}
	}
	return BucketLater
}

// ParseDays converts a loosely typed remaining-days value into an integer
// day count, rounding fractions down. It returns nil for anything that does
// not carry a finite number.
func ParseDays(raw any) *int {
	f, ok := toFloat(raw)
	if !ok {
		return nil
	}
	d := int(math.Floor(f))
	return &d
}

// CountBuckets tallies nodes per bucket. Every bucket is present in the result.
func CountBuckets(nodes []*CertificateNode) map[Bucket]int {
	counts := make(map[Bucket]int, len(Buckets))
	for _, b := range Buckets {
		counts[b] = 0
	}
	for _, n := range nodes {
		counts[n.Bucket()]++
	}
	return counts
}

func toFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case *int:
		if v == nil {
			return 0, false
		}
		f = float64(*v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
