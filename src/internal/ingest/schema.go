// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ingest

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/H0llyW00dzZ/certview/src/internal/helper/fieldkey"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var recordSchema string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	})
	return schema, schemaErr
}

// Warning is a schema violation found in one record.
type Warning struct {
	Record   int    `json:"record"`             // position in decode order, parents before children
	CertName string `json:"certName,omitempty"` // as spelled in the record, if any
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	name := w.CertName
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("record %d (%s): %s: %s", w.Record, name, w.Field, w.Message)
}

// Validate checks every record of a JSON export against the record schema.
//
// Violations are reported as warnings; they never prevent [Decode] from
// loading the same data. Nested records are checked on their own, so a
// child without a foundation is reported even though it would inherit one.
//
// Parameters:
//   - data: JSON document in any shape accepted by Decode
//
// Returns:
//   - []Warning: Violations in record order, empty when the export is clean
//   - error: ErrSyntax or ErrShape when the document cannot be read at all
func Validate(data []byte) ([]Warning, error) {
	items, err := documentItems(data)
	if err != nil {
		return nil, err
	}

	s, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("ingest: record schema: %w", err)
	}

	var (
		warnings []Warning
		pos      int
	)
	stack := make([]map[string]any, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}

	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		result, err := s.Validate(gojsonschema.NewGoLoader(m))
		if err != nil {
			return nil, fmt.Errorf("ingest: validating record %d: %w", pos, err)
		}
		for _, e := range result.Errors() {
			warnings = append(warnings, Warning{
				Record:   pos,
				CertName: stringField(m, keyCertName),
				Field:    e.Field(),
				Message:  e.Description(),
			})
		}
		pos++

		children, _ := fieldkey.Lookup(m, keySigns...)
		list, _ := children.([]any)
		for i := len(list) - 1; i >= 0; i-- {
			if child, ok := list[i].(map[string]any); ok {
				stack = append(stack, child)
			}
		}
	}

	return warnings, nil
}
