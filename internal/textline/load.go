package textline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchema is the JSON Schema the extractor output must satisfy.
// Validation happens before decoding so that malformed payloads fail
// with a precise path instead of a zero-valued struct.
const payloadSchema = `{
	"type": "object",
	"required": ["pages"],
	"properties": {
		"pages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["number", "lines"],
				"properties": {
					"number": {"type": "integer", "minimum": 1},
					"lines": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["content", "x", "y"],
							"properties": {
								"content": {"type": "string"},
								"x": {"type": "number", "minimum": 0},
								"y": {"type": "number", "minimum": 0},
								"width": {"type": "number", "minimum": 0},
								"bold": {"type": "boolean"}
							}
						}
					}
				}
			}
		}
	}
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("textline.json", strings.NewReader(payloadSchema)); err != nil {
		panic(fmt.Sprintf("textline: invalid embedded schema: %v", err))
	}
	return compiler.MustCompile("textline.json")
}

// Load reads and validates an extractor payload from a file.
func Load(path string) (*Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction file: %w", err)
	}
	return Decode(data)
}

// Decode validates and decodes an extractor payload.
// Pages are sorted by page number and lines by ascending baseline
// position (Y grows downward, so top of page first), so downstream
// code can rely on document order regardless of extractor quirks.
func Decode(data []byte) (*Issue, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("extraction payload is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("extraction payload does not match schema: %w", err)
	}

	var issue Issue
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&issue); err != nil {
		return nil, fmt.Errorf("failed to decode extraction payload: %w", err)
	}

	sort.SliceStable(issue.Pages, func(i, j int) bool {
		return issue.Pages[i].Number < issue.Pages[j].Number
	})
	for p := range issue.Pages {
		lines := issue.Pages[p].Lines
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].Y < lines[j].Y
		})
	}
	return &issue, nil
}
