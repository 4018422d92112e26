package lunr

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Embed the wire-format schema into the binary so index validation works
// standalone without external schema files.
//
//go:embed schema.json
var indexSchemaJSON []byte

const indexSchemaName = "search-index.schema.json"

var indexSchema = compileIndexSchema()

func compileIndexSchema() *jsonschema.Schema {
	var doc interface{}
	if err := json.Unmarshal(indexSchemaJSON, &doc); err != nil {
		panic(fmt.Sprintf("embedded index schema is invalid JSON: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	// Compiler auto-detects the draft version from the $schema field
	if err := compiler.AddResource(indexSchemaName, doc); err != nil {
		panic(fmt.Sprintf("failed to add index schema resource: %v", err))
	}

	schema, err := compiler.Compile(indexSchemaName)
	if err != nil {
		panic(fmt.Sprintf("failed to compile index schema: %v", err))
	}
	return schema
}

// validateIndexJSON checks a raw index document against the wire-format
// schema so malformed indexes fail loudly with a position-bearing error
// instead of decoding into empty records.
func validateIndexJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid index JSON: %w", err)
	}

	if err := indexSchema.Validate(doc); err != nil {
		return fmt.Errorf("index document failed schema validation: %w", err)
	}
	return nil
}
