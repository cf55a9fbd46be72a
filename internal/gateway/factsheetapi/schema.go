package factsheetapi

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// envelopeSchema only pins the outer structure. Sheet, row and cell contents
// are left open: a malformed sheet decodes as empty and a malformed cell as
// absent, so only the affected chart loses data.
const envelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "sheets": {"type": "object"}
  }
}`

func compileEnvelopeSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("envelope.json", strings.NewReader(envelopeSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("envelope.json")
}
