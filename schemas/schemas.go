// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// ParseResponse is the schema for the resume parser response envelope.
//
//go:embed tx_parse_response.schema.json
var ParseResponse string
