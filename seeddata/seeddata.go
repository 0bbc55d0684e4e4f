// Package seeddata embeds the reference data shipped with the binary:
// the product category catalog served and seeded at first run.
package seeddata

import _ "embed"

//go:embed categories.json
var Categories []byte
