package fsworkspace

import _ "embed"

//go:embed templates/licbom.yaml
var configTemplate []byte
