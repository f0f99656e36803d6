package seeds

import _ "embed"

//go:embed profiles.yaml
var Profiles []byte
