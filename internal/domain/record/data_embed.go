package record

import "embed"

//go:embed data/finals.json
var datasetFS embed.FS

const datasetPath = "data/finals.json"
