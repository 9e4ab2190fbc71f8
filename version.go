package instelle

import (
	_ "embed"
)

//go:embed VERSION
var Version string
