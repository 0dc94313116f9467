package unshell

import _ "embed"

// Version is the release of the unshell module.
//
//go:embed VERSION
var Version string
