// Package ui holds the embedded HTML templates and static assets.
package ui

import "embed"

//go:embed "html" "static"
var Files embed.FS
