package web

import "embed"

//go:embed all:templates
var Templates embed.FS
