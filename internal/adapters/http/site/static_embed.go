package site

import _ "embed"

// aboutMarkdown is the source of the /about page.
//
//go:embed static/about.md
var aboutMarkdown []byte
