// Package ui provides the embedded landing page for tubegrab.
package ui

import (
	_ "embed"
)

// IndexHTML is the single-page UI. It calls /get-info to list formats and
// /download to fetch the chosen one.
//
//go:embed index.html
var IndexHTML []byte
