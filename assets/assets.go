// Package assets carries the files bundled into the binary: the
// source language archive and the whitelist of optional paths.
package assets

import (
	_ "embed"
)

//go:embed language.zip
var LanguageZip []byte

//go:embed whitelist.txt
var Whitelist string
