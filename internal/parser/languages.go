package parser

import (
	"path/filepath"
	"strings"
)

// extensionLanguages maps file extensions to the language names known
// by the languages package
var extensionLanguages = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".mts":  "typescript",
	".cts":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".htm":  "html",
	".html": "html",
}

// LanguageForFile returns the language of a file based on its extension,
// or "" if it is not supported
func LanguageForFile(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}
