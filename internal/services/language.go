package services

import (
	"path/filepath"
	"strings"
)

// extToLanguage maps file extensions to display language names.
var extToLanguage = map[string]string{
	"py":    "Python",
	"js":    "JavaScript",
	"jsx":   "React",
	"ts":    "TypeScript",
	"tsx":   "React TypeScript",
	"java":  "Java",
	"cpp":   "C++",
	"c":     "C",
	"h":     "C Header",
	"hpp":   "C++ Header",
	"go":    "Go",
	"rs":    "Rust",
	"php":   "PHP",
	"rb":    "Ruby",
	"swift": "Swift",
	"kt":    "Kotlin",
	"cs":    "C#",
	"scala": "Scala",
	"html":  "HTML",
	"css":   "CSS",
}

// FileExtension returns the lower-cased extension without the leading dot.
func FileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// DetectLanguage infers the programming language from the file extension.
func DetectLanguage(filename string) string {
	if lang, ok := extToLanguage[FileExtension(filename)]; ok {
		return lang
	}
	return "Unknown"
}

// AllowedExtension reports whether the file type is accepted for analysis.
// The accepted set is the language table's key set.
func AllowedExtension(filename string) bool {
	_, ok := extToLanguage[FileExtension(filename)]
	return ok
}

// AllowedExtensions returns the accepted extensions, for error messages.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(extToLanguage))
	for ext := range extToLanguage {
		exts = append(exts, ext)
	}
	return exts
}
