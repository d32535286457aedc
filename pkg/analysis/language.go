package analysis

import (
	"path/filepath"
	"strings"
)

type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
	Go         Language = "go"
	Rust       Language = "rust"
)

// DefaultLanguage is assumed for unknown extensions.
const DefaultLanguage = JavaScript

var extensions = map[string]Language{
	".ts":   TypeScript,
	".js":   JavaScript,
	".py":   Python,
	".java": Java,
	".go":   Go,
	".rs":   Rust,
}

var supported = []Language{TypeScript, JavaScript, Python, Java, Go, Rust}

// DetectLanguage maps a file name to a language by extension, case-insensitively.
func DetectLanguage(filename string) Language {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	return DefaultLanguage
}

// ParseLanguage accepts a language name in any case.
func ParseLanguage(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, lang := range supported {
		if l == lang {
			return lang, true
		}
	}
	return "", false
}

func SupportedLanguages() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

func (l Language) String() string {
	return string(l)
}
