// Package scan produces the ordered scanned-file set that feeds an analysis
// run. Filtering (excludes, size and count limits) happens here, before the
// engine: the engine trusts the scan result and never re-applies it.
package scan

// Language identifies the coarse language of a scanned file.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageOther      Language = "other"
)

// ScannedFile is one file admitted into the analysis, keyed by its canonical
// project-relative path. Immutable after creation.
type ScannedFile struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	Exists   bool     `json:"exists"`
}

// extensionLanguages maps file extensions to languages.
var extensionLanguages = map[string]Language{
	".py":  LanguagePython,
	".pyi": LanguagePython,
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".ts":  LanguageTypeScript,
	".tsx": LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
}

// DetectLanguage returns the language for a file extension (with leading dot).
func DetectLanguage(ext string) Language {
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageOther
}
