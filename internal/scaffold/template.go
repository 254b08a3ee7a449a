package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed templates/memory-bank
var templatesFS embed.FS

// Tokens recognized by the embedded default template.
const (
	TokenProjectName        = "[PROJECT_NAME]"
	TokenProjectDescription = "[PROJECT_DESCRIPTION]"
	TokenArchitecture       = "[ARCHITECTURE]"
	TokenFramework          = "[FRAMEWORK]"
	TokenLanguage           = "[LANGUAGE]"
	TokenDate               = "[DATE]"
)

// DefaultTemplate returns the embedded memory-bank template tree.
func DefaultTemplate() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates/memory-bank")
	if err != nil {
		// The embed path is fixed at compile time; failure here is a build defect.
		panic(err)
	}
	return sub
}
