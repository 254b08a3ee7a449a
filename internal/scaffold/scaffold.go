// Package scaffold bootstraps a new memory bank from a template directory:
// it copies the template tree, substitutes placeholder tokens in text files,
// and writes the generated project metadata file.
package scaffold

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/torvik/membank/internal/apperr"
)

// ProjectFileName is the generated metadata file written into the destination.
const ProjectFileName = ".membank.json"

// Placeholder maps a literal token (e.g. "[PROJECT_NAME]") to its replacement.
// Substitution is exact string matching, applied in slice order.
type Placeholder struct {
	Token string
	Value string
}

// Options configures a scaffold run.
type Options struct {
	// Source is the template directory. Empty means the embedded default template.
	Source string
	// Dest is the destination directory for the new memory bank.
	Dest string
	// Force authorizes deleting an already-populated destination before copying.
	Force bool
	// Placeholders are substituted into every .md and .json file after copying.
	Placeholders []Placeholder
	// Project metadata recorded in the generated project file.
	Project ProjectInfo
}

// ProjectInfo is the metadata persisted to ProjectFileName.
type ProjectInfo struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Architecture string    `json:"architecture"`
	Framework    string    `json:"framework"`
	Language     string    `json:"language"`
	ScaffoldedAt time.Time `json:"scaffolded_at"`
}

// Run copies the template into opts.Dest, substitutes placeholders, and
// writes the project file. It fails before any destination write when the
// source is missing (apperr.ErrNotFound) or the destination is already
// populated without Force (apperr.ErrAlreadyExists).
func Run(opts Options) error {
	src, err := resolveSource(opts.Source)
	if err != nil {
		return err
	}

	if err := checkDest(opts.Dest, opts.Force); err != nil {
		return err
	}

	if err := copyTree(src, opts.Dest); err != nil {
		return fmt.Errorf("scaffold: copy template: %w", err)
	}

	if err := substituteTree(opts.Dest, opts.Placeholders); err != nil {
		return fmt.Errorf("scaffold: substitute placeholders: %w", err)
	}

	if err := writeProjectFile(opts.Dest, opts.Project); err != nil {
		return fmt.Errorf("scaffold: write project file: %w", err)
	}

	return nil
}

// resolveSource returns the template as an fs.FS, validating existence for
// external sources. An empty source selects the embedded default template.
func resolveSource(source string) (fs.FS, error) {
	if source == "" {
		return DefaultTemplate(), nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("scaffold: template %s: %w", source, apperr.ErrNotFound)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scaffold: template %s is not a directory: %w", source, apperr.ErrNotFound)
	}
	return os.DirFS(source), nil
}

// checkDest enforces the no-partial-copy guarantee: a populated destination
// aborts the run before anything is written, unless force is set, in which
// case the destination is removed wholesale first.
func checkDest(dest string, force bool) error {
	entries, err := os.ReadDir(dest)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("scaffold: read destination: %w", err)
	case len(entries) == 0:
		return nil
	case !force:
		return fmt.Errorf("scaffold: destination %s is not empty: %w", dest, apperr.ErrAlreadyExists)
	}
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("scaffold: clear destination: %w", err)
	}
	return nil
}

// copyTree walks src and mirrors every entry under dest.
func copyTree(src fs.FS, dest string) error {
	return fs.WalkDir(src, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		target := filepath.Join(dest, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		return writeAtomic(target, data)
	})
}

// substituteTree rewrites every .md and .json file under dest with all
// placeholder tokens replaced. Tokens are literal strings, not patterns.
func substituteTree(dest string, placeholders []Placeholder) error {
	if len(placeholders) == 0 {
		return nil
	}
	return filepath.WalkDir(dest, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isTextFile(d.Name()) {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		replaced := substitute(string(data), placeholders)
		if replaced == string(data) {
			return nil
		}
		return writeAtomic(p, []byte(replaced))
	})
}

func substitute(content string, placeholders []Placeholder) string {
	for _, ph := range placeholders {
		if ph.Token == "" {
			continue
		}
		content = strings.ReplaceAll(content, ph.Token, ph.Value)
	}
	return content
}

func isTextFile(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".json")
}

func writeProjectFile(dest string, info ProjectInfo) error {
	if info.ScaffoldedAt.IsZero() {
		info.ScaffoldedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dest, ProjectFileName), append(data, '\n'))
}

// writeAtomic writes content via tmp file + rename so readers never observe
// a half-written file.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".membank-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
