package scaffold

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/torvik/membank/internal/apperr"
)

// writeTemplate lays out a minimal template directory for source tests.
func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"core/brief.md": "# [PROJECT_NAME]\ntags: [core]\n[PROJECT_DESCRIPTION]\n",
		"progress.md":   "Progress for [PROJECT_NAME] as of [DATE].\n",
		"logo.png":      "[PROJECT_NAME] raw bytes, not substituted",
	}
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile %s: %v", path, err)
	}
	return string(data)
}

func TestRun_CopyAndSubstitute(t *testing.T) {
	src := writeTemplate(t)
	dest := filepath.Join(t.TempDir(), "bank")

	err := Run(Options{
		Source: src,
		Dest:   dest,
		Placeholders: []Placeholder{
			{Token: TokenProjectName, Value: "Atlas"},
			{Token: TokenProjectDescription, Value: "Infra docs"},
			{Token: TokenDate, Value: "2026-08-26"},
		},
		Project: ProjectInfo{Name: "Atlas"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	brief := readFile(t, filepath.Join(dest, "core", "brief.md"))
	if !strings.Contains(brief, "# Atlas") || !strings.Contains(brief, "Infra docs") {
		t.Errorf("substitution missing in brief.md: %q", brief)
	}
	if strings.Contains(brief, "[PROJECT_NAME]") {
		t.Errorf("unsubstituted token left in brief.md: %q", brief)
	}

	progress := readFile(t, filepath.Join(dest, "progress.md"))
	if !strings.Contains(progress, "Atlas as of 2026-08-26") {
		t.Errorf("progress.md = %q", progress)
	}

	// Non-text files are copied verbatim.
	logo := readFile(t, filepath.Join(dest, "logo.png"))
	if !strings.Contains(logo, "[PROJECT_NAME]") {
		t.Errorf("binary file should not be substituted: %q", logo)
	}
}

func TestRun_WritesProjectFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bank")
	err := Run(Options{
		Source:  writeTemplate(t),
		Dest:    dest,
		Project: ProjectInfo{Name: "Atlas", Language: "Go"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var info ProjectInfo
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(dest, ProjectFileName))), &info); err != nil {
		t.Fatalf("unmarshal project file: %v", err)
	}
	if info.Name != "Atlas" || info.Language != "Go" {
		t.Errorf("project info = %+v", info)
	}
	if info.ScaffoldedAt.IsZero() {
		t.Error("scaffolded_at not set")
	}
}

func TestRun_MissingSource(t *testing.T) {
	err := Run(Options{
		Source: filepath.Join(t.TempDir(), "nope"),
		Dest:   filepath.Join(t.TempDir(), "bank"),
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRun_PopulatedDestUntouched(t *testing.T) {
	dest := t.TempDir()
	existing := filepath.Join(dest, "keep.md")
	if err := os.WriteFile(existing, []byte("precious"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Run(Options{Source: writeTemplate(t), Dest: dest})
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}

	// Abort happens before any write: the destination is exactly as it was.
	entries, _ := os.ReadDir(dest)
	if len(entries) != 1 {
		t.Errorf("destination modified: %d entries", len(entries))
	}
	if readFile(t, existing) != "precious" {
		t.Error("existing file content changed")
	}
}

func TestRun_ForceReplacesDest(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "old.md"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Run(Options{Source: writeTemplate(t), Dest: dest, Force: true})
	if err != nil {
		t.Fatalf("Run with force: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "old.md")); !os.IsNotExist(err) {
		t.Error("old content should be removed by force")
	}
	if _, err := os.Stat(filepath.Join(dest, "progress.md")); err != nil {
		t.Errorf("template not copied after force: %v", err)
	}
}

func TestRun_DefaultTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "memory-bank")
	err := Run(Options{
		Dest:         dest,
		Placeholders: Answers{Name: "Atlas", Language: "Go"}.Placeholders("2026-08-26"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	brief := readFile(t, filepath.Join(dest, "core", "projectbrief.md"))
	if !strings.Contains(brief, "Atlas") {
		t.Errorf("default template not substituted: %q", brief)
	}
	for _, rel := range []string{
		"core/productContext.md",
		"core/activeContext.md",
		"architecture/systemPatterns.md",
		"architecture/techContext.md",
		"progress/progress.md",
	} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
			t.Errorf("default template missing %s: %v", rel, err)
		}
	}
}

func TestPrompt_SeededFieldsSkipped(t *testing.T) {
	in := strings.NewReader("A docs project\n\nchi\n")
	var out strings.Builder

	seed := Answers{Name: "Atlas", Language: "Go"}
	ans, err := Prompt(in, &out, seed)
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if ans.Name != "Atlas" || ans.Language != "Go" {
		t.Errorf("seeded fields changed: %+v", ans)
	}
	if ans.Description != "A docs project" {
		t.Errorf("description = %q", ans.Description)
	}
	// Blank reply takes the shown default.
	if ans.Architecture != "monolith" {
		t.Errorf("architecture = %q, want monolith", ans.Architecture)
	}
	if ans.Framework != "chi" {
		t.Errorf("framework = %q", ans.Framework)
	}
	if strings.Contains(out.String(), "Project name") {
		t.Error("seeded field should not be prompted")
	}
}

func TestPrompt_EOFTakesDefaults(t *testing.T) {
	ans, err := Prompt(strings.NewReader(""), &strings.Builder{}, Answers{})
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if ans.Name != "My Project" {
		t.Errorf("name = %q, want default", ans.Name)
	}
	if ans.Framework != "none" || ans.Language != "unknown" {
		t.Errorf("defaults not applied: %+v", ans)
	}
}
