package scaffold

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Answers holds the project metadata collected before scaffolding.
type Answers struct {
	Name         string
	Description  string
	Architecture string
	Framework    string
	Language     string
}

// Prompt asks for each unset field of seed on w and reads replies from r.
// Fields already set (e.g. from CLI flags) are kept and not asked again.
// Blank replies fall back to the shown default.
func Prompt(r io.Reader, w io.Writer, seed Answers) (Answers, error) {
	out := seed
	scanner := bufio.NewScanner(r)

	ask := func(field *string, prompt, fallback string) error {
		if *field != "" {
			return nil
		}
		if fallback != "" {
			fmt.Fprintf(w, "%s [%s]: ", prompt, fallback)
		} else {
			fmt.Fprintf(w, "%s: ", prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("scaffold: read answer: %w", err)
			}
			// EOF: take the default.
			*field = fallback
			return nil
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			answer = fallback
		}
		*field = answer
		return nil
	}

	if err := ask(&out.Name, "Project name", "My Project"); err != nil {
		return out, err
	}
	if err := ask(&out.Description, "Project description", ""); err != nil {
		return out, err
	}
	if err := ask(&out.Architecture, "Architecture (e.g. monolith, microservices)", "monolith"); err != nil {
		return out, err
	}
	if err := ask(&out.Framework, "Framework", "none"); err != nil {
		return out, err
	}
	if err := ask(&out.Language, "Primary language", "unknown"); err != nil {
		return out, err
	}

	return out, nil
}

// Placeholders maps the collected answers onto the default template tokens.
// The date token is rendered by the caller so it can be fixed in tests.
func (a Answers) Placeholders(date string) []Placeholder {
	return []Placeholder{
		{Token: TokenProjectName, Value: a.Name},
		{Token: TokenProjectDescription, Value: a.Description},
		{Token: TokenArchitecture, Value: a.Architecture},
		{Token: TokenFramework, Value: a.Framework},
		{Token: TokenLanguage, Value: a.Language},
		{Token: TokenDate, Value: date},
	}
}
