package questionbank

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a structurally invalid question bank.
// It is fatal at load time.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

// Validate checks the built-in bank for structural issues.
func Validate() error {
	return validate(defaultBank.categories, defaultBank.questions)
}

// validate performs all structural checks on the given bank contents.
// Returns a *ConfigurationError describing all problems found, or nil if valid.
func validate(categories []Category, questions []Question) error {
	var errs []string

	if len(categories) == 0 {
		errs = append(errs, "no categories defined")
	}
	if len(questions) == 0 {
		errs = append(errs, "no questions defined")
	}

	catSet := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			errs = append(errs, "category with empty id")
			continue
		}
		if catSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category ID: %q", c.ID))
		}
		catSet[c.ID] = true
	}

	idSet := make(map[int]bool, len(questions))
	used := make(map[string]bool, len(categories))
	for _, q := range questions {
		if idSet[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		idSet[q.ID] = true

		if !catSet[q.Category] {
			errs = append(errs, fmt.Sprintf("question %d references unknown category %q", q.ID, q.Category))
		}
		used[q.Category] = true

		if q.Weight < 1 {
			errs = append(errs, fmt.Sprintf("question %d has non-positive weight %d", q.ID, q.Weight))
		}
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d has empty prompt", q.ID))
		}
	}

	for _, c := range categories {
		if c.ID != "" && !used[c.ID] {
			errs = append(errs, fmt.Sprintf("category %q has no questions", c.ID))
		}
	}

	if len(errs) > 0 {
		return &ConfigurationError{Problems: errs}
	}
	return nil
}
