package questionbank

// Question is a single yes/no diagnostic item.
type Question struct {
	ID        int    `json:"id" yaml:"id"`
	Category  string `json:"category" yaml:"category"`
	Prompt    string `json:"question" yaml:"question"`
	Guideline string `json:"guideline" yaml:"guideline"`
	QuickTake string `json:"quickTake" yaml:"quickTake"`

	// Weight is the relative importance of the item (positive).
	Weight int `json:"weight" yaml:"weight"`

	// Reversed marks items where "yes" is the favorable answer.
	// For all other items "no" is favorable.
	Reversed bool `json:"reversed,omitempty" yaml:"reversed,omitempty"`

	// Critical marks deal-breaker items.
	Critical bool `json:"critical,omitempty" yaml:"critical,omitempty"`
}

// IsFavorable reports whether the given answer is the healthy one for q.
func (q Question) IsFavorable(answer bool) bool {
	if q.Reversed {
		return answer
	}
	return !answer
}

// Category groups questions for display and traversal.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// Label returns the icon and name for display.
func (c Category) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}

// Position locates a question inside the category/question structure.
type Position struct {
	CategoryIndex int
	QuestionIndex int
}
