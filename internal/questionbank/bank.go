package questionbank

import (
	"fmt"
	"slices"
)

// Bank is an immutable questionnaire with precomputed indices.
type Bank struct {
	categories []Category
	questions  []Question

	byID       map[int]int      // question id -> bank index
	byCategory map[string][]int // category id -> bank indices, bank order
	catIndex   map[string]int   // category id -> display index
	traversal  []int            // bank indices in traversal order
	travIndex  map[int]int      // question id -> traversal index
}

// defaultBank is the built-in questionnaire, built by init().
var defaultBank *Bank

func init() {
	b, err := New(seedCategories, seedQuestions)
	if err != nil {
		panic(fmt.Sprintf("questionbank: invalid seed: %v", err))
	}
	defaultBank = b
}

// Default returns the built-in questionnaire.
func Default() *Bank {
	return defaultBank
}

// New validates the given categories and questions and builds a Bank.
// Any structural problem is reported as a *ConfigurationError.
func New(categories []Category, questions []Question) (*Bank, error) {
	if err := validate(categories, questions); err != nil {
		return nil, err
	}

	b := &Bank{
		categories: slices.Clone(categories),
		questions:  slices.Clone(questions),
		byID:       make(map[int]int, len(questions)),
		byCategory: make(map[string][]int, len(categories)),
		catIndex:   make(map[string]int, len(categories)),
		travIndex:  make(map[int]int, len(questions)),
	}

	for i, c := range b.categories {
		b.catIndex[c.ID] = i
	}
	for i, q := range b.questions {
		b.byID[q.ID] = i
		b.byCategory[q.Category] = append(b.byCategory[q.Category], i)
	}
	for _, c := range b.categories {
		for _, qi := range b.byCategory[c.ID] {
			b.travIndex[b.questions[qi].ID] = len(b.traversal)
			b.traversal = append(b.traversal, qi)
		}
	}

	return b, nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Categories returns the categories in display order.
func (b *Bank) Categories() []Category {
	return slices.Clone(b.categories)
}

// CategoryAt returns the category at display index i.
func (b *Bank) CategoryAt(i int) (Category, bool) {
	if i < 0 || i >= len(b.categories) {
		return Category{}, false
	}
	return b.categories[i], true
}

// Category returns a category by id.
func (b *Bank) Category(id string) (Category, bool) {
	i, ok := b.catIndex[id]
	if !ok {
		return Category{}, false
	}
	return b.categories[i], true
}

// AllQuestions returns every question in bank order.
func (b *Bank) AllQuestions() []Question {
	return slices.Clone(b.questions)
}

// QuestionsInCategory returns the questions of a category in bank order.
// Unknown categories yield an empty slice.
func (b *Bank) QuestionsInCategory(categoryID string) []Question {
	idx := b.byCategory[categoryID]
	out := make([]Question, len(idx))
	for i, qi := range idx {
		out[i] = b.questions[qi]
	}
	return out
}

// CategorySize returns the number of questions in the category at display index i.
func (b *Bank) CategorySize(i int) int {
	if i < 0 || i >= len(b.categories) {
		return 0
	}
	return len(b.byCategory[b.categories[i].ID])
}

// CriticalQuestions returns the deal-breaker questions in bank order.
func (b *Bank) CriticalQuestions() []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Critical {
			out = append(out, q)
		}
	}
	return out
}

// Question returns a question by id.
func (b *Bank) Question(id int) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// At returns the question at a category/question position.
func (b *Bank) At(pos Position) (Question, bool) {
	if pos.CategoryIndex < 0 || pos.CategoryIndex >= len(b.categories) {
		return Question{}, false
	}
	idx := b.byCategory[b.categories[pos.CategoryIndex].ID]
	if pos.QuestionIndex < 0 || pos.QuestionIndex >= len(idx) {
		return Question{}, false
	}
	return b.questions[idx[pos.QuestionIndex]], true
}

// PositionOf returns the category/question position of a question id.
func (b *Bank) PositionOf(id int) (Position, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Position{}, false
	}
	q := b.questions[i]
	ci := b.catIndex[q.Category]
	for qi, bi := range b.byCategory[q.Category] {
		if bi == i {
			return Position{CategoryIndex: ci, QuestionIndex: qi}, true
		}
	}
	return Position{}, false
}

// TraversalOrder returns every question in the order a session visits them:
// categories in display order, each category's questions in bank order.
func (b *Bank) TraversalOrder() []Question {
	out := make([]Question, len(b.traversal))
	for i, qi := range b.traversal {
		out[i] = b.questions[qi]
	}
	return out
}

// TraversalIndex returns the zero-based traversal position of a question id.
func (b *Bank) TraversalIndex(id int) (int, bool) {
	i, ok := b.travIndex[id]
	return i, ok
}

// Package-level accessors over the default bank.

// AllQuestions returns every built-in question in bank order.
func AllQuestions() []Question {
	return defaultBank.AllQuestions()
}

// Categories returns the built-in categories in display order.
func Categories() []Category {
	return defaultBank.Categories()
}

// QuestionsInCategory returns the built-in questions of a category.
func QuestionsInCategory(categoryID string) []Question {
	return defaultBank.QuestionsInCategory(categoryID)
}

// CriticalQuestions returns the built-in deal-breaker questions.
func CriticalQuestions() []Question {
	return defaultBank.CriticalQuestions()
}

// GetQuestion returns a built-in question by id, or error if not found.
func GetQuestion(id int) (Question, error) {
	q, ok := defaultBank.Question(id)
	if !ok {
		return Question{}, fmt.Errorf("question not found: %d", id)
	}
	return q, nil
}
