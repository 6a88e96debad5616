// Package quiz selects the prompt and answer options for each round.
package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/tomz197/balloons/internal/vocab"
)

// Question is the prompt for one round together with its answer options.
// Options holds Prompt.English exactly once and no duplicate labels.
type Question struct {
	Prompt  vocab.Record
	Options []string
}

// Answer returns the correct option label.
func (q Question) Answer() string {
	return q.Prompt.English
}

// IsCorrect reports whether label answers the question.
func (q Question) IsCorrect(label string) bool {
	return label == q.Prompt.English
}

// EmptyCatalogError is returned when the configured category has no
// candidates. It is a configuration problem and is not retried.
type EmptyCatalogError struct {
	Category string
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("no vocabulary records in category %q", e.Category)
}

// SelectQuestion picks a prompt from category uniformly at random and builds
// up to optionCount options: the prompt's English label plus distractors from
// the same category. Fewer options are returned when the category is too
// small. rng drives every random choice so results are reproducible.
func SelectQuestion(catalog *vocab.Catalog, category string, optionCount int, rng *rand.Rand) (Question, error) {
	candidates := catalog.InCategory(category)
	if len(candidates) == 0 {
		return Question{}, &EmptyCatalogError{Category: category}
	}
	if optionCount < 1 {
		optionCount = 1
	}

	prompt := candidates[rng.IntN(len(candidates))]

	options := make([]string, 0, optionCount)
	options = append(options, prompt.English)
	options = append(options, distractors(catalog.InCategory(prompt.Category), prompt.English, optionCount-1, rng)...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{Prompt: prompt, Options: options}, nil
}

// distractors draws up to n distinct English labels from pool, never answer.
// The pool is permuted first so every label has the same chance of being drawn.
func distractors(pool []vocab.Record, answer string, n int, rng *rand.Rand) []string {
	if n <= 0 {
		return nil
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	seen := map[string]struct{}{answer: {}}
	picked := make([]string, 0, n)
	for _, rec := range pool {
		if len(picked) == n {
			break
		}
		if _, dup := seen[rec.English]; dup {
			continue
		}
		seen[rec.English] = struct{}{}
		picked = append(picked, rec.English)
	}
	return picked
}
