package quiz

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/tomz197/balloons/internal/vocab"
)

const ritual = "Ritual and Religion"

func scenarioCatalog() *vocab.Catalog {
	return vocab.NewCatalog([]vocab.Record{
		{English: "priest", TargetScript: "X", Category: ritual},
		{English: "altar", TargetScript: "Y", Category: ritual},
		{English: "fish", TargetScript: "Z", Category: "Animals"},
	})
}

func largeCatalog() *vocab.Catalog {
	records := []vocab.Record{
		{English: "priest", TargetScript: "a", Category: ritual},
		{English: "altar", TargetScript: "b", Category: ritual},
		{English: "church", TargetScript: "c", Category: ritual},
		{English: "prayer", TargetScript: "d", Category: ritual},
		{English: "angel", TargetScript: "e", Category: ritual},
		{English: "cross", TargetScript: "f", Category: ritual},
		{English: "priest", TargetScript: "g", Category: ritual}, // Duplicate label
		{English: "altar", TargetScript: "h", Category: ritual},  // Duplicate label
		{English: "fish", TargetScript: "z", Category: "Animals"},
	}
	return vocab.NewCatalog(records)
}

func TestSelectQuestionOptionsInvariant(t *testing.T) {
	catalog := largeCatalog()
	for seed := uint64(0); seed < 500; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b9))
		q, err := SelectQuestion(catalog, ritual, 5, rng)
		if err != nil {
			t.Fatalf("seed %d: SelectQuestion: %v", seed, err)
		}
		if len(q.Options) > 5 {
			t.Fatalf("seed %d: expected at most 5 options, got %v", seed, q.Options)
		}
		count := 0
		seen := map[string]bool{}
		for _, opt := range q.Options {
			if seen[opt] {
				t.Fatalf("seed %d: duplicate option %q in %v", seed, opt, q.Options)
			}
			seen[opt] = true
			if opt == q.Prompt.English {
				count++
			}
			if opt == "fish" {
				t.Fatalf("seed %d: distractor from another category: %v", seed, q.Options)
			}
		}
		if count != 1 {
			t.Fatalf("seed %d: prompt %q appears %d times in %v", seed, q.Prompt.English, count, q.Options)
		}
		if q.Prompt.Category != ritual {
			t.Fatalf("seed %d: prompt from wrong category: %+v", seed, q.Prompt)
		}
	}
}

func TestSelectQuestionScenario(t *testing.T) {
	catalog := scenarioCatalog()
	for seed := uint64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewPCG(seed, 7))
		q, err := SelectQuestion(catalog, ritual, 2, rng)
		if err != nil {
			t.Fatalf("SelectQuestion: %v", err)
		}
		got := slices.Clone(q.Options)
		slices.Sort(got)
		if !slices.Equal(got, []string{"altar", "priest"}) {
			t.Fatalf("seed %d: expected a permutation of {priest, altar}, got %v", seed, q.Options)
		}
	}
}

func TestSelectQuestionSingleCandidate(t *testing.T) {
	catalog := vocab.NewCatalog([]vocab.Record{
		{English: "priest", TargetScript: "X", Category: ritual},
	})
	q, err := SelectQuestion(catalog, ritual, 5, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("SelectQuestion: %v", err)
	}
	if !slices.Equal(q.Options, []string{"priest"}) {
		t.Fatalf("expected only the prompt as option, got %v", q.Options)
	}
}

func TestSelectQuestionEmptyCategory(t *testing.T) {
	_, err := SelectQuestion(scenarioCatalog(), "Weather", 5, rand.New(rand.NewPCG(1, 2)))
	var empty *EmptyCatalogError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyCatalogError, got %v", err)
	}
	if empty.Category != "Weather" {
		t.Fatalf("expected category Weather, got %q", empty.Category)
	}

	_, err = SelectQuestion(nil, ritual, 5, rand.New(rand.NewPCG(1, 2)))
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyCatalogError for nil catalog, got %v", err)
	}
}

func TestSelectQuestionReproducible(t *testing.T) {
	catalog := largeCatalog()
	a, _ := SelectQuestion(catalog, ritual, 4, rand.New(rand.NewPCG(42, 1)))
	b, _ := SelectQuestion(catalog, ritual, 4, rand.New(rand.NewPCG(42, 1)))
	if a.Prompt != b.Prompt || !slices.Equal(a.Options, b.Options) {
		t.Fatalf("same seed produced different questions: %+v vs %+v", a, b)
	}
}

func TestSelectQuestionAnswerPositionIsBalanced(t *testing.T) {
	catalog := scenarioCatalog()
	rng := rand.New(rand.NewPCG(3, 4))
	first := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		q, _ := SelectQuestion(catalog, ritual, 2, rng)
		if q.Options[0] == q.Answer() {
			first++
		}
	}
	if first < trials*4/10 || first > trials*6/10 {
		t.Fatalf("answer landed first %d/%d times, expected roughly half", first, trials)
	}
}

func TestSelectQuestionClampsOptionCount(t *testing.T) {
	q, err := SelectQuestion(largeCatalog(), ritual, 0, rand.New(rand.NewPCG(5, 6)))
	if err != nil {
		t.Fatalf("SelectQuestion: %v", err)
	}
	if len(q.Options) != 1 || !q.IsCorrect(q.Options[0]) {
		t.Fatalf("expected the answer alone, got %v", q.Options)
	}
}
