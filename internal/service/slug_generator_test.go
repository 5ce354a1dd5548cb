package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSlugGeneratorForTest(repo *mockContentRepo, ai *mockAIClient) SlugGenerator {
	return NewSlugGenerator(repo, ai)
}

func TestGenerateSlug_Basic(t *testing.T) {
	gen := newSlugGeneratorForTest(new(mockContentRepo), new(mockAIClient))

	cases := []struct {
		input    string
		expected string
	}{
		{"Best SEO Practices", "best-seo-practices"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Special!@# Characters?", "special-characters"},
		{"snake_case_title", "snake-case-title"},
		{"Multiple   spaces", "multiple-spaces"},
		{"Café au Lait", "cafe-au-lait"},
		{"Über Ärger", "uber-arger"},
		{"--edge--hyphens--", "edge-hyphens"},
	}
	for _, tc := range cases {
		slug, err := gen.Generate(tc.input)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, slug, "input %q", tc.input)
	}
}

func TestGenerateSlug_CapsWordCount(t *testing.T) {
	gen := newSlugGeneratorForTest(new(mockContentRepo), new(mockAIClient))

	slug, err := gen.Generate("one two three four five six seven eight nine ten eleven twelve")

	assert.NoError(t, err)
	assert.Equal(t, "one-two-three-four-five-six-seven-eight-nine-ten", slug)
}

func TestGenerateSlug_BlankInput(t *testing.T) {
	gen := newSlugGeneratorForTest(new(mockContentRepo), new(mockAIClient))

	_, err := gen.Generate("   ")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestGenerateWithAI_FallsBackOnError(t *testing.T) {
	ai := new(mockAIClient)
	gen := newSlugGeneratorForTest(new(mockContentRepo), ai)

	ai.On("GenerateSlug", mock.Anything, "some description").Return("", errors.New("smartai unreachable"))

	slug := gen.GenerateWithAI(context.Background(), "some description")

	assert.Regexp(t, regexp.MustCompile(`^untitled-\d+$`), slug)
}

func TestGenerateWithAI_UsesResult(t *testing.T) {
	ai := new(mockAIClient)
	gen := newSlugGeneratorForTest(new(mockContentRepo), ai)

	ai.On("GenerateSlug", mock.Anything, "some description").Return("ai-made-slug", nil)

	slug := gen.GenerateWithAI(context.Background(), "some description")

	assert.Equal(t, "ai-made-slug", slug)
}

func TestGenerateUnique_BaseAvailable(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	repo.On("ExistsBySlug", mock.Anything, "best-seo-practices", "org-1", domain.StatusPublished).Return(false, nil)

	slug, err := gen.GenerateUnique(context.Background(), "Best SEO Practices", "", "org-1")

	assert.NoError(t, err)
	assert.Equal(t, "best-seo-practices", slug)
}

func TestGenerateUnique_SequentialSuffix(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	repo.On("ExistsBySlug", mock.Anything, "best-seo-practices", "org-1", domain.StatusPublished).Return(true, nil)
	repo.On("ExistsBySlug", mock.Anything, "best-seo-practices-1", "org-1", domain.StatusPublished).Return(true, nil)
	repo.On("ExistsBySlug", mock.Anything, "best-seo-practices-2", "org-1", domain.StatusPublished).Return(false, nil)

	slug, err := gen.GenerateUnique(context.Background(), "Best SEO Practices", "", "org-1")

	assert.NoError(t, err)
	assert.Equal(t, "best-seo-practices-2", slug)
}

func TestGenerateUnique_RandomSuffixAfterSequentialExhausted(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	repo.On("ExistsBySlug", mock.Anything, mock.AnythingOfType("string"), "org-1", domain.StatusPublished).Return(true, nil)

	slug, err := gen.GenerateUnique(context.Background(), "Best SEO Practices", "", "org-1")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(slug, "best-seo-practices-"))
	suffix := strings.TrimPrefix(slug, "best-seo-practices-")
	assert.Len(t, suffix, 4)
	// ExistsBySlug was only asked about the base and the 5 sequential candidates
	repo.AssertNumberOfCalls(t, "ExistsBySlug", 6)
}

func TestGenerateUnique_NoTitleNoDescription(t *testing.T) {
	gen := newSlugGeneratorForTest(new(mockContentRepo), new(mockAIClient))

	_, err := gen.GenerateUnique(context.Background(), "", "", "org-1")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestIsAvailable_ExcludesCurrentContent(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	repo.On("ExistsBySlugExcluding", mock.Anything, "my-slug", "org-1", domain.StatusPublished, "c-1").Return(false, nil)

	available, err := gen.IsAvailable(context.Background(), "my-slug", "org-1", "c-1")

	assert.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailable_BlankContentID(t *testing.T) {
	gen := newSlugGeneratorForTest(new(mockContentRepo), new(mockAIClient))

	_, err := gen.IsAvailable(context.Background(), "my-slug", "org-1", " ")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSuggestions_SkipsTakenCandidates(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	repo.On("ExistsBySlug", mock.Anything, "my-slug-1", "org-1", domain.StatusPublished).Return(true, nil)
	repo.On("ExistsBySlug", mock.Anything, "my-slug-2", "org-1", domain.StatusPublished).Return(false, nil)
	repo.On("ExistsBySlug", mock.Anything, "my-slug-3", "org-1", domain.StatusPublished).Return(false, nil)

	suggestions, err := gen.Suggestions(context.Background(), "my-slug", "org-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"my-slug-2", "my-slug-3"}, suggestions)
}

func TestSuggestions_SafeUnderConcurrentRequests(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	// Every candidate is taken, forcing the random-suffix path on each call
	repo.On("ExistsBySlug", mock.Anything, mock.AnythingOfType("string"), "org-1", domain.StatusPublished).Return(true, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				suggestions, err := gen.Suggestions(context.Background(), "my-slug", "org-1")
				if err != nil {
					errs <- err
					continue
				}
				if len(suggestions) != 1 || !strings.HasPrefix(suggestions[0], "my-slug-") {
					errs <- fmt.Errorf("unexpected suggestions %v", suggestions)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestSuggestions_FallsBackToRandomSuffix(t *testing.T) {
	repo := new(mockContentRepo)
	gen := newSlugGeneratorForTest(repo, new(mockAIClient))

	repo.On("ExistsBySlug", mock.Anything, mock.AnythingOfType("string"), "org-1", domain.StatusPublished).Return(true, nil)

	suggestions, err := gen.Suggestions(context.Background(), "my-slug", "org-1")

	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.True(t, strings.HasPrefix(suggestions[0], "my-slug-"))
}
