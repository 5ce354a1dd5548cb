package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/smartcms/smartcontent/internal/client"
	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/repository"
	"github.com/smartcms/smartcontent/pkg/logger"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugGenerator produces URL slugs for content. Uniqueness is checked only
// against PUBLISHED content within the same org.
type SlugGenerator interface {
	Generate(input string) (string, error)
	GenerateWithAI(ctx context.Context, input string) string
	GenerateUnique(ctx context.Context, title, description, orgID string) (string, error)
	IsAvailable(ctx context.Context, slug, orgID, currentContentID string) (bool, error)
	Suggestions(ctx context.Context, baseSlug, orgID string) ([]string, error)
}

type slugGenerator struct {
	repo repository.ContentRepository
	ai   client.AIClient
}

// NewSlugGenerator creates a slug generator backed by the content store and
// the SmartAI collaborator.
func NewSlugGenerator(repo repository.ContentRepository, ai client.AIClient) SlugGenerator {
	return &slugGenerator{repo: repo, ai: ai}
}

var (
	nonLatin        = regexp.MustCompile(`[^\w-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-+`)
	edgeHyphens     = regexp.MustCompile(`^-|-$`)
	accentFolder    = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonASCII        = regexp.MustCompile(`[^\x00-\x7F]`)
)

const (
	slugSuffixChars  = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxSlugWords     = 10
	maxSequentialTry = 5
)

// Generate builds a basic slug from input. The result is lowercased ASCII
// with single hyphens, capped at maxSlugWords words. Not guaranteed unique.
func (g *slugGenerator) Generate(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%w: slug input cannot be blank", common.ErrInvalidInput)
	}

	// Fold accents, then drop anything still outside ASCII
	folded, _, err := transform.String(accentFolder, input)
	if err != nil {
		folded = input
	}
	folded = nonASCII.ReplaceAllString(folded, "")

	slug := whitespace.ReplaceAllString(folded, "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	slug = nonLatin.ReplaceAllString(slug, "")
	slug = strings.ToLower(slug)
	slug = multipleHyphens.ReplaceAllString(slug, "-")
	slug = edgeHyphens.ReplaceAllString(slug, "")

	words := strings.Split(slug, "-")
	if len(words) > maxSlugWords {
		slug = strings.Join(words[:maxSlugWords], "-")
	}
	return slug, nil
}

// GenerateWithAI asks SmartAI for a slug; on failure or an empty result it
// falls back to a timestamped placeholder.
func (g *slugGenerator) GenerateWithAI(ctx context.Context, input string) string {
	slug, err := g.ai.GenerateSlug(ctx, input)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("SmartAI slug generation failed, using fallback")
		slug = ""
	}
	if slug == "" {
		slug = fmt.Sprintf("untitled-%d", time.Now().UnixMilli())
	}
	return slug
}

// GenerateUnique builds a slug from title (description via AI as fallback)
// and disambiguates against published content in the org: sequential "-1"
// through "-5" suffixes first, then a random 4-char suffix.
func (g *slugGenerator) GenerateUnique(ctx context.Context, title, description, orgID string) (string, error) {
	baseSlug, err := g.Generate(title)
	if err != nil || baseSlug == "" {
		if description == "" {
			return "", fmt.Errorf("%w: cannot derive slug without title or description", common.ErrInvalidInput)
		}
		baseSlug = g.GenerateWithAI(ctx, description)
	}

	taken, err := g.repo.ExistsBySlug(ctx, baseSlug, orgID, domain.StatusPublished)
	if err != nil {
		return "", fmt.Errorf("check slug uniqueness: %w", err)
	}
	if !taken {
		return baseSlug, nil
	}

	// Sequential numbering first (SEO-friendly)
	for counter := 1; counter <= maxSequentialTry; counter++ {
		candidate := fmt.Sprintf("%s-%d", baseSlug, counter)
		taken, err := g.repo.ExistsBySlug(ctx, candidate, orgID, domain.StatusPublished)
		if err != nil {
			return "", fmt.Errorf("check slug uniqueness: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return baseSlug + "-" + randomSuffix(4), nil
}

// IsAvailable checks whether slug is free for published content in the org,
// ignoring the content item being edited.
func (g *slugGenerator) IsAvailable(ctx context.Context, slug, orgID, currentContentID string) (bool, error) {
	if strings.TrimSpace(currentContentID) == "" {
		return false, fmt.Errorf("%w: current content ID cannot be blank", common.ErrInvalidInput)
	}
	taken, err := g.repo.ExistsBySlugExcluding(ctx, slug, orgID, domain.StatusPublished, currentContentID)
	if err != nil {
		return false, fmt.Errorf("check slug availability: %w", err)
	}
	return !taken, nil
}

// Suggestions returns available slug alternatives for the UI
func (g *slugGenerator) Suggestions(ctx context.Context, baseSlug, orgID string) ([]string, error) {
	var suggestions []string

	for i := 1; i <= 3; i++ {
		candidate := fmt.Sprintf("%s-%d", baseSlug, i)
		taken, err := g.repo.ExistsBySlug(ctx, candidate, orgID, domain.StatusPublished)
		if err != nil {
			return nil, fmt.Errorf("check slug suggestion: %w", err)
		}
		if !taken {
			suggestions = append(suggestions, candidate)
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, baseSlug+"-"+randomSuffix(4))
	}
	return suggestions, nil
}

// randomSuffix uses the locked top-level rand source; slug generation is
// reached from concurrent request handlers.
func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugSuffixChars[rand.Intn(len(slugSuffixChars))]
	}
	return string(b)
}
