// Package image renders the optional draft illustration through Gemini and
// stores it on the local file store.
package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/storage"
)

// ImageClient is the slice of the Gemini client the generator needs.
type ImageClient interface {
	GenerateImagePNG(ctx context.Context, prompt string) ([]byte, error)
}

// Generator produces a square brand image for a draft. A failed render is
// reported as a user-facing message, never as a draft-fatal error.
type Generator struct {
	client ImageClient
	store  *storage.FileStore
	logger infra.Logger
}

func NewGenerator(client ImageClient, store *storage.FileStore, logger infra.Logger) *Generator {
	return &Generator{client: client, store: store, logger: logger}
}

var _ domain.ImageGenerator = (*Generator)(nil)

const imagePromptTemplate = `Create a single professional image that will accompany this LinkedIn post. The image must visually support the post message.

POST HOOK (opening lines):
%s

POST MAIN MESSAGE:
%s

VISUAL BRIEF FROM AUTHOR:
%s

Requirements:
- ReeloomStudios brand: creative video/content studio, modern, clean, bold.
- Image must feel relevant to the post topic and tone (no generic stock look).
- 1:1 square format, suitable for LinkedIn. No watermark, no clip art.
- Style: minimal, professional, high contrast. High quality photo or illustration.
`

// GenerateImage renders and stores an illustration for the given draft
// content. On a render failure it returns an empty path plus a short
// user-facing message; err is reserved for storage problems.
func (g *Generator) GenerateImage(ctx context.Context, hook, body, visualHint string) (string, string, error) {
	brief := strings.TrimSpace(visualHint)
	if brief == "" {
		brief = "professional, minimal, on-brand"
	}
	prompt := fmt.Sprintf(imagePromptTemplate, clip(hook, 300), clip(body, 400), brief)

	data, err := g.client.GenerateImagePNG(ctx, prompt)
	if err != nil {
		g.logger.Warn().Err(err).Msg("image: generation failed")
		return "", userMessage(err), nil
	}
	if len(data) == 0 {
		return "", "Image generation did not produce a file.", nil
	}

	name := fmt.Sprintf("linkedin_%s.png", strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	key, err := g.store.Write(ctx, name, data)
	if err != nil {
		return "", "", fmt.Errorf("store image: %w", err)
	}
	return key, "", nil
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(none)"
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

// userMessage turns an API failure into a short actionable message.
func userMessage(err error) string {
	s := err.Error()
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(s, "billed users") || strings.Contains(s, "only accessible to billed"):
		return "Image generation requires a billed Gemini account. Enable billing, or switch to a free-tier image model."
	case strings.Contains(s, "429") || strings.Contains(s, "RESOURCE_EXHAUSTED") || strings.Contains(lower, "quota") || strings.Contains(lower, "exceeded"):
		return "Image generation quota exceeded. Try again in a few minutes."
	}
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
