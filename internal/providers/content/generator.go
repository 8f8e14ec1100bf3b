// Package content generates the post text parts through Gemini.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

// TextClient is the slice of the Gemini client the generator needs.
type TextClient interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Generator produces the five post parts. A missing key in the model output
// is an empty string, never an error; only call failures and unparsable
// payloads fail.
type Generator struct {
	client TextClient
}

func NewGenerator(client TextClient) *Generator {
	return &Generator{client: client}
}

var _ domain.ContentGenerator = (*Generator)(nil)

const postPromptTemplate = `You are a LinkedIn growth strategist writing for ReeloomStudios.

Brand: ReeloomStudios — creative video and content studio. Founder-led, authentic voice. Positioning: quality storytelling, modern production, startup energy. Tone: confident but approachable, expert without being preachy. Write as the founder or the studio voice.

Generate a high-performing LinkedIn post that fits this brand.

Context:
%s

Performance Insights:
%s

Strategy:
%s

Rules:
- Strong 2-line hook (founder-style: bold take, question, or story open)
- Short readable paragraphs
- Natural human tone; ReeloomStudios = creative, driven, clear
- Marketing positioning clarity (studio/founder value, not generic)
- Subtle CTA (comment, follow, or link — never pushy)
- Max 5 hashtags (mix of niche + broad, e.g. #ContentCreation #FounderLife #ReeloomStudios)
- Optimized for dwell time
- Avoid robotic or corporate jargon

Return ONLY valid JSON with exactly these keys (no markdown, no code block):
- "hook": string (first 2 lines that grab attention)
- "body": string (main content, short paragraphs)
- "cta": string (call to action)
- "hashtags": string (comma or space separated, max 5)
- "suggested_visual": string (1-2 sentences describing a concrete image that matches this post)
`

var codeFenceRegexp = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// GeneratePost asks the model for the post parts.
func (g *Generator) GeneratePost(ctx context.Context, input, analytics string, strategy domain.Strategy) (domain.GeneratedContent, error) {
	prompt := fmt.Sprintf(postPromptTemplate, input, analytics, renderStrategy(strategy))

	text, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return domain.GeneratedContent{}, err
	}

	var content domain.GeneratedContent
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &content); err != nil {
		return domain.GeneratedContent{}, fmt.Errorf("%w: unparsable model output: %v", domain.ErrGenerationFailed, err)
	}
	return content, nil
}

func renderStrategy(s domain.Strategy) string {
	return fmt.Sprintf("post_type: %s, tone: %s, cta_type: %s, hook_structure: %s, brand: %s",
		s.PostType, s.Tone, s.CTAType, s.HookStructure, s.Brand)
}

// stripCodeFence unwraps a markdown code block if the model added one
// despite the instructions.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "```") {
		return text
	}
	if match := codeFenceRegexp.FindStringSubmatch(text); len(match) == 2 {
		return strings.TrimSpace(match[1])
	}
	return text
}
