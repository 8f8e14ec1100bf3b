package domain

import "time"

// Draft is a generated, editable, not-yet-published post together with the
// summary and strategy snapshot used to produce it.
type Draft struct {
	ID              int64
	Hook            string
	Body            string
	CTA             string
	Hashtags        string
	SuggestedVisual string
	ImagePath       string
	Summary         PerformanceSummary
	Strategy        Strategy
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DraftEdit carries the review-step field edits. Nil means "leave as is";
// only hook, body, cta and hashtags are editable before publish.
type DraftEdit struct {
	Hook     *string
	Body     *string
	CTA      *string
	Hashtags *string
}

// FullText assembles the post exactly as it is sent to LinkedIn: hook, body,
// cta and hashtags joined by blank lines. Both the immediate and the deferred
// publish path must use this rendering.
func (d Draft) FullText() string {
	return joinPostParts(d.Hook, d.Body, d.CTA, d.Hashtags)
}
