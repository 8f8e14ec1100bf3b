package domain

// PerformanceSummary aggregates signal from past published posts. A zero
// value is a valid summary for a fresh account with no history.
type PerformanceSummary struct {
	BestDays        []string `json:"best_days"`
	BestTimeWindows []string `json:"best_time_windows"`
	IdealLength     string   `json:"ideal_length"`
	TopTopics       []string `json:"top_topics"`
	HookPattern     string   `json:"hook_pattern"`
}

// IsZero reports whether the summary carries no signal at all.
func (s PerformanceSummary) IsZero() bool {
	return len(s.BestDays) == 0 && len(s.BestTimeWindows) == 0 &&
		s.IdealLength == "" && len(s.TopTopics) == 0 && s.HookPattern == ""
}

// Strategy is the categorical content decision taken before generation.
type Strategy struct {
	PostType      string `json:"post_type"`
	Tone          string `json:"tone"`
	CTAType       string `json:"cta_type"`
	HookStructure string `json:"hook_structure"`
	Brand         string `json:"brand"`
}

// GeneratedContent holds the five text parts returned by the content
// generator. Missing parts are empty strings, never an error.
type GeneratedContent struct {
	Hook            string `json:"hook"`
	Body            string `json:"body"`
	CTA             string `json:"cta"`
	Hashtags        string `json:"hashtags"`
	SuggestedVisual string `json:"suggested_visual"`
}
