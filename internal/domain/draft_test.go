package domain

import "testing"

func TestFullTextJoinsParts(t *testing.T) {
	d := Draft{Hook: "Hook", Body: "Body", CTA: "CTA", Hashtags: "#a #b"}
	want := "Hook\n\nBody\n\nCTA\n\n#a #b"
	if got := d.FullText(); got != want {
		t.Fatalf("FullText = %q, want %q", got, want)
	}
}

func TestFullTextSkipsEmptyParts(t *testing.T) {
	d := Draft{Hook: "Hook", Body: "Body"}
	want := "Hook\n\nBody"
	if got := d.FullText(); got != want {
		t.Fatalf("FullText = %q, want %q", got, want)
	}
}

func TestPerformanceSummaryIsZero(t *testing.T) {
	if !(PerformanceSummary{}).IsZero() {
		t.Fatal("empty summary should be zero")
	}
	if (PerformanceSummary{BestDays: []string{"Tuesday"}}).IsZero() {
		t.Fatal("summary with best days should not be zero")
	}
}
