package normalize

import (
	"regexp"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "punctuation stripped and spaces hyphenated",
			title: "Re: Launch Party!!",
			want:  "re-launch-party",
		},
		{
			name:  "uppercase lowered",
			title: "GopherCon 2026",
			want:  "gophercon-2026",
		},
		{
			name:  "surrounding whitespace trimmed",
			title: "   Boardgames Night   ",
			want:  "boardgames-night",
		},
		{
			name:  "whitespace runs collapse to one hyphen",
			title: "Open\t\tMic   Evening",
			want:  "open-mic-evening",
		},
		{
			name:  "existing hyphens kept but not doubled",
			title: "Check-in -- Day",
			want:  "check-in-day",
		},
		{
			name:  "leading and trailing hyphens removed",
			title: "- Hackathon -",
			want:  "hackathon",
		},
		{
			name:  "title of only punctuation falls back",
			title: "!!!",
			want:  FallbackSlugBase,
		},
		{
			name:  "empty title falls back",
			title: "",
			want:  FallbackSlugBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if !slugShape.MatchString(got) {
				t.Errorf("Slugify(%q) = %q does not match slug shape", tt.title, got)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	titles := []string{"Re: Launch Party!!", "GopherCon 2026", "!!!"}
	for _, title := range titles {
		once := Slugify(title)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestSlugSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		suffix := SlugSuffix()
		if len(suffix) != slugSuffixLength {
			t.Fatalf("suffix %q has length %d, want %d", suffix, len(suffix), slugSuffixLength)
		}
		if !slugShape.MatchString(suffix) {
			t.Fatalf("suffix %q is not alphanumeric", suffix)
		}
		seen[suffix] = true
	}
	// 100 draws from a 36^5 space colliding down to a handful would mean a
	// broken random source.
	if len(seen) < 90 {
		t.Errorf("expected close to 100 distinct suffixes, got %d", len(seen))
	}
}
