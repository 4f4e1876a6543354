package trace

import (
	"testing"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

func testRegistry() []model.DataSource {
	return BuildRegistry([]model.RawSource{
		{Type: "email", Name: "Kickoff thread"},
		{Type: "transcript", Name: "Sprint review"},
		{Type: "slack", Name: "launch-channel"},
	})
}

func TestMatchSource_StrategyChain(t *testing.T) {
	sources := testRegistry()

	for _, tc := range []struct {
		name string
		ref  string
		want int
	}{
		{"origin type", "email", 0},
		{"origin type later source", "transcript", 1},
		{"identifier", "SRC-3", 2},
		{"display name", "Sprint review", 1},
		{"no match", "unknown-reference", -1},
		{"empty ref", "", -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchSource(sources, tc.ref); got != tc.want {
				t.Errorf("matchSource(%q) = %d, want %d", tc.ref, got, tc.want)
			}
		})
	}
}

func TestMatchSource_TypeBeatsName(t *testing.T) {
	// A later source's origin type wins over an earlier source's display
	// name because each strategy is exhausted before the next is tried.
	sources := BuildRegistry([]model.RawSource{
		{Type: "slack", Name: "email"},
		{Type: "email"},
	})
	if got := matchSource(sources, "email"); got != 1 {
		t.Errorf("matchSource(email) = %d, want 1 (origin-type match)", got)
	}
}

func TestResolveOne_FirstSourceFallback(t *testing.T) {
	sources := testRegistry()
	item := extractedItem{ID: "FR-1", Kind: model.NodeRequirement, Source: "unknown-reference"}

	a := resolveOne(sources, item, false)
	if a.SourceIndex != 0 {
		t.Errorf("SourceIndex = %d, want 0 (first-source fallback)", a.SourceIndex)
	}
	if a.Ambiguous {
		t.Error("fallback attribution should not be flagged ambiguous")
	}
}

func TestResolveOne_MarkAmbiguous(t *testing.T) {
	sources := testRegistry()
	item := extractedItem{ID: "FR-1", Kind: model.NodeRequirement, Source: "unknown-reference"}

	a := resolveOne(sources, item, true)
	if a.SourceIndex != -1 {
		t.Errorf("SourceIndex = %d, want -1", a.SourceIndex)
	}
	if !a.Ambiguous {
		t.Error("unmatched item should be flagged ambiguous")
	}

	// Exact matches are never ambiguous, regardless of the flag.
	exact := resolveOne(sources, extractedItem{ID: "FR-2", Source: "email"}, true)
	if exact.SourceIndex != 0 || exact.Ambiguous {
		t.Errorf("exact match got index %d ambiguous=%v, want 0/false", exact.SourceIndex, exact.Ambiguous)
	}
}

func TestResolveOne_EmptyRegistry(t *testing.T) {
	item := extractedItem{ID: "FR-1", Source: "email"}

	a := resolveOne(nil, item, false)
	if a.SourceIndex != -1 {
		t.Errorf("SourceIndex = %d, want -1 (unattributed)", a.SourceIndex)
	}
	if a.Ambiguous {
		t.Error("empty registry should leave items unattributed, not ambiguous")
	}
}

func TestResolveAttributions_InputOrderPreserved(t *testing.T) {
	sources := testRegistry()
	items := []extractedItem{
		{ID: "BO-1", Kind: model.NodeObjective, Source: "transcript"},
		{ID: "FR-1", Kind: model.NodeRequirement, Source: "SRC-1"},
		{ID: "NFR-1", Kind: model.NodeRequirement},
	}

	attrs := resolveAttributions(sources, items, false)
	if len(attrs) != 3 {
		t.Fatalf("got %d attributions, want 3", len(attrs))
	}
	for i, want := range []int{1, 0, 0} {
		if attrs[i].SourceIndex != want {
			t.Errorf("attrs[%d].SourceIndex = %d, want %d", i, attrs[i].SourceIndex, want)
		}
		if attrs[i].Item.ID != items[i].ID {
			t.Errorf("attrs[%d] is for %q, want %q", i, attrs[i].Item.ID, items[i].ID)
		}
	}
}
