package window

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/treedex/doctree"
)

func makePages(n, sizeEach int) []doctree.Page {
	pages := make([]doctree.Page, n)
	for i := range pages {
		pages[i] = doctree.Page{PageNum: i, Text: fmt.Sprintf("Page %d text.", i), Size: sizeEach}
	}
	return pages
}

func TestGroup_EverythingFitsInOneWindow(t *testing.T) {
	pages := makePages(5, 100)
	groups := Group(pages, Config{MaxTokens: 1000, Overlap: 1})

	if len(groups) != 1 {
		t.Fatalf("expected 1 window, got %d", len(groups))
	}
	for i := range pages {
		tag := fmt.Sprintf("<page_%d>", i)
		if strings.Count(groups[0], tag) != 1 {
			t.Errorf("expected page %d exactly once, got %d occurrences", i, strings.Count(groups[0], tag))
		}
	}
}

func TestGroup_SplitsOverBudget(t *testing.T) {
	pages := makePages(10, 100)
	groups := Group(pages, Config{MaxTokens: 300, Overlap: 1})

	if len(groups) < 2 {
		t.Fatalf("expected multiple windows, got %d", len(groups))
	}
	if len(groups) > len(pages) {
		t.Fatalf("more windows than pages: %d > %d", len(groups), len(pages))
	}
}

func TestGroup_EveryPageAppears(t *testing.T) {
	pages := makePages(17, 100)
	groups := Group(pages, Config{MaxTokens: 350, Overlap: 2})

	joined := strings.Join(groups, "\n")
	for i := range pages {
		if !strings.Contains(joined, fmt.Sprintf("<page_%d>", i)) {
			t.Errorf("page %d missing from all windows", i)
		}
	}
}

func TestGroup_AdjacentWindowsOverlap(t *testing.T) {
	pages := makePages(10, 100)
	groups := Group(pages, Config{MaxTokens: 300, Overlap: 1})

	for i := 0; i+1 < len(groups); i++ {
		shared := false
		for p := range pages {
			tag := fmt.Sprintf("<page_%d>", p)
			if strings.Contains(groups[i], tag) && strings.Contains(groups[i+1], tag) {
				shared = true
				break
			}
		}
		if !shared {
			t.Errorf("windows %d and %d share no page", i, i+1)
		}
	}
}

func TestGroup_OversizedSinglePageStillProgresses(t *testing.T) {
	pages := []doctree.Page{{PageNum: 0, Text: "huge", Size: 50000}}
	groups := Group(pages, Config{MaxTokens: 1000, Overlap: 1})

	if len(groups) != 1 {
		t.Fatalf("expected exactly 1 window for a single oversized page, got %d", len(groups))
	}
	if !strings.Contains(groups[0], "<page_0>") {
		t.Errorf("oversized page missing from its window")
	}
}

func TestGroup_OversizedPageInMiddle(t *testing.T) {
	pages := makePages(5, 100)
	pages[2].Size = 50000
	groups := Group(pages, Config{MaxTokens: 300, Overlap: 1})

	joined := strings.Join(groups, "\n")
	for i := range pages {
		if !strings.Contains(joined, fmt.Sprintf("<page_%d>", i)) {
			t.Errorf("page %d missing", i)
		}
	}
	if len(groups) > len(pages) {
		t.Errorf("termination bound violated: %d windows for %d pages", len(groups), len(pages))
	}
}

func TestGroup_LargeOverlapStillTerminates(t *testing.T) {
	pages := makePages(8, 100)
	// Overlap larger than any window can be.
	groups := Group(pages, Config{MaxTokens: 250, Overlap: 100})

	if len(groups) == 0 || len(groups) > len(pages) {
		t.Fatalf("expected between 1 and %d windows, got %d", len(pages), len(groups))
	}
	if !strings.Contains(groups[len(groups)-1], fmt.Sprintf("<page_%d>", len(pages)-1)) {
		t.Errorf("last page missing from final window")
	}
}

func TestGroup_EmptyInput(t *testing.T) {
	if groups := Group(nil, DefaultConfig()); groups != nil {
		t.Errorf("expected nil for empty input, got %v", groups)
	}
}

func TestTaggedText_MarkersWrapPageText(t *testing.T) {
	pages := makePages(5, 100)
	out := TaggedText(pages, 1, 3)

	for _, want := range []string{"<page_1>", "</page_1>", "<page_2>", "<page_3>", "Page 2 text."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	for _, absent := range []string{"<page_0>", "<page_4>"} {
		if strings.Contains(out, absent) {
			t.Errorf("expected output to omit %q", absent)
		}
	}
}
