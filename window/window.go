// Package window slices an ordered page sequence into overlapping,
// token-budgeted windows rendered as anchor-tagged text for a
// bounded-context generator.
package window

import (
	"fmt"
	"strings"

	"github.com/dgallion1/treedex/doctree"
)

// Config controls windowing behavior.
type Config struct {
	MaxTokens int // Token budget per window.
	Overlap   int // Pages shared between consecutive windows.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 20000,
		Overlap:   1,
	}
}

// Group splits pages into windows whose summed sizes stay within the token
// budget, rendering each window with TaggedText. Consecutive windows share
// cfg.Overlap pages for structural continuity.
//
// A window grows greedily from its start page and stops before the page
// that would push it over budget, unless that page is the window's first,
// in which case it is included anyway so an oversized single page becomes
// its own window instead of stalling the scan. The next window starts at
// least one page after the previous one started, which bounds the output
// at one window per page and guarantees termination regardless of overlap.
func Group(pages []doctree.Page, cfg Config) []string {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 20000
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	if len(pages) == 0 {
		return nil
	}

	total := 0
	for _, p := range pages {
		total += p.Size
	}
	if total <= cfg.MaxTokens {
		return []string{TaggedText(pages, 0, len(pages)-1)}
	}

	var groups []string
	start := 0

	for start < len(pages) {
		running := 0
		end := start
		for end < len(pages) {
			if running+pages[end].Size > cfg.MaxTokens && end > start {
				end--
				break
			}
			running += pages[end].Size
			end++
		}
		if end > len(pages)-1 {
			end = len(pages) - 1
		}

		groups = append(groups, TaggedText(pages, start, end))

		if end >= len(pages)-1 {
			break
		}

		next := end - cfg.Overlap + 1
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return groups
}

// TaggedText renders pages[start..end] (inclusive) as one string, wrapping
// each page's raw text in markers carrying its page number:
//
//	<page_12>page text</page_12>
//
// The markers let the generator report anchors that are verifiable against
// real page numbers. Page text is not escaped against marker collision; a
// page containing the literal marker syntax can corrupt downstream parsing.
func TaggedText(pages []doctree.Page, start, end int) string {
	var sb strings.Builder
	for i, p := range pages[start : end+1] {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "<page_%d>%s</page_%d>", p.PageNum, p.Text, p.PageNum)
	}
	return sb.String()
}
