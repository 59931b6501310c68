package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestJSON_ParsesWholeTextDirectly(t *testing.T) {
	v, err := Value(`{"a": 1, "b": [2, 3]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	if m["a"] != float64(1) {
		t.Errorf("expected a=1, got %v", m["a"])
	}
}

func TestJSON_FencedBlockWithTrailingComma(t *testing.T) {
	input := "Here:\n```json\n{\"a\":1,\"b\":2,}\n```"
	v, err := Value(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["a"] != float64(1) || m["b"] != float64(2) {
		t.Errorf("expected {a:1, b:2}, got %v", m)
	}
}

func TestJSON_FencedBlockWithoutLanguageTag(t *testing.T) {
	input := "```\n[1, 2, 3]\n```"
	v, err := Value(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arr, ok := v.([]any); !ok || len(arr) != 3 {
		t.Errorf("expected 3-element array, got %v", v)
	}
}

func TestJSON_ObjectEmbeddedInProse(t *testing.T) {
	input := `Sure! Based on the document, the answer is {"title": "Intro", "anchor": 4} as requested.`
	v, err := Value(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["title"] != "Intro" {
		t.Errorf("expected title Intro, got %v", m["title"])
	}
}

func TestJSON_ObjectRecoveryBeforeArray(t *testing.T) {
	// Both shapes present; object wins because it is tried first.
	input := `noise {"kind": "object"} more noise [1, 2] end`
	v, err := Value(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(map[string]any); !ok {
		t.Fatalf("expected object recovered first, got %T", v)
	}
}

func TestJSON_ArrayRecoveredWhenTargetIsSlice(t *testing.T) {
	// With a typed slice target the object span fails to parse and the
	// array span is recovered instead.
	input := `{"sections": "nope"} but also [{"title": "A"}, {"title": "B"}]`
	type item struct {
		Title string `json:"title"`
	}
	items, err := JSON[[]item](input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Title != "A" {
		t.Errorf("expected [A B], got %v", items)
	}
}

func TestJSON_TrailingCommaInProseEmbeddedObject(t *testing.T) {
	input := `result: {"a": 1, "b": 2,} done`
	v, err := Value(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["b"] != float64(2) {
		t.Errorf("expected b=2, got %v", m["b"])
	}
}

func TestJSON_NoStructureFails(t *testing.T) {
	_, err := Value("no structure here")
	if err == nil {
		t.Fatal("expected error for text without JSON")
	}
	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !strings.Contains(exErr.Preview, "no structure here") {
		t.Errorf("expected preview to carry the text, got %q", exErr.Preview)
	}
}

func TestJSON_ErrorPreviewTruncated(t *testing.T) {
	long := strings.Repeat("x", 5000)
	_, err := Value(long)
	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(exErr.Preview) > 250 {
		t.Errorf("expected truncated preview, got %d bytes", len(exErr.Preview))
	}
}

func TestJSON_TypedTarget(t *testing.T) {
	type resp struct {
		NodeIDs   []string `json:"node_ids"`
		Reasoning string   `json:"reasoning"`
	}
	input := "```json\n{\"node_ids\": [\"0001\", \"0003\"], \"reasoning\": \"intro covers it\"}\n```"
	r, err := JSON[resp](input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.NodeIDs) != 2 || r.NodeIDs[1] != "0003" {
		t.Errorf("expected node ids [0001 0003], got %v", r.NodeIDs)
	}
	if r.Reasoning == "" {
		t.Errorf("expected reasoning to survive extraction")
	}
}
