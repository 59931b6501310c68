package treedex

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	ix := buildFixedIndex(t)
	path := filepath.Join(t.TempDir(), "index.json")

	if err := ix.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Tree) != len(ix.Tree) {
		t.Fatalf("expected %d roots, got %d", len(ix.Tree), len(loaded.Tree))
	}
	if len(loaded.Pages) != len(ix.Pages) {
		t.Fatalf("expected %d pages, got %d", len(ix.Pages), len(loaded.Pages))
	}

	orig := ix.Node("0002")
	got := loaded.Node("0002")
	if got == nil {
		t.Fatal("expected node ids to survive the round trip")
	}
	if got.Start != orig.Start || got.End != orig.End {
		t.Errorf("expected range [%d, %d] re-derived, got [%d, %d]",
			orig.Start, orig.End, got.Start, got.End)
	}
	if got.Text != orig.Text {
		t.Errorf("expected node text re-embedded after load")
	}
}

func TestSave_PersistsSkeletonOnly(t *testing.T) {
	ix := buildFixedIndex(t)
	path := filepath.Join(t.TempDir(), "index.json")

	if err := ix.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, `"version": "1.0"`) {
		t.Error("expected schema version in saved file")
	}
	if !strings.Contains(out, `"page_num"`) {
		t.Error("expected pages in saved file")
	}
	for _, derived := range []string{`"start"`, `"end"`, `"Start"`, `"End"`} {
		if strings.Contains(out, derived) {
			t.Errorf("derived field %s must not be persisted", derived)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	ix := buildFixedIndex(t)

	var buf bytes.Buffer
	if err := ix.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Stats() != ix.Stats() {
		t.Errorf("expected identical stats after decode: %+v vs %+v", decoded.Stats(), ix.Stats())
	}
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	in := strings.NewReader(`{"version": "0.9", "tree": [], "pages": []}`)
	if _, err := Decode(in, nil); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestDecode_GeneratorAttaches(t *testing.T) {
	ix := buildFixedIndex(t)
	var buf bytes.Buffer
	if err := ix.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return `{"node_ids": ["0001"], "reasoning": "r"}`, nil
	})
	loaded, err := Decode(&buf, gen)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	result, err := loaded.Query(context.Background(), "q")
	if err != nil {
		t.Fatalf("query on loaded index: %v", err)
	}
	if len(result.PageRanges) != 1 {
		t.Errorf("expected loaded index to resolve nodes, got %v", result.PageRanges)
	}
}
