package render

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/score"
)

func TestJSONRendererEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewJSONRenderer(&buf)

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestJSONRendererOneLinePerRecord(t *testing.T) {
	rec := extract.Record{
		Id:     "5",
		PP:     extract.Info{Word: "auf", Pos: "APPR", Field: "MF"},
		Object: extract.Info{Word: "Tisch", Pos: "NN", Field: "MF"},
		Candidates: []score.Feature{
			{Index: 1, Word: "legte", Pos: "VVFIN", Field: "LK", AbsDist: -3, RelDist: -2, Class: 1},
		},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Write(rec); err != nil {
		t.Fatal(err)
	}
	if err := r.Write(rec); err != nil {
		t.Fatal(err)
	}

	var lines int
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		lines++
		var got map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}

		if got["id"] != "5" {
			t.Errorf("expected id '5', got %v", got["id"])
		}

		pp, ok := got["pp"].(map[string]any)
		if !ok || pp["word"] != "auf" {
			t.Errorf("expected pp word 'auf', got %v", got["pp"])
		}

		cands, ok := got["candidates"].([]any)
		if !ok || len(cands) != 1 {
			t.Fatalf("expected 1 candidate, got %v", got["candidates"])
		}
		c := cands[0].(map[string]any)
		if c["rel_dist"] != float64(-2) || c["class"] != float64(1) {
			t.Errorf("unexpected candidate %v", c)
		}
	}

	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}
