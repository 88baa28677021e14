//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"testing"
)

func TestSpeedscopeEventsBalances(t *testing.T) {
	a, b := intern("a"), intern("b")
	evs := []event{
		{at: 0, frame: a, open: true},
		{at: 1000, frame: b, open: true},
		{at: 500, frame: b}, // clock went backwards
		{at: 3000, frame: a, open: true},
		{at: 4000, frame: b}, // mismatched close
	}
	out, end := speedscopeEvents(evs)
	var opens, closes int
	for _, e := range out {
		switch e.Type {
		case "O":
			opens++
		case "C":
			closes++
		}
	}
	if opens != closes {
		t.Fatalf("opens %d closes %d: %+v", opens, closes, out)
	}
	if out[2].At != 1 {
		t.Errorf("backwards close at %d, want 1", out[2].At)
	}
	if end != 3 {
		t.Errorf("end = %d, want 3", end)
	}
}

func TestDumpWritesSpeedscope(t *testing.T) {
	Init(64)
	func() {
		defer Start("outer")()
		defer Start("inner")()
	}()
	path, err := Dump(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ssFile
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Profiles) != 1 || len(doc.Profiles[0].Events) != 4 {
		t.Errorf("profiles = %+v", doc.Profiles)
	}
}
