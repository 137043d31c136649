package watchlist

import (
	"strings"
	"testing"
)

func TestEmptyWatchlist(t *testing.T) {
	w := New()
	if w.Loaded() {
		t.Fatal("fresh watchlist reports loaded")
	}
	if w.Contains("1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm") {
		t.Fatal("empty watchlist must contain nothing")
	}
}

func TestLoadAndContains(t *testing.T) {
	w := New()
	addrs := []string{
		"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"  0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf  ", // trimmed on load
		"",
	}
	n := w.Load(addrs, 1000, 0.01)
	if n != 3 {
		t.Fatalf("loaded %d addresses, want 3 (blank skipped)", n)
	}
	if !w.Loaded() {
		t.Fatal("watchlist must report loaded")
	}
	if w.Size() != 3 {
		t.Fatalf("size %d, want 3", w.Size())
	}

	for _, a := range []string{
		"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf",
	} {
		if !w.Contains(a) {
			t.Fatalf("loaded address %q not found", a)
		}
	}
	if w.Contains("1BoatSLRHtKNngkdXEeobR76b53LETtpyT") {
		t.Fatal("unexpected hit for never-loaded address")
	}
}

func TestLoadReplacesFilter(t *testing.T) {
	w := New()
	w.Load([]string{"addr-one"}, 100, 0.01)
	w.Load([]string{"addr-two"}, 100, 0.01)

	if w.Contains("addr-one") {
		t.Fatal("old filter contents survived reload")
	}
	if !w.Contains("addr-two") {
		t.Fatal("new filter contents missing")
	}
}

func TestLoadReader(t *testing.T) {
	w := New()
	in := strings.NewReader("addr-a\n\naddr-b\naddr-c\n")
	n, err := w.LoadReader(in, 100, 0.01)
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("loaded %d, want 3", n)
	}
	if !w.Contains("addr-b") {
		t.Fatal("addr-b missing")
	}
}
