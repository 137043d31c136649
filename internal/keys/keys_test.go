package keys

import (
	"regexp"
	"strings"
	"testing"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestHexFormat(t *testing.T) {
	var k PrivateKey
	k[0] = 0x01
	k[31] = 0xff

	s := k.Hex()
	if !hexRe.MatchString(s) {
		t.Fatalf("encoding %q does not match ^[0-9a-f]{64}$", s)
	}
	if !strings.HasPrefix(s, "01") || !strings.HasSuffix(s, "ff") {
		t.Fatalf("zero-padding broken: %q", s)
	}
}

func TestHexRoundTrip(t *testing.T) {
	var k PrivateKey
	for i := range k {
		k[i] = byte(i * 7)
	}
	got, err := ParseHex(k.Hex())
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if got != k {
		t.Fatalf("round trip mismatch: %x != %x", got, k)
	}
}

func TestParseHexRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"abcd",
		"0x" + strings.Repeat("ab", 31), // prefixed, 64 chars but not canonical
		strings.Repeat("g", 64),
		strings.Repeat("ab", 33),
	}
	for _, s := range cases {
		if _, err := ParseHex(s); err == nil {
			t.Fatalf("ParseHex(%q) accepted invalid input", s)
		}
	}
}

func TestMnemonicIs24Words(t *testing.T) {
	var k PrivateKey
	for i := range k {
		k[i] = byte(i)
	}
	phrase, err := k.Mnemonic()
	if err != nil {
		t.Fatalf("Mnemonic failed: %v", err)
	}
	if words := len(strings.Fields(phrase)); words != 24 {
		t.Fatalf("expected 24 words for 256-bit entropy, got %d", words)
	}
}
