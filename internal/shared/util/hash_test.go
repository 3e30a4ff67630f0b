package util

import "testing"

func TestFingerprint(t *testing.T) {
	got := Fingerprint("resume text", "job description")
	if got != Fingerprint("resume text", "job description") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Fatalf("expected part boundaries to matter")
	}
}
