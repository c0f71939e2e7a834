package confirmation

import (
	"strings"
	"testing"
)

func TestGenerateCodeIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		if code == "" {
			t.Fatal("GenerateCode returned empty string")
		}
		if seen[code] {
			t.Fatalf("GenerateCode produced a duplicate: %s", code)
		}
		seen[code] = true
	}
}

func TestHashCodeIsDeterministicAndOneWay(t *testing.T) {
	code := GenerateCode()
	h1 := HashCode(code)
	h2 := HashCode(code)
	if h1 != h2 {
		t.Error("HashCode is not deterministic")
	}
	if h1 == code {
		t.Error("HashCode returned the plaintext code")
	}
	if len(h1) != 64 {
		t.Errorf("HashCode length = %d, want 64 hex chars", len(h1))
	}
	if HashCode("other") == h1 {
		t.Error("different codes hashed to the same value")
	}
}

func TestEncodeEmailForLink(t *testing.T) {
	got := EncodeEmailForLink("test+one@example.com")
	if strings.Contains(got, "+") {
		t.Errorf("encoded e-mail still contains a literal plus: %q", got)
	}
	if got != "test%2Bone%40example.com" {
		t.Errorf("EncodeEmailForLink = %q", got)
	}
}
