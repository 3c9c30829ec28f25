package security

import "testing"

func TestGenerateResetToken(t *testing.T) {
	raw, digest, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if len(raw) != resetTokenBytes*2 {
		t.Fatalf("raw token length = %d, want %d", len(raw), resetTokenBytes*2)
	}
	if digest != DigestToken(raw) {
		t.Fatal("returned digest does not match DigestToken(raw)")
	}

	raw2, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if raw == raw2 {
		t.Fatal("two generated tokens collided")
	}
}

func TestDigestTokenIsStable(t *testing.T) {
	const tok = "deadbeef"
	if DigestToken(tok) != DigestToken(tok) {
		t.Fatal("digest not deterministic")
	}
	if DigestToken(tok) == DigestToken(tok+"0") {
		t.Fatal("distinct tokens share a digest")
	}
}
