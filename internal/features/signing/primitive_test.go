package signing

import (
	"strings"
	"testing"
	"time"
)

func TestAppendSignatureBlock(t *testing.T) {
	signer := NewPrimitive()
	ts := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

	out, err := signer.AppendSignatureBlock([]byte("%PDF-1.4 original"), "Ana Sócia", ts)
	if err != nil {
		t.Fatalf("AppendSignatureBlock: %v", err)
	}

	content := string(out)
	if !strings.HasPrefix(content, "%PDF-1.4 original") {
		t.Error("original bytes must be preserved at the start")
	}
	if !strings.Contains(content, "Assinado digitalmente por: Ana Sócia") {
		t.Errorf("missing signer block: %q", content)
	}
	if !strings.Contains(content, "15/08/2026 14:30:00") {
		t.Errorf("missing formatted timestamp: %q", content)
	}
}

func TestAppendSignatureBlockDeterministic(t *testing.T) {
	signer := NewPrimitive()
	ts := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

	a, err := signer.AppendSignatureBlock([]byte("conteudo"), "Bruno", ts)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	b, err := signer.AppendSignatureBlock([]byte("conteudo"), "Bruno", ts)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if string(a) != string(b) {
		t.Error("same input must produce the same output")
	}
}

func TestAppendSignatureBlockFailsClosed(t *testing.T) {
	signer := NewPrimitive()
	ts := time.Now()

	if _, err := signer.AppendSignatureBlock(nil, "Ana", ts); err == nil {
		t.Error("empty content must error")
	}
	if _, err := signer.AppendSignatureBlock([]byte("pdf"), "", ts); err == nil {
		t.Error("empty signer name must error")
	}
}
