package signing

import (
	"fmt"
	"time"
)

// Primitive appends a visible signature block to a PDF's bytes. It is
// deterministic for a given input and fails closed: on any problem it
// returns an error, never corrupt bytes.
type Primitive interface {
	AppendSignatureBlock(pdfBytes []byte, signerName string, ts time.Time) ([]byte, error)
}

type textBlockSigner struct{}

// NewPrimitive returns the default signer. It appends a plain-text trailer
// block; byte-level PDF rewriting stays behind this interface.
func NewPrimitive() Primitive {
	return &textBlockSigner{}
}

func (s *textBlockSigner) AppendSignatureBlock(pdfBytes []byte, signerName string, ts time.Time) ([]byte, error) {
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("empty pdf content")
	}
	if signerName == "" {
		return nil, fmt.Errorf("empty signer name")
	}

	block := fmt.Sprintf("\n%%Assinado digitalmente por: %s\n%%Data: %s\n",
		signerName, ts.Format("02/01/2006 15:04:05"))

	out := make([]byte, 0, len(pdfBytes)+len(block))
	out = append(out, pdfBytes...)
	out = append(out, block...)
	return out, nil
}
