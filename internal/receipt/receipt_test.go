package receipt

import (
	"bytes"
	"strings"
	"testing"
)

// Minimal valid PNG header; enough for content sniffing.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, bytes.Repeat([]byte{0}, 32)...)

func TestEncode(t *testing.T) {
	att, err := Encode("boleto.png", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.MediaType != "image/png" {
		t.Fatalf("media type = %q", att.MediaType)
	}
	if !strings.HasPrefix(att.DataURI, "data:image/png;base64,") {
		t.Fatalf("data URI prefix wrong: %q", att.DataURI[:30])
	}
	if !bytes.Equal(att.Data, pngBytes) {
		t.Fatal("raw bytes not preserved")
	}
}

func TestEncodeSniffsWithoutExtension(t *testing.T) {
	att, err := Encode("comprovante", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.MediaType != "image/png" {
		t.Fatalf("media type = %q", att.MediaType)
	}
}

func TestEncodeRejectsEmptyAndUnknown(t *testing.T) {
	if _, err := Encode("boleto.png", nil); err != ErrEmptyFile {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := Encode("notas.txt", []byte("plain text, not a receipt")); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	att, err := Encode("boleto.pdf", []byte("%PDF-1.4 fake body"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(att.DataURI)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.MediaType != "application/pdf" {
		t.Fatalf("media type = %q", back.MediaType)
	}
	if !bytes.Equal(back.Data, att.Data) {
		t.Fatal("payload changed in round trip")
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, bad := range []string{"", "image/png;base64,AAAA", "data:nope", "data:;base64,AAAA", "data:image/png;base64,%%%"} {
		if _, err := Decode(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}
