package extract

import (
	"errors"
	"testing"
)

func TestTextPlain(t *testing.T) {
	got, err := Text("notes.txt", []byte("line one\n\n  line   two\t\n"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "line one line two" {
		t.Errorf("got %q", got)
	}
}

func TestTextEmptyFile(t *testing.T) {
	if _, err := Text("empty.pdf", nil); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestTextUnsupported(t *testing.T) {
	// PNG magic bytes followed by binary data.
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x01, 0x02}
	_, err := Text("image.png", data)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	// Valid magic, garbage body. Must surface an error, not ErrUnsupported.
	_, err := Text("broken.pdf", []byte("%PDF-1.4 not actually a pdf"))
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
	if errors.Is(err, ErrUnsupported) {
		t.Fatal("corrupt pdf should not be reported as unsupported")
	}
}

func TestIsProbablyText(t *testing.T) {
	if !isProbablyText([]byte("hello, wörld\n")) {
		t.Error("utf-8 text rejected")
	}
	if isProbablyText([]byte{'a', 0x00, 'b'}) {
		t.Error("NUL byte accepted")
	}
}
