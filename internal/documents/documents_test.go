package documents

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/soapyfluffs/soapmaker-web/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	content := []byte("batch record sheet")
	doc := Encode("notes.txt", "text/plain", content)

	if doc.Name != "notes.txt" {
		t.Fatalf("Name = %q, want %q", doc.Name, "notes.txt")
	}
	if !strings.HasPrefix(doc.Content, "data:text/plain;base64,") {
		t.Fatalf("Content does not look like a data uri: %q", doc.Content)
	}
	if doc.Pages != 0 {
		t.Fatalf("Pages = %d, want 0 for non-pdf content", doc.Pages)
	}

	decoded, contentType, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if contentType != "text/plain" {
		t.Fatalf("content type = %q, want %q", contentType, "text/plain")
	}
	if !bytes.Equal(decoded, content) {
		t.Fatalf("decoded content = %q, want %q", decoded, content)
	}
}

func TestEncodeDefaultsContentType(t *testing.T) {
	t.Parallel()

	doc := Encode("blob", "", []byte{0x01, 0x02})
	if doc.ContentType != "application/octet-stream" {
		t.Fatalf("ContentType = %q, want application/octet-stream", doc.ContentType)
	}
}

func TestEncodeToleratesBrokenPDF(t *testing.T) {
	t.Parallel()

	// not a real pdf; page extraction fails quietly and the blob is kept
	doc := Encode("broken.pdf", "application/pdf", []byte("%PDF-not-really"))
	if doc.Pages != 0 {
		t.Fatalf("Pages = %d, want 0 for unreadable pdf", doc.Pages)
	}
	if doc.Content == "" {
		t.Fatal("content should still be stored for unreadable pdf")
	}
}

func TestDecodeRejectsPlainContent(t *testing.T) {
	t.Parallel()

	_, _, err := Decode(models.BatchDocument{Content: "just some text"})
	if !errors.Is(err, ErrNotDataURI) {
		t.Fatalf("expected ErrNotDataURI, got %v", err)
	}
}
