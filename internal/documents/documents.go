// Package documents turns uploaded files into self-contained batch
// attachments. Content is embedded as a base64 data URI so records travel
// with their files and no blob store is required.
package documents

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/soapyfluffs/soapmaker-web/models"
)

const dataURIPrefix = "data:"

// ErrNotDataURI reports content that is not a data URI produced by Encode.
var ErrNotDataURI = errors.New("documents: content is not a data uri")

// Encode wraps raw file content into a BatchDocument. PDF uploads get a
// page count; anything a reader cannot make sense of is stored as-is with
// zero pages.
func Encode(name, contentType string, content []byte) models.BatchDocument {
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	doc := models.BatchDocument{
		Name:        name,
		ContentType: contentType,
		Content: fmt.Sprintf("%s%s;base64,%s", dataURIPrefix, contentType,
			base64.StdEncoding.EncodeToString(content)),
	}

	if strings.EqualFold(contentType, "application/pdf") {
		if pages, err := PageCount(content); err == nil {
			doc.Pages = pages
		}
	}

	return doc
}

// Decode extracts the original bytes and content type from an encoded
// document.
func Decode(doc models.BatchDocument) ([]byte, string, error) {
	content := doc.Content
	if !strings.HasPrefix(content, dataURIPrefix) {
		return nil, "", ErrNotDataURI
	}

	rest := strings.TrimPrefix(content, dataURIPrefix)
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", ErrNotDataURI
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("documents: decode content: %w", err)
	}

	return decoded, contentType, nil
}

// PageCount reads a PDF and returns its page count. The parser panics on
// some corrupt files, so the failure is converted into an error here.
func PageCount(content []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = fmt.Errorf("documents: read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("documents: read pdf: %w", err)
	}
	return reader.NumPage(), nil
}
