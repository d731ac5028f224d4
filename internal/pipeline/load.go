package pipeline

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/stylegest/internal/paper"
	"github.com/dgallion1/stylegest/internal/parser"
)

// ErrNoDocuments is returned by LoadDir when the directory holds no file of
// a supported format.
var ErrNoDocuments = errors.New("no supported documents found")

var errDuplicate = errors.New("duplicate of an earlier document")

// Upload is one file submitted for analysis.
type Upload struct {
	Filename string
	Data     []byte
}

// LoadDir extracts text from every supported file directly inside dir, in
// name order. Files that fail to parse are reported, not fatal.
func LoadDir(dir string, opts parser.Options, log *slog.Logger) ([]paper.Document, []*DocumentError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}
	sort.Strings(names)

	seen := make(map[string]string)
	var docs []paper.Document
	var failed []*DocumentError
	for _, name := range names {
		text, err := parser.ExtractFile(filepath.Join(dir, name), opts)
		doc, err := accept(seen, name, text, err)
		if err != nil {
			log.Warn("document not loaded", "doc", name, "error", err)
			failed = append(failed, &DocumentError{ID: name, Err: err})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, failed, nil
}

// LoadUploads extracts text from uploaded files in order.
func LoadUploads(uploads []Upload, opts parser.Options, log *slog.Logger) ([]paper.Document, []*DocumentError) {
	seen := make(map[string]string)
	var docs []paper.Document
	var failed []*DocumentError
	for _, u := range uploads {
		text, err := parser.Extract(bytes.NewReader(u.Data), u.Filename, opts)
		doc, err := accept(seen, u.Filename, text, err)
		if err != nil {
			log.Warn("document not loaded", "doc", u.Filename, "error", err)
			failed = append(failed, &DocumentError{ID: u.Filename, Err: err})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, failed
}

// accept turns a parse result into a Document, rejecting text already seen
// under another name so a paper submitted twice is not counted twice.
func accept(seen map[string]string, id, text string, err error) (paper.Document, error) {
	if err != nil {
		return paper.Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return paper.Document{}, errEmptyDocument
	}
	hash := ContentHashHex([]byte(text))
	if first, ok := seen[hash]; ok {
		return paper.Document{}, fmt.Errorf("%w %s", errDuplicate, first)
	}
	seen[hash] = id
	return paper.Document{ID: id, Text: text}, nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
