package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"kitabqa/internal/domain"
)

// LoadPages extracts text per page from the PDF at path.
// Page numbers are 1-based.
func LoadPages(path string) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]domain.Page, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// one unreadable page should not abort the whole book
			continue
		}
		pages = append(pages, domain.Page{Number: i, Text: NormalizeWhitespace(text)})
	}
	return pages, nil
}

// NormalizeWhitespace trims every line and drops blank lines, keeping
// Urdu punctuation intact.
func NormalizeWhitespace(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Resolve returns the configured document path when the file exists.
// Otherwise it falls back to the first *.pdf under dataDir. When no
// candidate exists, the configured path is returned alongside the error
// so callers can report where the document was expected.
func Resolve(pdfPath, dataDir string) (string, error) {
	if _, err := os.Stat(pdfPath); err == nil {
		return pdfPath, nil
	}
	matches, _ := filepath.Glob(filepath.Join(dataDir, "*.pdf"))
	sort.Strings(matches)
	if len(matches) > 0 {
		return matches[0], nil
	}
	return pdfPath, fmt.Errorf("document not found at %s", pdfPath)
}
