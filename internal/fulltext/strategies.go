// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds how many pages a strategy reads from one document.
const maxPages = 20

// Strategy is one way of pulling plain text out of PDF bytes. A
// strategy reports failure through an error or through output too
// short to be usable; the extractor walks the chain until one
// succeeds.
type Strategy interface {
	Name() string
	TryExtract(data []byte) (string, error)
}

// plainTextStrategy walks the PDF page tree and concatenates each
// page's plain text. Primary strategy; handles well-formed PDFs.
type plainTextStrategy struct{}

func (plainTextStrategy) Name() string { return "plaintext" }

func (plainTextStrategy) TryExtract(data []byte) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// rowTextStrategy reads text row by row. Recovers text from PDFs whose
// layout defeats the plain-text walk.
type rowTextStrategy struct{}

func (rowTextStrategy) Name() string { return "rowtext" }

func (rowTextStrategy) TryExtract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// streamTextStrategy is the last-resort salvage pass: it works on the
// raw bytes without a PDF parser, inflating FlateDecode content
// streams and harvesting string literals from BT…ET text objects. It
// exists for documents the parser library rejects, so it must not
// depend on that library.
type streamTextStrategy struct{}

func (streamTextStrategy) Name() string { return "streamtext" }

var (
	streamRe     = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)
	btRe         = regexp.MustCompile(`(?s)BT\s+(.*?)\s+ET`)
	tjRe         = regexp.MustCompile(`\(([^)\\]*(?:\\.[^)\\]*)*)\)\s*Tj`)
	tjArrayRe    = regexp.MustCompile(`\[([^\]]+)\]\s*TJ`)
	strLiteralRe = regexp.MustCompile(`\(([^)\\]*(?:\\.[^)\\]*)*)\)`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
)

func (streamTextStrategy) TryExtract(data []byte) (string, error) {
	// Inflate every FlateDecode stream body; keep uncompressed bodies
	// and the rest of the document as-is.
	var content strings.Builder
	content.Write(data)
	for _, m := range streamRe.FindAllSubmatch(data, -1) {
		if inflated, err := inflate(m[1]); err == nil {
			content.Write(inflated)
			content.WriteString("\n")
		}
	}

	parts := harvestTextOperators(content.String())
	text := strings.Join(parts, " ")
	if len(strings.TrimSpace(text)) < 200 {
		// Printable-run fallback works even for stream layouts the
		// operator pass cannot see.
		text = extractPrintableRuns(data)
	}
	return strings.TrimSpace(text), nil
}

// harvestTextOperators collects readable (…) Tj and […] TJ string
// literals from BT…ET text objects.
func harvestTextOperators(s string) []string {
	var parts []string
	for _, bt := range btRe.FindAllStringSubmatch(s, -1) {
		block := bt[1]

		for _, m := range tjRe.FindAllStringSubmatch(block, -1) {
			if text := unescapePDFString(m[1]); isReadable(text) {
				parts = append(parts, text)
			}
		}
		for _, m := range tjArrayRe.FindAllStringSubmatch(block, -1) {
			var b strings.Builder
			for _, lit := range strLiteralRe.FindAllStringSubmatch(m[1], -1) {
				b.WriteString(unescapePDFString(lit[1]))
			}
			if text := b.String(); isReadable(text) {
				parts = append(parts, text)
			}
		}
	}
	return parts
}

func inflate(body []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func unescapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
		`\\`, `\`,
		`\(`, `(`,
		`\)`, `)`,
	)
	return replacer.Replace(s)
}

// isReadable reports whether more than half the characters are
// printable ASCII, filtering out binary-encoded literals.
func isReadable(s string) bool {
	if len(s) == 0 {
		return false
	}
	printable := 0
	for _, c := range s {
		if c >= 32 && c < 127 {
			printable++
		}
	}
	return printable > len(s)/2
}

// extractPrintableRuns pulls runs of printable ASCII out of arbitrary
// bytes, separating runs with newlines.
func extractPrintableRuns(data []byte) string {
	var b strings.Builder
	run := 0
	for _, c := range data {
		if (c >= 32 && c < 127) || c == '\n' || c == '\r' || c == '\t' {
			b.WriteByte(c)
			run++
		} else {
			if run > 0 {
				b.WriteByte('\n')
			}
			run = 0
		}
	}
	collapsed := blankRunsRe.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(collapsed)
}

// defaultStrategies is the ordered extraction chain.
func defaultStrategies() []Strategy {
	return []Strategy{plainTextStrategy{}, rowTextStrategy{}, streamTextStrategy{}}
}
