// Package pdftext extracts classification inputs from PDF invoices.
package pdftext

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// ExtractText returns the plain text of every page in the PDF at path.
func ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading extracted text: %w", err)
	}
	return buf.String(), nil
}

var (
	// CNPJ with or without punctuation, then CPF.
	taxIDPattern = regexp.MustCompile(`\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}|\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)

	// "VALOR TOTAL ... 1.234,56" and similar labels on Brazilian invoices.
	totalPattern = regexp.MustCompile(`(?i)(?:valor\s+total|total\s+da\s+nota|total\s+a\s+pagar|vl\.?\s*total)\D{0,20}([\d.]+,\d{2})`)

	// Any Brazilian-formatted amount, used when no labeled total is found.
	amountPattern = regexp.MustCompile(`[\d.]+,\d{2}`)
)

// ParseInvoice builds a classification input from raw invoice text. The
// parsing is heuristic: the first non-empty line is taken as the supplier,
// the first tax id as its CNPJ/CPF, and the labeled total (or failing that
// the largest amount on the page) as the total value.
func ParseInvoice(text string) model.ClassificationInput {
	input := model.ClassificationInput{RawDescription: condense(text)}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			input.Supplier.Name = line
			break
		}
	}

	if m := taxIDPattern.FindString(text); m != "" {
		input.Supplier.TaxID = m
	}

	if m := totalPattern.FindStringSubmatch(text); m != nil {
		input.TotalValue = parseAmount(m[1])
	} else {
		var largest float64
		for _, raw := range amountPattern.FindAllString(text, -1) {
			if v := parseAmount(raw); v > largest {
				largest = v
			}
		}
		input.TotalValue = largest
	}

	return input
}

// parseAmount converts "1.234,56" to 1234.56. Returns 0 on malformed input.
func parseAmount(raw string) float64 {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return v
}

// condense collapses runs of whitespace so the raw description stays
// scannable by the keyword strategies.
func condense(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
