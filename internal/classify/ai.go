package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
	"github.com/Garcia3528/notalfiscalIA/internal/service"
)

// Generator is the narrow slice of an LLM client the AI strategy needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Per-attempt budget for a single model call. The retry loop wraps this.
const aiAttemptTimeout = 15 * time.Second

var aiRetryOptions = service.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 2 * time.Second,
	MaxDelay:     10 * time.Second,
	Multiplier:   2.0,
}

// AIClassifier asks an LLM for a structured verdict over the invoice text.
// Transport failures are retried with exponential backoff; quota and
// credential errors abort immediately.
type AIClassifier struct {
	generator Generator
}

// NewAIClassifier wraps a generator in the AI classification strategy.
func NewAIClassifier(generator Generator) *AIClassifier {
	return &AIClassifier{generator: generator}
}

// aiVerdict mirrors the JSON contract the prompt demands from the model.
type aiVerdict struct {
	Categoria    string   `json:"categoria"`
	Subcategoria string   `json:"subcategoria"`
	Motivo       string   `json:"motivo"`
	Confianca    float64  `json:"confianca"`
	PalavrasChav []string `json:"palavras_chave"`
	Alternativas []struct {
		Categoria string  `json:"categoria"`
		Confianca float64 `json:"confianca"`
	} `json:"alternativas"`
}

// Classify sends the invoice to the model and parses the verdict. The
// returned result always carries the attempt count, even on error, so the
// orchestrator can report how much work was burned.
func (c *AIClassifier) Classify(ctx context.Context, input model.ClassificationInput) (model.ClassificationResult, error) {
	prompt := buildPrompt(input)

	attempts := 0
	var raw string

	err := common.WithRetry(ctx, func() error {
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, aiAttemptTimeout)
		defer cancel()

		response, genErr := c.generator.Generate(attemptCtx, prompt)
		if genErr != nil {
			return &common.RetryableError{Err: genErr, Retryable: common.IsRetryable(genErr) || isTransient(genErr)}
		}
		raw = response
		return nil
	}, aiRetryOptions)
	if err != nil {
		return model.ClassificationResult{AIAttempts: attempts}, err
	}

	result, err := parseVerdict(raw)
	if err != nil {
		return model.ClassificationResult{AIAttempts: attempts}, err
	}
	result.AIAttempts = attempts
	return result, nil
}

// isTransient marks provider errors worth another attempt. Quota and key
// errors are excluded by IsRetryable before this is consulted.
func isTransient(err error) bool {
	if errors.Is(err, common.ErrQuotaExceeded) || errors.Is(err, common.ErrInvalidAPIKey) {
		return false
	}
	return true
}

func buildPrompt(input model.ClassificationInput) string {
	var b strings.Builder

	b.WriteString("Você é um classificador de despesas de notas fiscais de uma propriedade rural brasileira.\n")
	b.WriteString("Classifique a despesa abaixo em exatamente uma das categorias:\n\n")

	for _, category := range model.Categories() {
		fmt.Fprintf(&b, "- %s: %s\n", category, category.Description())
	}

	b.WriteString("\nExemplos:\n")
	b.WriteString(`Despesa: "Posto Ipiranga - 200L diesel S10" -> {"categoria": "MANUTENÇÃO E OPERAÇÃO", "subcategoria": "Combustíveis e Lubrificantes", "confianca": 0.9}` + "\n")
	b.WriteString(`Despesa: "Cooperativa Coamo - adubo NPK 20-05-20" -> {"categoria": "INSUMOS AGRÍCOLAS", "subcategoria": "Fertilizantes", "confianca": 0.9}` + "\n")
	b.WriteString(`Despesa: "DARF - IRPJ 1º trimestre" -> {"categoria": "IMPOSTOS E TAXAS", "subcategoria": "IRPJ", "confianca": 0.95}` + "\n")
	b.WriteString(`Despesa: "Copel - fatura de energia rural" -> {"categoria": "INFRAESTRUTURA E UTILIDADES", "subcategoria": "Energia Elétrica", "confianca": 0.9}` + "\n")

	b.WriteString("\nDespesa a classificar:\n")
	if input.Supplier.Name != "" {
		fmt.Fprintf(&b, "Fornecedor: %s\n", input.Supplier.Name)
	}
	if input.Supplier.TaxID != "" {
		fmt.Fprintf(&b, "CNPJ/CPF: %s\n", input.Supplier.TaxID)
	}
	for _, item := range input.Items {
		fmt.Fprintf(&b, "Item: %s", item.Description)
		if item.Code != "" {
			fmt.Fprintf(&b, " (código %s)", item.Code)
		}
		b.WriteString("\n")
	}
	if input.RawDescription != "" {
		fmt.Fprintf(&b, "Descrição: %s\n", input.RawDescription)
	}
	if input.TotalValue > 0 {
		fmt.Fprintf(&b, "Valor total: R$ %.2f\n", input.TotalValue)
	}

	b.WriteString("\nResponda APENAS com um objeto JSON no formato:\n")
	b.WriteString(`{"categoria": "...", "subcategoria": "...", "confianca": 0.0, "motivo": "...", "palavras_chave": ["..."], "alternativas": [{"categoria": "...", "confianca": 0.0}]}` + "\n")

	return b.String()
}

// parseVerdict extracts the first balanced JSON object from the model output
// and normalizes it into a result. Free-text category names are coerced to
// the canonical set; an unmappable name degrades to the generic bucket.
func parseVerdict(raw string) (model.ClassificationResult, error) {
	payload, ok := extractJSON(raw)
	if !ok {
		return model.ClassificationResult{}, fmt.Errorf("no JSON object in model response")
	}

	var verdict aiVerdict
	if err := json.Unmarshal([]byte(payload), &verdict); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("parsing model verdict: %w", err)
	}

	confidence := verdict.Confianca
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	result := model.ClassificationResult{
		Subcategory: strings.TrimSpace(verdict.Subcategoria),
		Reason:      strings.TrimSpace(verdict.Motivo),
		Keywords:    verdict.PalavrasChav,
		Source:      model.SourceAI,
	}

	upper := strings.ToUpper(strings.TrimSpace(verdict.Categoria))
	switch {
	case model.Category(upper).IsValid():
		result.Category = model.Category(upper)
		result.Confidence = confidence
	default:
		category, mapped := model.NormalizeCategory(verdict.Categoria)
		if mapped {
			// Synonym match is weaker evidence than an exact name.
			result.Category = category
			result.Confidence = confidence - 0.1
			if result.Confidence < 0.3 {
				result.Confidence = 0.3
			}
		} else {
			result.Category = model.CategoryOther
			result.Confidence = 0.3
			result.Reason = fmt.Sprintf("categoria %q não reconhecida", verdict.Categoria)
		}
	}

	// A generic-bucket verdict must never look confident, even before the
	// orchestrator sees it: it can leak into alternatives unclamped.
	if result.Category == model.CategoryOther && result.Confidence > genericCeil {
		result.Confidence = genericCeil
	}

	for _, alt := range verdict.Alternativas {
		category, mapped := model.NormalizeCategory(alt.Categoria)
		if !mapped {
			continue
		}
		result.Alternatives = append(result.Alternatives, model.Alternative{
			Category:   category,
			Confidence: alt.Confianca,
		})
	}

	return result, nil
}

// extractJSON returns the first brace-balanced object in s. Models often wrap
// the payload in prose or markdown fences; this skips past both.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
