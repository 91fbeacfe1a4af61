package llm

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
)

// apiError maps a provider HTTP failure onto the shared error taxonomy.
// Quota and credential problems are terminal; everything else (overload,
// timeouts, 5xx) is worth retrying.
func apiError(provider string, status int, body string) error {
	lower := strings.ToLower(body)

	switch {
	case status == http.StatusTooManyRequests && strings.Contains(lower, "quota"),
		strings.Contains(lower, "quota exceeded"),
		strings.Contains(lower, "resource_exhausted") && strings.Contains(lower, "quota"):
		return fmt.Errorf("%s API error (status %d): %w", provider, status, common.ErrQuotaExceeded)
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		strings.Contains(lower, "api key not valid"),
		strings.Contains(lower, "invalid api key"),
		strings.Contains(lower, "permission denied"):
		return fmt.Errorf("%s API error (status %d): %w", provider, status, common.ErrInvalidAPIKey)
	case status == http.StatusTooManyRequests,
		status == http.StatusServiceUnavailable,
		status >= http.StatusInternalServerError,
		strings.Contains(lower, "overloaded"):
		return fmt.Errorf("%s API error (status %d): %w: %s", provider, status, common.ErrAIUnavailable, truncate(body, 200))
	default:
		return fmt.Errorf("%s API error (status %d): %s", provider, status, truncate(body, 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
