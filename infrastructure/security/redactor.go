// Package security keeps credentials out of logs, reports and terminal output.
package security

import (
	"strings"

	"github.com/sirupsen/logrus"

	"ui_automation/domain/interfaces"
)

const mask = "********"

var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "api_key", "apikey", "credential", "private_key",
}

type Redactor struct {
	logger   *logrus.Logger
	keywords []string
}

// NewRedactor - creates a redactor; extra keywords extend the built-in list
func NewRedactor(logger *logrus.Logger, extra ...string) *Redactor {
	keywords := append([]string(nil), sensitiveKeywords...)
	for _, k := range extra {
		keywords = append(keywords, strings.ToLower(k))
	}
	return &Redactor{logger: logger, keywords: keywords}
}

// IsSensitive - checks whether a config key, field name or locator names a secret
func (r *Redactor) IsSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, keyword := range r.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (r *Redactor) Mask(key, value string) string {
	if value == "" || !r.IsSensitive(key) {
		return value
	}
	return mask
}

func (r *Redactor) RedactMap(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	redacted := 0
	for k, v := range values {
		out[k] = r.Mask(k, v)
		if out[k] != v {
			redacted++
		}
	}
	if redacted > 0 {
		r.logger.Debugf("Redacted %d sensitive values", redacted)
	}
	return out
}

var _ interfaces.Redactor = (*Redactor)(nil)
