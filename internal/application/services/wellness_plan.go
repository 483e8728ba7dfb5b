package services

import (
	"strings"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

const planHeadingPrefix = "###"

// ParseWellnessPlan splits plan text at "### heading" lines. Text before the first
// heading becomes a section with an empty heading, and is omitted when blank.
func ParseWellnessPlan(text string) []entities.PlanSection {
	sections := make([]entities.PlanSection, 0)

	var heading string
	var body []string
	started := false

	flush := func() {
		b := strings.TrimSpace(strings.Join(body, "\n"))
		if started || b != "" {
			sections = append(sections, entities.PlanSection{Heading: heading, Body: b})
		}
		body = body[:0]
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, planHeadingPrefix) && !strings.HasPrefix(trimmed, planHeadingPrefix+"#") {
			flush()
			heading = strings.TrimSpace(strings.TrimPrefix(trimmed, planHeadingPrefix))
			started = true
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}
