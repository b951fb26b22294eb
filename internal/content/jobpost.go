// Package content holds the text helpers used to present posts: the job body
// parser, card summaries, time formatting and markdown rendering.
package content

import (
	"strings"
	"unicode/utf8"
)

const (
	locationMarker = "**Location:**"
	contractMarker = "**Contract:**"

	// DefaultSectionTitle names the section that collects lines before the first header.
	DefaultSectionTitle = "Job Description"

	maxHeaderRunes = 60
)

type Section struct {
	Title string
	Items []string
}

// JobDetails is the display structure derived from a job body. It is never sent back to the API.
type JobDetails struct {
	Location string
	Contract string
	Sections []Section
}

// ParseJob extracts the Location/Contract markers and splits the remaining lines
// into titled sections of bullet items. Paragraph structure is not preserved: a
// body without headers becomes one default section listing every non-empty line.
func ParseJob(body string) JobDetails {
	var details JobDetails
	current := Section{Title: DefaultSectionTitle}

	flush := func() {
		if len(current.Items) > 0 {
			details.Sections = append(details.Sections, current)
		}
	}

	for _, raw := range strings.Split(normalizeNewlines(body), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if value, ok := markerValue(line, locationMarker); ok {
			details.Location = value
			continue
		}
		if value, ok := markerValue(line, contractMarker); ok {
			details.Contract = value
			continue
		}

		if title, ok := sectionHeader(line); ok {
			flush()
			current = Section{Title: title}
			continue
		}

		if item := bulletText(line); item != "" {
			current.Items = append(current.Items, item)
		}
	}
	flush()

	return details
}

// ComposeJob writes location and contract as marker lines ahead of the body so
// that stored posts stay readable by older clients.
func ComposeJob(location, contract, body string) string {
	location = strings.TrimSpace(location)
	contract = strings.TrimSpace(contract)
	body = strings.TrimLeft(normalizeNewlines(body), "\n")

	var b strings.Builder
	if location != "" {
		b.WriteString(locationMarker + " " + location + "\n")
	}
	if contract != "" {
		b.WriteString(contractMarker + " " + contract + "\n")
	}
	if b.Len() > 0 && body != "" {
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String()
}

// SplitJob is the inverse of ComposeJob: it removes the leading marker lines and
// returns their values with the untouched remainder of the body.
func SplitJob(stored string) (location, contract, body string) {
	rest := normalizeNewlines(stored)

	for {
		line, remainder, found := strings.Cut(rest, "\n")
		trimmed := strings.TrimSpace(line)

		if value, ok := markerValue(trimmed, locationMarker); ok && location == "" {
			location = value
		} else if value, ok := markerValue(trimmed, contractMarker); ok && contract == "" {
			contract = value
		} else {
			break
		}

		if !found {
			rest = ""
			break
		}
		rest = remainder
	}

	if location != "" || contract != "" {
		rest = strings.TrimPrefix(rest, "\n")
	}
	return location, contract, rest
}

func markerValue(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+len(marker):]), true
}

func sectionHeader(line string) (string, bool) {
	title := strings.Trim(line, "*# ")
	if !strings.HasSuffix(title, ":") || utf8.RuneCountInString(title) > maxHeaderRunes {
		return "", false
	}
	title = strings.TrimSpace(strings.TrimSuffix(title, ":"))
	if title == "" {
		return "", false
	}
	return title, true
}

func bulletText(line string) string {
	for _, prefix := range []string{"- ", "* ", "•"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
