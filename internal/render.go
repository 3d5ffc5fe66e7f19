package internal

import (
	"fmt"
	"strings"
)

// markup holds the per-dialect formatting tokens. The structural walk over
// the grouped changelog is shared; only these three functions differ.
type markup struct {
	heading    func(text string) string
	subheading func(text string) string
	link       func(text, url string) string
}

var markdownMarkup = markup{
	heading: func(text string) string {
		return "# " + text
	},
	subheading: func(text string) string {
		return "#### " + text
	},
	link: func(text, url string) string {
		if url == "" {
			return text
		}
		return fmt.Sprintf("[%s](%s)", text, url)
	},
}

var restructuredTextMarkup = markup{
	heading: func(text string) string {
		return text + "\n" + strings.Repeat("=", len(text))
	},
	subheading: func(text string) string {
		return text + "\n" + strings.Repeat("-", len(text))
	},
	link: func(text, url string) string {
		if url == "" {
			return text
		}
		return fmt.Sprintf("`%s <%s>`_", text, url)
	},
}

func markupFor(format string) markup {
	if format == FormatRestructuredText {
		return restructuredTextMarkup
	}
	return markdownMarkup
}

// Render serializes the version header and grouped items into the target
// dialect. Blocks are separated by exactly one blank line and empty groups
// are omitted.
func Render(version, headerPrefix string, grouped Grouped, format string) string {
	m := markupFor(format)

	blocks := []string{m.heading(strings.TrimSpace(headerPrefix + " " + version))}
	for _, section := range grouped {
		if len(section.Items) == 0 {
			continue
		}
		var b strings.Builder
		b.WriteString(m.subheading(section.Title))
		b.WriteString("\n")
		for _, item := range section.Items {
			b.WriteString("\n")
			b.WriteString(renderItem(m, item))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func renderItem(m markup, item ChangeItem) string {
	line := fmt.Sprintf("* %s: %s", m.link(item.Identifier(), item.URL), item.Title)
	if item.Author != "" {
		line += fmt.Sprintf(" (%s)", item.Author)
	}
	return line
}
