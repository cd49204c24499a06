package report

import (
	"fmt"
	"strings"
)

// Markdown renders doc as a Markdown document with one table per section.
func Markdown(doc Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", mdEscape(doc.Title))
	fmt.Fprintf(&b, "%s\n\n", mdEscape(doc.BrandLine))
	fmt.Fprintf(&b, "**%s**\n", mdEscape(doc.Headline))

	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", mdEscape(s.Title))
		fmt.Fprintf(&b, "| Item | Value |\n")
		fmt.Fprintf(&b, "| --- | ---: |\n")
		for _, r := range s.Rows {
			fmt.Fprintf(&b, "| %s | %s |\n", mdEscape(r.Label), mdEscape(r.Value))
		}
	}

	fmt.Fprintf(&b, "\n---\n\n%s\n", mdEscape(doc.Copyright()))
	return b.String()
}

var mdReplacer = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
	"\n", " ",
)

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
