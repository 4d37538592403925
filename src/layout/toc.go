package layout

import (
	"bytes"
	"regexp"
	"strings"
)

// tocListItem matches a markdown list line: optional indentation, a
// bullet marker, then the entry text.
var tocListItem = regexp.MustCompile(`^([ \t]*)([*-])[ \t]+(.*)$`)

// indentWidth is one nesting level of space indentation in a Unity
// TableOfContents.md.
const indentWidth = 4

// RewriteToc converts Unity TableOfContents.md list markup into DocFX
// toc.md heading form: a bullet at indentation level n becomes an
// (n+1)-level heading. Non-list lines pass through unchanged.
func RewriteToc(src []byte) []byte {
	var out bytes.Buffer
	for _, line := range strings.SplitAfter(string(src), "\n") {
		trailing := ""
		if strings.HasSuffix(line, "\n") {
			line = strings.TrimSuffix(line, "\n")
			trailing = "\n"
		}
		out.WriteString(rewriteTocLine(line))
		out.WriteString(trailing)
	}
	return out.Bytes()
}

func rewriteTocLine(line string) string {
	m := tocListItem.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	level := indentLevel(m[1])
	return strings.Repeat("#", level+1) + " " + m[3]
}

// indentLevel counts nesting: each tab is one level, each run of four
// spaces is one level.
func indentLevel(indent string) int {
	level := strings.Count(indent, "\t")
	level += strings.Count(indent, " ") / indentWidth
	return level
}
