package mindmap

import (
	"fmt"
	"strings"
)

const maxLabelLen = 60

// node is one mind-map vertex: a document title, section heading, or bullet.
type node struct {
	id     string
	label  string
	parent string
}

// buildDOT turns a markdown summary into Graphviz DOT source. The document
// title becomes the root, section headings branch off it, and bullet points
// branch off their nearest heading. Layout itself is left entirely to dot.
func buildDOT(title, markdown string) string {
	nodes := parseOutline(title, markdown)

	var b strings.Builder
	b.WriteString("graph mindmap {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [shape=box, style=rounded, fontname=\"Helvetica\"];\n")

	for _, n := range nodes {
		fmt.Fprintf(&b, "\t%s [label=%q];\n", n.id, n.label)
	}
	for _, n := range nodes {
		if n.parent != "" {
			fmt.Fprintf(&b, "\t%s -- %s;\n", n.parent, n.id)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func parseOutline(title, markdown string) []node {
	root := node{id: "n0", label: truncateLabel(title)}
	nodes := []node{root}

	currentHeading := root.id
	next := 1

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			label := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if label == "" || strings.EqualFold(label, title) {
				continue
			}
			id := fmt.Sprintf("n%d", next)
			next++
			nodes = append(nodes, node{id: id, label: truncateLabel(label), parent: root.id})
			currentHeading = id

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			label := cleanInline(trimmed[2:])
			if label == "" {
				continue
			}
			id := fmt.Sprintf("n%d", next)
			next++
			nodes = append(nodes, node{id: id, label: truncateLabel(label), parent: currentHeading})
		}
	}

	return nodes
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "`", "")
	return strings.TrimSpace(s)
}

func truncateLabel(s string) string {
	s = cleanInline(s)
	// Truncate by runes so a multibyte character is never split.
	runes := []rune(s)
	if len(runes) <= maxLabelLen {
		return s
	}
	return string(runes[:maxLabelLen-3]) + "..."
}
