/*
Responsibilities
- Select the lyrics containers out of the raw source markup
- Reduce each container to clean text, preserving only the inline
  formatting the policy allows

Both steps are pure: no I/O, no state. Identical markup always yields
byte-identical cleaned text.
*/
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockSeparator joins cleaned blocks; it never appears within a block.
const blockSeparator = "<br/>"

type Extractor struct {
	policy Policy
	inline map[string]struct{}
}

func New(policy Policy) Extractor {
	inline := make(map[string]struct{}, len(policy.InlineTags))
	for _, tag := range policy.InlineTags {
		inline[strings.ToLower(tag)] = struct{}{}
	}
	return Extractor{
		policy: policy,
		inline: inline,
	}
}

// Containers returns every element matching the policy's container
// selector, in document order. No match yields an empty slice, not an
// error; absence is the orchestrator's concern.
func (e *Extractor) Containers(markup string) []Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// html parsing is error-tolerant; only a failing reader lands here,
		// and a string reader cannot fail
		return nil
	}

	var blocks []Block
	doc.Find(e.policy.ContainerSelector).Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) > 0 {
			blocks = append(blocks, Block{node: sel.Nodes[0]})
		}
	})
	return blocks
}

// CleanText walks each block's child nodes in document order and keeps:
//   - text nodes, verbatim
//   - allow-listed inline elements, serialized whole so downstream
//     renderers retain line breaks and emphasis
//   - for hyperlinks, the serialized inner content of their first nested
//     link-text element only (the wrapper is discarded)
//
// Every other element contributes nothing. Blocks are joined with a single
// separator between blocks.
func (e *Extractor) CleanText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, e.cleanBlock(block.node))
	}
	return strings.Join(parts, blockSeparator)
}

func (e *Extractor) cleanBlock(node *html.Node) string {
	var sb strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == html.TextNode:
			sb.WriteString(child.Data)

		case child.Type != html.ElementNode:
			// comments, doctypes and the like carry no lyrics

		case e.isInline(child.Data):
			renderNode(&sb, child)

		case child.Data == "a":
			if span := firstDescendant(child, e.policy.LinkTextTag); span != nil {
				renderChildren(&sb, span)
			}
		}
	}
	return sb.String()
}

func (e *Extractor) isInline(tag string) bool {
	_, ok := e.inline[tag]
	return ok
}

// firstDescendant returns the first element with the given tag beneath
// node, in document order, or nil.
func firstDescendant(node *html.Node, tag string) *html.Node {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
		if found := firstDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func renderNode(sb *strings.Builder, node *html.Node) {
	// rendering into a strings.Builder cannot fail
	_ = html.Render(sb, node)
}

func renderChildren(sb *strings.Builder, node *html.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderNode(sb, child)
	}
}
