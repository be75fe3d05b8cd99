package extractor

import "golang.org/x/net/html"

// Policy describes the source's markup contract: which elements hold lyrics
// and which inline tags survive cleaning. The selector and tag allow-list
// are configuration, not code. When the source changes its markup, only
// the policy changes.
type Policy struct {
	// ContainerSelector matches every element carrying the source's
	// lyrics-container marker attribute.
	ContainerSelector string
	// InlineTags is the allow-list of formatting elements whose serialized
	// form is kept verbatim in the cleaned text.
	InlineTags []string
	// LinkTextTag names the child element inside a hyperlink whose inner
	// content replaces the link wrapper.
	LinkTextTag string
}

// DefaultPolicy returns the markup contract the lyrics source currently
// publishes.
func DefaultPolicy() Policy {
	return Policy{
		ContainerSelector: "div[data-lyrics-container='true']",
		InlineTags:        []string{"br", "i", "b"},
		LinkTextTag:       "span",
	}
}

// Block is one structural markup fragment identified as carrying part of
// the lyrics.
type Block struct {
	node *html.Node
}

// NewBlockForTest wraps a parsed node as a Block so tests can construct
// blocks without going through Containers.
func NewBlockForTest(node *html.Node) Block {
	return Block{node: node}
}
