package extractor_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/lyrics-service/internal/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultExtractor() extractor.Extractor {
	return extractor.New(extractor.DefaultPolicy())
}

func TestContainers_NoneMatch(t *testing.T) {
	e := newDefaultExtractor()

	blocks := e.Containers("<html><body><div>nothing here</div></body></html>")

	assert.Empty(t, blocks)
}

func TestContainers_ReturnsEveryMatchInDocumentOrder(t *testing.T) {
	e := newDefaultExtractor()

	markup := `<html><body>
		<div data-lyrics-container="true">first verse</div>
		<div>noise</div>
		<div data-lyrics-container="true">second verse</div>
	</body></html>`

	blocks := e.Containers(markup)
	require.Len(t, blocks, 2)

	text := e.CleanText(blocks)
	assert.Contains(t, text, "first verse")
	assert.Contains(t, text, "second verse")
	assert.Less(t,
		strings.Index(text, "first verse"),
		strings.Index(text, "second verse"),
	)
}

func TestCleanText_EmptyBlockSequence(t *testing.T) {
	e := newDefaultExtractor()

	assert.Equal(t, "", e.CleanText(nil))
}

func TestCleanText_JoinsBlocksWithSingleSeparator(t *testing.T) {
	e := newDefaultExtractor()

	markup := `<html><body>
		<div data-lyrics-container="true">verse one</div>
		<div data-lyrics-container="true">verse two</div>
	</body></html>`

	blocks := e.Containers(markup)
	require.Len(t, blocks, 2)

	assert.Equal(t, "verse one<br/>verse two", e.CleanText(blocks))
}

func TestCleanText_PreservesAllowedInlineTags(t *testing.T) {
	e := newDefaultExtractor()

	markup := `<html><body><div data-lyrics-container="true">line one<br/>line <i>two</i> and <b>three</b></div></body></html>`

	blocks := e.Containers(markup)
	require.Len(t, blocks, 1)

	assert.Equal(t, "line one<br/>line <i>two</i> and <b>three</b>", e.CleanText(blocks))
}

func TestCleanText_LinkContributesFirstSpanContentOnly(t *testing.T) {
	e := newDefaultExtractor()

	markup := `<html><body><div data-lyrics-container="true">before <a href="/annotated"><span>kept <i>emphasis</i></span><span>dropped</span></a> after</div></body></html>`

	blocks := e.Containers(markup)
	require.Len(t, blocks, 1)

	assert.Equal(t, "before kept <i>emphasis</i> after", e.CleanText(blocks))
}

func TestCleanText_DropsDisallowedElements(t *testing.T) {
	e := newDefaultExtractor()

	markup := `<html><body><div data-lyrics-container="true">kept<div class="ad">dropped entirely</div><script>dropped()</script> tail</div></body></html>`

	blocks := e.Containers(markup)
	require.Len(t, blocks, 1)

	assert.Equal(t, "kept tail", e.CleanText(blocks))
}

func TestCleanText_Deterministic(t *testing.T) {
	e := newDefaultExtractor()

	markup := `<html><body><div data-lyrics-container="true">line<br/><i>emphasis</i><a><span>inner</span></a></div></body></html>`

	first := e.CleanText(e.Containers(markup))
	second := e.CleanText(e.Containers(markup))
	assert.Equal(t, first, second)
}

func TestCleanText_CustomPolicy(t *testing.T) {
	e := extractor.New(extractor.Policy{
		ContainerSelector: "p[data-verse='true']",
		InlineTags:        []string{"em"},
		LinkTextTag:       "span",
	})

	markup := `<html><body><p data-verse="true">custom <em>kept</em><b>dropped</b></p></body></html>`

	blocks := e.Containers(markup)
	require.Len(t, blocks, 1)

	assert.Equal(t, "custom <em>kept</em>", e.CleanText(blocks))
}
