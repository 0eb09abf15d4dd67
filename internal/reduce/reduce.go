package reduce

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultMaxChunkLength bounds chunk size for downstream payloads.
const DefaultMaxChunkLength = 6000

// previewPolicy strips unsafe markup from raw page previews. Safe for
// concurrent use once built.
var previewPolicy = bluemonday.UGCPolicy()

// ExtractBody returns the serialized body region of the markup, or an
// empty string when no body content exists or parsing fails.
func ExtractBody(rawMarkup string) string {
	doc, err := loadHTML(rawMarkup)
	if err != nil {
		return ""
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	// The HTML parser synthesizes an empty body for body-less markup;
	// treat that as "no body region".
	if body.Children().Length() == 0 && strings.TrimSpace(body.Text()) == "" {
		return ""
	}

	out, err := goquery.OuterHtml(body)
	if err != nil {
		return ""
	}
	return out
}

// Clean strips script and style regions, converts the remaining markup to
// text with line breaks at element boundaries, trims every line and drops
// blank ones. Line order follows document order. Malformed input yields an
// empty string, never an error.
func Clean(bodyMarkup string) string {
	doc, err := loadHTML(bodyMarkup)
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	var segments []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			segments = append(segments, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	lines := make([]string, 0, len(segments))
	for _, segment := range strings.Split(strings.Join(segments, "\n"), "\n") {
		if line := strings.TrimSpace(segment); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// SplitBounded partitions cleanedText into contiguous, non-overlapping
// slices of at most maxLength bytes each, in original order. Splitting is
// a pure byte-range slice: concatenating the chunks reproduces the input
// exactly. Empty input yields no chunks.
func SplitBounded(cleanedText string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxChunkLength
	}
	if cleanedText == "" {
		return nil
	}

	chunks := make([]string, 0, (len(cleanedText)+maxLength-1)/maxLength)
	for i := 0; i < len(cleanedText); i += maxLength {
		end := i + maxLength
		if end > len(cleanedText) {
			end = len(cleanedText)
		}
		chunks = append(chunks, cleanedText[i:end])
	}
	return chunks
}

// Title extracts the page title, falling back to og:title.
func Title(rawMarkup string) string {
	doc, err := loadHTML(rawMarkup)
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = doc.Find("meta[property='og:title']").AttrOr("content", "")
	}
	return title
}

// SanitizePreview strips scripts and unsafe attributes from raw markup
// before it is echoed back to API clients.
func SanitizePreview(rawMarkup string) string {
	return previewPolicy.Sanitize(rawMarkup)
}

// loadHTML parses markup with automatic charset detection.
func loadHTML(markup string) (*goquery.Document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, errors.New("empty markup")
	}

	data := []byte(markup)
	detected := detectCharset(data)

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), detected)
	if err != nil {
		// Fallback to direct parsing
		return goquery.NewDocumentFromReader(strings.NewReader(markup))
	}
	return goquery.NewDocumentFromReader(utf8Reader)
}

// detectCharset detects the charset of raw HTML bytes, defaulting to utf-8.
func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
