package tags

import (
	"bytes"
	"regexp"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/sage-dev/sage/internal/fileutil"
)

var inlinePattern = regexp.MustCompile(`\[\[([^\[\]\n]+)\]\]`)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type frontMatterEnvelope struct {
	Tags []string `yaml:"tags" toml:"tags"`
}

// Existing returns every tag the document already carries: frontmatter
// `tags:` entries first, then inline [[tag]] tokens in order of appearance.
// Tokens inside fenced code blocks, indented code blocks, and code spans are
// not tags.
func Existing(content []byte) []string {
	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		// Malformed frontmatter is not this package's problem; scan the
		// whole document as body text instead.
		meta.Tags = nil
		body = content
	}

	found := append([]string(nil), meta.Tags...)
	found = append(found, inlineTags(body)...)
	return fileutil.DedupeStrings(found)
}

// inlineTags extracts [[tag]] tokens from body, skipping any byte range the
// markdown parser attributes to code.
func inlineTags(body []byte) []string {
	excluded := codeRanges(body)

	var out []string
	for _, match := range inlinePattern.FindAllSubmatchIndex(body, -1) {
		if overlapsAny(excluded, match[0], match[1]) {
			continue
		}
		out = append(out, string(body[match[2]:match[3]]))
	}
	return out
}

// codeRanges parses body and returns the byte ranges covered by fenced code
// blocks, indented code blocks, and inline code spans.
func codeRanges(body []byte) [][2]int {
	doc := markdown.Parser().Parse(text.NewReader(body))

	var ranges [][2]int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			lines := n.Lines()
			if lines.Len() > 0 {
				ranges = append(ranges, [2]int{lines.At(0).Start, lines.At(lines.Len() - 1).Stop})
			}
			return ast.WalkSkipChildren, nil
		case ast.KindCodeSpan:
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					ranges = append(ranges, [2]int{textNode.Segment.Start, textNode.Segment.Stop})
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return ranges
}

func overlapsAny(ranges [][2]int, start, stop int) bool {
	for _, r := range ranges {
		if start < r[1] && stop > r[0] {
			return true
		}
	}
	return false
}
