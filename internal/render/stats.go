package render

import (
	"github.com/pkoukk/tiktoken-go"
)

// Stats summarizes an extraction: raw-html character count, rendered-tree
// character count, nodes before/after compression, approximate and real
// token counts, and the compression ratio. TokensApprox is a chars÷4
// heuristic; TokensReal is a real BPE count via tiktoken-go's cl100k_base
// encoding when that encoding loads, and equals TokensApprox otherwise.
type Stats struct {
	RawHTMLChars     int
	RenderedChars    int
	NodesBeforeCount int
	NodesAfterCount  int
	TokensApprox     int
	TokensReal       int
	CompressionRatio float64
}

var tiktokenEncoding *tiktoken.Tiktoken

func init() {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err == nil {
		tiktokenEncoding = enc
	}
}

// Assemble computes a Stats record from the raw HTML length, the
// pre-compression node count, and the render Result.
func Assemble(rawHTMLChars, nodesBefore int, nodesAfter int, rendered string) Stats {
	s := Stats{
		RawHTMLChars:     rawHTMLChars,
		RenderedChars:    len(rendered),
		NodesBeforeCount: nodesBefore,
		NodesAfterCount:  nodesAfter,
		TokensApprox:     len(rendered) / 4,
	}
	if tiktokenEncoding != nil {
		s.TokensReal = len(tiktokenEncoding.Encode(rendered, nil, nil))
	} else {
		s.TokensReal = s.TokensApprox
	}
	if rawHTMLChars > 0 {
		s.CompressionRatio = float64(rawHTMLChars) / float64(max(1, s.RenderedChars))
	}
	return s
}
