package model

// Comparison is one aligned pair of tokenized article passages returned by the
// backend. LeftMissingIndices point into LeftArticleTokens and mark information
// missing from the right article; RightExtraIndices point into RightArticleTokens
// and mark information only the right article has.
type Comparison struct {
	LeftArticleTokens  []string `json:"left_article_array"`
	RightArticleTokens []string `json:"right_article_array"`
	LeftMissingIndices []int    `json:"left_article_missing_info_index"`
	RightExtraIndices  []int    `json:"right_article_extra_info_index"`
}

// ComparisonResult is the full comparison response.
type ComparisonResult struct {
	Comparisons []Comparison `json:"comparisons"`
}

// Segment is a token with its highlight flag.
type Segment struct {
	Token       string
	Highlighted bool
}

// LeftSegments returns the left tokens with missing ones highlighted.
func (c Comparison) LeftSegments() []Segment {
	return segments(c.LeftArticleTokens, c.LeftMissingIndices)
}

// RightSegments returns the right tokens with extra ones highlighted.
func (c Comparison) RightSegments() []Segment {
	return segments(c.RightArticleTokens, c.RightExtraIndices)
}

// HighlightCounts returns the number of valid missing and extra indices.
func (c Comparison) HighlightCounts() (missing, extra int) {
	for _, s := range c.LeftSegments() {
		if s.Highlighted {
			missing++
		}
	}
	for _, s := range c.RightSegments() {
		if s.Highlighted {
			extra++
		}
	}
	return missing, extra
}

// segments pairs tokens with highlight flags; out-of-range indices are ignored.
func segments(tokens []string, highlighted []int) []Segment {
	marked := make(map[int]bool, len(highlighted))
	for _, i := range highlighted {
		if i >= 0 && i < len(tokens) {
			marked[i] = true
		}
	}

	out := make([]Segment, len(tokens))
	for i, tok := range tokens {
		out[i] = Segment{Token: tok, Highlighted: marked[i]}
	}
	return out
}
