package domain

// SearchRequest is the external search surface: a bracket query, optional
// birth data, and pagination bounds.
type SearchRequest struct {
	Query       string
	Birth       *BirthInfo
	Gender      string
	Limit       int
	Offset      int
	IncludeSaju bool
}

// NameInput is a fully specified name for direct evaluation.
type NameInput struct {
	SurnameHangul string
	SurnameHanja  string
	GivenHangul   string
	GivenHanja    string
}

// NameView is the rendered identity of one candidate.
type NameView struct {
	Hangul       string `json:"hangul"`
	Hanja        string `json:"hanja"`
	SurnameLen   int    `json:"surnameLength"`
	GivenNameLen int    `json:"givenNameLength"`
}

// Interpretation is the aggregate verdict attached to one candidate.
type Interpretation struct {
	Score        int      `json:"score"`
	Passed       bool     `json:"isPassed"`
	Status       string   `json:"status"`
	Categories   []string `json:"categories"`
	FailedFrames []string `json:"failedFrames,omitempty"`
}

// SeedResponse is one evaluated candidate: its identity, the aggregate
// interpretation, and the per-frame insight map.
type SeedResponse struct {
	Name           NameView                 `json:"name"`
	Interpretation Interpretation           `json:"interpretation"`
	CategoryMap    map[FrameID]FrameInsight `json:"categoryMap"`
}

// SearchResult is the ranked, paginated search response.
//
// Responses are a total order: descending by score, ties broken by hangul
// string ascending then hanja string ascending. TotalCount counts every
// candidate that cleared the strict gate, retained or not; Truncated is
// set whenever more candidates passed than were retained.
type SearchResult struct {
	Query      string         `json:"query"`
	TotalCount int            `json:"totalCount"`
	Responses  []SeedResponse `json:"responses"`
	Truncated  bool           `json:"truncated"`
}
