package main

// request/response structures for the elasticsearch search API.
// only the parts of the DSL this service generates and reads are modeled.

// internal name of the relevance score field
const esScoreField = "_score"

type esQueryString struct {
	Query string `json:"query"`
}

type esQueryClause struct {
	QueryString *esQueryString `json:"query_string,omitempty"`
}

func newQueryStringClause(query string) *esQueryClause {
	return &esQueryClause{QueryString: &esQueryString{Query: query}}
}

// a filter is either a single query filter or an "and" list of filters
type esFilter struct {
	And   []esFilter     `json:"and,omitempty"`
	Query *esQueryClause `json:"query,omitempty"`
}

type esSortOrder struct {
	Order string `json:"order"`
}

type esSortClause map[string]esSortOrder

type esSearchBody struct {
	Query  *esQueryClause `json:"query,omitempty"`
	Filter *esFilter      `json:"filter,omitempty"`
	Sort   []esSortClause `json:"sort,omitempty"`
	Fields *[]string      `json:"fields,omitempty"` // nil: return _source; empty: scores only
	From   int            `json:"from"`
	Size   int            `json:"size"`
}

type esSearchRequest struct {
	indices []string
	types   []string
	body    esSearchBody
}

type esShards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type esResponseHit struct {
	Index  string                 `json:"_index"`
	Type   string                 `json:"_type"`
	ID     string                 `json:"_id"`
	Score  float32                `json:"_score"`
	Fields map[string]interface{} `json:"fields,omitempty"`
	Source map[string]interface{} `json:"_source,omitempty"`
}

type esResponseHits struct {
	Total    int             `json:"total"`
	MaxScore float32         `json:"max_score"`
	Hits     []esResponseHit `json:"hits"`
}

type esError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// a catch-all for search and ping responses
type esSearchResponse struct {
	Took     int64          `json:"took"`
	TimedOut bool           `json:"timed_out"`
	Shards   esShards       `json:"_shards"`
	Hits     esResponseHits `json:"hits"`
	Status   int            `json:"status,omitempty"`
	ErrorRaw interface{}    `json:"error,omitempty"`
	err      *esError       // will be parsed from ErrorRaw
}
