package main

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

var testScope = searchScope{indices: []string{"solr"}, types: []string{"docs"}}

func mustTranslate(t *testing.T, params solrParams) *esSearchRequest {
	t.Helper()

	req, err := translateSolrParams(params, testScope)
	if err != nil {
		t.Fatalf("unexpected translation error: %s", err.Error())
	}

	return req
}

func TestTranslateDefaults(t *testing.T) {
	req := mustTranslate(t, solrParams{})

	if req.body.From != 0 || req.body.Size != 10 {
		t.Fatalf("expected from=0 size=10, got from=%d size=%d", req.body.From, req.body.Size)
	}

	if req.body.Query != nil {
		t.Fatalf("expected no query clause, got %+v", req.body.Query)
	}

	if req.body.Filter != nil {
		t.Fatalf("expected no filter, got %+v", req.body.Filter)
	}

	if req.body.Fields != nil {
		t.Fatalf("expected full source projection (nil fields), got %+v", *req.body.Fields)
	}

	expected := []esSortClause{{esScoreField: esSortOrder{Order: "desc"}}}
	if reflect.DeepEqual(req.body.Sort, expected) == false {
		t.Fatalf("expected default sort by descending relevance, got %+v", req.body.Sort)
	}
}

func TestTranslateQueryClause(t *testing.T) {
	req := mustTranslate(t, solrParams{"q": {"title:test AND body:foo"}})

	if req.body.Query == nil || req.body.Query.QueryString == nil {
		t.Fatalf("expected a query_string clause")
	}

	if got := req.body.Query.QueryString.Query; got != "title:test AND body:foo" {
		t.Fatalf("query not passed through verbatim: [%s]", got)
	}

	// present but empty q behaves like no q at all
	req = mustTranslate(t, solrParams{"q": {""}})

	if req.body.Query != nil {
		t.Fatalf("expected no query clause for empty q, got %+v", req.body.Query)
	}
}

func TestTranslatePagination(t *testing.T) {
	req := mustTranslate(t, solrParams{"start": {"5"}, "rows": {"2"}})

	if req.body.From != 5 || req.body.Size != 2 {
		t.Fatalf("expected from=5 size=2, got from=%d size=%d", req.body.From, req.body.Size)
	}

	for _, params := range []solrParams{
		{"start": {"abc"}},
		{"rows": {"abc"}},
		{"start": {"-1"}},
		{"rows": {""}},
	} {
		if _, err := translateSolrParams(params, testScope); err == nil {
			t.Fatalf("expected a translation error for %+v", params)
		}
	}

	// the error identifies the offending parameter
	_, err := translateSolrParams(solrParams{"start": {"oops"}}, testScope)
	if err == nil || strings.Contains(err.Error(), `"start"`) == false {
		t.Fatalf("expected error naming the start parameter, got: %v", err)
	}
}

func TestTranslateFieldList(t *testing.T) {
	// absent fl: all source fields
	req := mustTranslate(t, solrParams{})
	if req.body.Fields != nil {
		t.Fatalf("expected nil fields for absent fl")
	}

	// empty fl: no fields, scores only
	req = mustTranslate(t, solrParams{"fl": {""}})
	if req.body.Fields == nil || len(*req.body.Fields) != 0 {
		t.Fatalf("expected empty fields for empty fl, got %+v", req.body.Fields)
	}

	// comma and whitespace separators are interchangeable
	expected := []string{"a", "b", "c"}

	for _, fl := range []string{"a,b,c", "a b c", "a,b c", "a, b\tc"} {
		req = mustTranslate(t, solrParams{"fl": {fl}})
		if req.body.Fields == nil || reflect.DeepEqual(*req.body.Fields, expected) == false {
			t.Fatalf("fl [%s]: expected %v, got %+v", fl, expected, req.body.Fields)
		}
	}
}

func TestParseSortClauses(t *testing.T) {
	tests := []struct {
		sort     string
		expected []sortKey
	}{
		{"score desc", []sortKey{{esScoreField, "desc"}}},
		{"score", []sortKey{{esScoreField, "asc"}}},
		{"date asc,score desc", []sortKey{{"date", "asc"}, {esScoreField, "desc"}}},
		{"price", []sortKey{{"price", "asc"}}},
		// an invalid direction token means the whole clause is a field name
		{"price descending", []sortKey{{"price descending", "asc"}}},
		{"date desc, price asc", []sortKey{{"date", "desc"}, {"price", "asc"}}},
		{"", nil},
	}

	for _, test := range tests {
		keys := parseSortClauses(test.sort)
		if reflect.DeepEqual(keys, test.expected) == false {
			t.Fatalf("sort [%s]: expected %+v, got %+v", test.sort, test.expected, keys)
		}
	}
}

func filterQueries(f *esFilter) []string {
	var queries []string

	if f == nil {
		return queries
	}

	if f.Query != nil {
		queries = append(queries, f.Query.QueryString.Query)
	}

	for _, sub := range f.And {
		queries = append(queries, filterQueries(&sub)...)
	}

	return queries
}

func TestTranslateFilters(t *testing.T) {
	// no fq: no filter
	req := mustTranslate(t, solrParams{})
	if req.body.Filter != nil {
		t.Fatalf("expected no filter")
	}

	// single fq: a single query filter, not a one-element and list
	req = mustTranslate(t, solrParams{"fq": {"type:book"}})
	if req.body.Filter == nil || req.body.Filter.Query == nil || len(req.body.Filter.And) != 0 {
		t.Fatalf("expected single query filter, got %+v", req.body.Filter)
	}

	// multiple fq values: and-combined
	req = mustTranslate(t, solrParams{"fq": {"type:book", "year:2021"}})
	if req.body.Filter == nil || len(req.body.Filter.And) != 2 || req.body.Filter.Query != nil {
		t.Fatalf("expected and filter with 2 clauses, got %+v", req.body.Filter)
	}

	// filter sets are order-independent
	a := mustTranslate(t, solrParams{"fq": {"a", "b"}})
	b := mustTranslate(t, solrParams{"fq": {"b", "a"}})

	qa := filterQueries(a.body.Filter)
	qb := filterQueries(b.body.Filter)

	sort.Strings(qa)
	sort.Strings(qb)

	if reflect.DeepEqual(qa, qb) == false {
		t.Fatalf("expected equivalent filter sets, got %v vs %v", qa, qb)
	}
}

func TestTranslateDeterminism(t *testing.T) {
	params := solrParams{
		"q":    {"title:test"},
		"fq":   {"type:book", "year:2021"},
		"fl":   {"title,date"},
		"sort": {"date desc,score desc"},
		"rows": {"2"},
	}

	first := mustTranslate(t, params)
	second := mustTranslate(t, params)

	if reflect.DeepEqual(first, second) == false {
		t.Fatalf("identical input produced differing requests")
	}
}

func TestSplitTargets(t *testing.T) {
	if got := splitTargets("solr"); reflect.DeepEqual(got, []string{"solr"}) == false {
		t.Fatalf("expected [solr], got %v", got)
	}

	if got := splitTargets("idx1,idx2"); reflect.DeepEqual(got, []string{"idx1", "idx2"}) == false {
		t.Fatalf("expected [idx1 idx2], got %v", got)
	}

	if got := splitTargets("idx1,,idx2"); reflect.DeepEqual(got, []string{"idx1", "idx2"}) == false {
		t.Fatalf("expected empty targets to be dropped, got %v", got)
	}
}
