package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// the solr select parameters, as decoded from the query string.  the legacy
// protocol allows a parameter name to repeat (notably "fq"), so values must
// be kept as ordered lists rather than collapsed to single strings.
type solrParams map[string][]string

func (p solrParams) hasParam(name string) bool {
	_, ok := p[name]
	return ok
}

func (p solrParams) param(name string) string {
	return firstElementOf(p[name])
}

func (p solrParams) paramInt(name string, fallback int) (int, error) {
	if p.hasParam(name) == false {
		return fallback, nil
	}

	str := p.param(name)

	val, err := strconv.Atoi(str)
	if err != nil || val < 0 {
		return 0, fmt.Errorf(`parameter "%s" must be a non-negative integer: [%s]`, name, str)
	}

	return val, nil
}

type sortKey struct {
	field string
	order string
}

func isFieldListSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// solr supports separating field lists by comma or spaces, interchangeably
func splitFieldList(fl string) []string {
	return strings.FieldsFunc(fl, isFieldListSeparator)
}

// splits a solr sort expression into ordered (field, direction) pairs.
// each comma-separated clause is "<field> <asc|desc>" or a bare field name.
// the field name itself may contain spaces, so the clause is split at its
// last space; if what follows is not an exact direction token, the whole
// clause is taken as a bare field name with the engine-default direction.
func parseSortClauses(sort string) []sortKey {
	var keys []sortKey

	for _, clause := range strings.Split(sort, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		key := sortKey{field: clause, order: "asc"}

		if delimiter := strings.LastIndex(clause, " "); delimiter != -1 {
			field := clause[:delimiter]
			order := clause[delimiter+1:]

			if order == "asc" || order == "desc" {
				key.field = field
				key.order = order
			}
		}

		// solr exposes relevance as the pseudo-field "score"
		if key.field == "score" {
			key.field = esScoreField
		}

		keys = append(keys, key)
	}

	return keys
}

// builds the elasticsearch search request equivalent to the given solr
// select parameters.  pure; the only failure mode is malformed pagination.
func translateSolrParams(params solrParams, scope searchScope) (*esSearchRequest, error) {
	start, err := params.paramInt("start", 0)
	if err != nil {
		return nil, err
	}

	rows, err := params.paramInt("rows", 10)
	if err != nil {
		return nil, err
	}

	req := esSearchRequest{indices: scope.indices, types: scope.types}

	req.body.From = start
	req.body.Size = rows

	// the solr query mini-syntax is passed through verbatim; the
	// elasticsearch query_string parser understands it natively
	if q := params.param("q"); q != "" {
		req.body.Query = newQueryStringClause(q)
	}

	// an explicitly empty fl means "no fields, scores only", which is
	// distinct from fl being absent (return all source fields)
	if params.hasParam("fl") == true {
		fields := []string{}

		if fl := params.param("fl"); strings.TrimSpace(fl) != "" {
			fields = splitFieldList(fl)
		}

		req.body.Fields = &fields
	}

	var keys []sortKey

	if params.hasParam("sort") == true {
		keys = parseSortClauses(params.param("sort"))
	} else {
		// default sort by descending relevance
		keys = []sortKey{{field: esScoreField, order: "desc"}}
	}

	for _, key := range keys {
		req.body.Sort = append(req.body.Sort, esSortClause{key.field: esSortOrder{Order: key.order}})
	}

	// filters are unranked boolean constraints; multiple fq values are
	// and-ed together, unlike q which is a single ranked query
	if fqs := params["fq"]; len(fqs) > 0 {
		if len(fqs) > 1 {
			and := esFilter{}
			for _, fq := range fqs {
				and.And = append(and.And, esFilter{Query: newQueryStringClause(fq)})
			}
			req.body.Filter = &and
		} else {
			req.body.Filter = &esFilter{Query: newQueryStringClause(fqs[0])}
		}
	}

	return &req, nil
}

func splitTargets(s string) []string {
	return nonemptyValues(strings.Split(s, ","))
}
