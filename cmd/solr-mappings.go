package main

import (
	"regexp"
	"sort"
	"time"
)

// functions that map an elasticsearch result into the solr response shape

// detects ISO8601 combined date/time strings so they can be re-typed as real
// date values; elasticsearch returns date fields as plain strings.  the
// pattern is deliberately strict: date-only strings and other formats pass
// through untouched rather than risking over-eager coercion.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z$`)

func retypeFieldValue(value interface{}) interface{} {
	str, ok := value.(string)
	if ok == false {
		return value
	}

	if datePattern.MatchString(str) == false {
		return value
	}

	date, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return value
	}

	return date
}

func addRetypedField(doc *solrDocument, name string, value interface{}) {
	switch val := value.(type) {
	case []interface{}:
		// multi-valued fields keep all values, in order
		values := make([]interface{}, len(val))
		for i, v := range val {
			values[i] = retypeFieldValue(v)
		}
		doc.addField(name, values)

	default:
		doc.addField(name, retypeFieldValue(val))
	}
}

func buildResponseHeader(params solrParams, esRes *esSearchResponse) *namedList {
	header := &namedList{}
	header.add("status", 0)
	header.add("QTime", esRes.Took)

	// echo exactly the parameters the translation consulted, so clients can
	// verify how their request was interpreted

	echo := &namedList{}

	if params.hasParam("q") {
		echo.add("q", params.param("q"))
	}

	if params.hasParam("fl") {
		echo.add("fl", params.param("fl"))
	}

	if params.hasParam("sort") {
		echo.add("sort", params.param("sort"))
	}

	// a single fq echoes as a scalar, multiple as a list.  legacy clients
	// depend on this exact shape; do not "fix" it.
	if fqs := params["fq"]; len(fqs) > 0 {
		if len(fqs) > 1 {
			echo.add("fq", fqs)
		} else {
			echo.add("fq", fqs[0])
		}
	}

	start, _ := params.paramInt("start", 0)
	rows, _ := params.paramInt("rows", 10)

	echo.add("start", start)
	echo.add("rows", rows)

	header.add("params", echo)

	return header
}

// emission order for projected fields: the client's fl order first, then any
// extra returned fields sorted by name.  go maps are unordered, so this keeps
// the mapping deterministic for identical inputs.
func projectedFieldOrder(params solrParams, fields map[string]interface{}) []string {
	var names []string

	seen := make(map[string]bool)

	if params.hasParam("fl") {
		for _, name := range splitFieldList(params.param("fl")) {
			if _, ok := fields[name]; ok == true && seen[name] == false {
				names = append(names, name)
				seen[name] = true
			}
		}
	}

	var extra []string
	for name := range fields {
		if seen[name] == false {
			extra = append(extra, name)
		}
	}

	sort.Strings(extra)

	return append(names, extra...)
}

func sortedFieldNames(fields map[string]interface{}) []string {
	var names []string

	for name := range fields {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func buildDocumentList(params solrParams, esRes *esSearchResponse) *solrDocumentList {
	start, _ := params.paramInt("start", 0)

	results := &solrDocumentList{
		numFound: esRes.Hits.Total,
		start:    start,
		maxScore: esRes.Hits.MaxScore,
	}

	for _, hit := range esRes.Hits.Hits {
		doc := &solrDocument{}

		// always add score to document
		doc.addField("score", hit.Score)

		// prefer explicitly requested fields; fall back to the full source
		// map only when no projected fields were returned
		if len(hit.Fields) > 0 {
			for _, name := range projectedFieldOrder(params, hit.Fields) {
				addRetypedField(doc, name, hit.Fields[name])
			}
		} else {
			for _, name := range sortedFieldNames(hit.Source) {
				addRetypedField(doc, name, hit.Source[name])
			}
		}

		results.docs = append(results.docs, doc)
	}

	return results
}

// converts the elasticsearch result into the legacy response tree.  pure;
// assumes the result is well-formed (execution failures never reach here).
func buildSolrResponse(params solrParams, esRes *esSearchResponse) *namedList {
	resp := &namedList{}
	resp.add("responseHeader", buildResponseHeader(params, esRes))
	resp.add("response", buildDocumentList(params, esRes))
	return resp
}
