package main

import (
	"net/http"
)

// target indices/types for a single request.  either may name several
// comma-separated targets, which are passed through as a set.
type searchScope struct {
	indices []string
	types   []string
}

type searchContext struct {
	bridge   *bridgeContext
	client   *clientContext
	esClient *http.Client // points to appropriate http client
	params   solrParams
	scope    searchScope
	esReq    *esSearchRequest
	esRes    *esSearchResponse
	solrRes  *namedList
}

type searchResponse struct {
	status int   // http status code
	err    error // error, if any
}

func (s *searchContext) init(b *bridgeContext, c *clientContext) {
	s.bridge = b
	s.client = c
	s.esClient = b.es.client
}

func (s *searchContext) log(format string, args ...interface{}) {
	s.client.log(format, args...)
}

func (s *searchContext) err(format string, args ...interface{}) {
	s.client.err(format, args...)
}

func (s *searchContext) resolveScope() searchScope {
	index := s.bridge.es.defaultIndex
	if val := s.client.ginCtx.Param("index"); val != "" {
		index = val
	}

	docType := s.bridge.es.defaultType
	if val := s.client.ginCtx.Param("type"); val != "" {
		docType = val
	}

	return searchScope{
		indices: splitTargets(index),
		types:   splitTargets(docType),
	}
}

func (s *searchContext) handleSelectRequest() searchResponse {
	s.params = solrParams(s.client.ginCtx.Request.URL.Query())
	s.scope = s.resolveScope()

	esReq, err := translateSolrParams(s.params, s.scope)
	if err != nil {
		s.err("request translation error: %s", err.Error())
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	s.esReq = esReq

	if err := s.esQuery(); err != nil {
		s.err("query execution error: %s", err.Error())
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	s.solrRes = buildSolrResponse(s.params, s.esRes)

	return searchResponse{status: http.StatusOK}
}

func (s *searchContext) handlePingRequest() searchResponse {
	s.esClient = s.bridge.es.healthcheckClient

	s.params = solrParams{}
	s.scope = searchScope{
		indices: splitTargets(s.bridge.es.defaultIndex),
		types:   splitTargets(s.bridge.es.defaultType),
	}

	// we are not interested in records, just connectivity
	s.esReq = &esSearchRequest{indices: s.scope.indices, types: s.scope.types}
	s.esReq.body.Size = 0

	if err := s.esQuery(); err != nil {
		return searchResponse{status: http.StatusInternalServerError, err: err}
	}

	return searchResponse{status: http.StatusOK}
}
