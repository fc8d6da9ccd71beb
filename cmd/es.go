package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

func (r *esSearchResponse) convertError() {
	// the error block differs across elasticsearch versions: older releases
	// return a plain string, newer ones a structured object.  we read it in
	// as interface{} and decode the structured form into an esError.

	switch val := r.ErrorRaw.(type) {
	case string:
		r.err = &esError{Reason: val}

	case map[string]interface{}:
		var esErr esError

		cfg := &mapstructure.DecoderConfig{
			Metadata:   nil,
			Result:     &esErr,
			TagName:    "json",
			ZeroFields: true,
		}

		dec, _ := mapstructure.NewDecoder(cfg)

		if mapDecErr := dec.Decode(val); mapDecErr != nil || esErr.Reason == "" {
			esErr.Reason = fmt.Sprintf("%v", val)
		}

		r.err = &esErr
	}
}

func (s *searchContext) esSearchURL() string {
	pieces := []string{s.bridge.es.url}

	if len(s.scope.indices) > 0 {
		pieces = append(pieces, strings.Join(s.scope.indices, ","))

		// a type scope is only meaningful within an index scope
		if len(s.scope.types) > 0 {
			pieces = append(pieces, strings.Join(s.scope.types, ","))
		}
	}

	pieces = append(pieces, "_search")

	return strings.Join(pieces, "/")
}

func (s *searchContext) esQuery() error {
	jsonBytes, jsonErr := json.Marshal(s.esReq.body)
	if jsonErr != nil {
		s.log("Marshal() failed: %s", jsonErr.Error())
		return fmt.Errorf("Failed to marshal Elasticsearch request")
	}

	url := s.esSearchURL()

	req, reqErr := http.NewRequest("POST", url, bytes.NewBuffer(jsonBytes))
	if reqErr != nil {
		s.log("NewRequest() failed: %s", reqErr.Error())
		return fmt.Errorf("Failed to create Elasticsearch request")
	}

	req.Header.Set("Content-Type", "application/json")

	if s.client.opts.verbose == true {
		s.log("[ES] req: %s [%s]", url, string(jsonBytes))
	} else {
		s.log("[ES] req: %s", url)
	}

	start := time.Now()
	res, resErr := s.esClient.Do(req)
	elapsedMS := int64(time.Since(start) / time.Millisecond)

	// external service failure logging (scenario 1)

	if resErr != nil {
		status := http.StatusBadRequest
		errMsg := resErr.Error()
		if strings.Contains(errMsg, "Timeout") {
			status = http.StatusRequestTimeout
			errMsg = fmt.Sprintf("%s timed out", url)
		} else if strings.Contains(errMsg, "connection refused") {
			status = http.StatusServiceUnavailable
			errMsg = fmt.Sprintf("%s refused connection", url)
		}

		s.log("client.Do() failed: %s", resErr.Error())
		s.log("ERROR: Failed response from POST %s - %d:%s. Elapsed Time: %d (ms)", url, status, errMsg, elapsedMS)
		return fmt.Errorf("Failed to receive Elasticsearch response")
	}

	defer res.Body.Close()

	var esRes esSearchResponse

	decoder := json.NewDecoder(res.Body)

	// external service failure logging (scenario 2)

	if decErr := decoder.Decode(&esRes); decErr != nil {
		s.log("Decode() failed: %s", decErr.Error())
		s.log("ERROR: Failed response from POST %s - %d:%s. Elapsed Time: %d (ms)", url, http.StatusInternalServerError, decErr.Error(), elapsedMS)
		return fmt.Errorf("Failed to decode Elasticsearch response")
	}

	// external service success logging

	s.log("Successful Elasticsearch response from POST %s. Elapsed Time: %d (ms)", url, elapsedMS)

	esRes.convertError()

	// quick validation
	if esRes.err != nil {
		s.log("[ES] res: error: { type = %s, reason = %s }", esRes.err.Type, esRes.err.Reason)
		return fmt.Errorf("%s", esRes.err.Reason)
	}

	if esRes.Shards.Failed > 0 {
		s.log("[ES] res: %d of %d shards failed", esRes.Shards.Failed, esRes.Shards.Total)
		return fmt.Errorf("%d of %d shards failed", esRes.Shards.Failed, esRes.Shards.Total)
	}

	s.esRes = &esRes

	s.log("[ES] res: { took = %d, total = %d, hits = %d, maxScore = %0.2f }", esRes.Took, esRes.Hits.Total, len(esRes.Hits.Hits), esRes.Hits.MaxScore)

	return nil
}
