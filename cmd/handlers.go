package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (b *bridgeContext) selectHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(b, c)

	s := searchContext{}
	s.init(b, &cl)

	cl.logRequest()
	resp := s.handleSelectRequest()
	cl.logResponse(resp)

	if resp.err != nil {
		writeSolrError(c, resp.status, s.params, resp.err)
		return
	}

	writeSolrResponse(c, resp.status, s.params, s.solrRes)
}

func (b *bridgeContext) ignoreHandler(c *gin.Context) {
}

func (b *bridgeContext) versionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, b.version)
}

func (b *bridgeContext) healthCheckHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(b, c)

	s := searchContext{}
	s.init(b, &cl)

	ping := s.handlePingRequest()

	// build response

	internalServiceError := false

	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}

	hcES := hcResp{Healthy: true}
	if ping.err != nil {
		internalServiceError = true
		hcES = hcResp{Healthy: false, Message: ping.err.Error()}
	}

	hcMap := make(map[string]hcResp)
	hcMap["elasticsearch"] = hcES

	hcStatus := http.StatusOK
	if internalServiceError == true {
		hcStatus = http.StatusInternalServerError
	}

	c.JSON(hcStatus, hcMap)
}
