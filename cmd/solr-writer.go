package main

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// serializes the legacy response tree into a supported solr wire format.
// the format is chosen by the "wt" parameter; json is the default.

func marshalOrderedEntries(entries []namedListEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, nameErr := json.Marshal(entry.name)
		if nameErr != nil {
			return nil, nameErr
		}

		buf.Write(name)
		buf.WriteByte(':')

		value, valueErr := json.Marshal(entry.value)
		if valueErr != nil {
			return nil, valueErr
		}

		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (nl *namedList) MarshalJSON() ([]byte, error) {
	return marshalOrderedEntries(nl.entries)
}

func (d *solrDocument) MarshalJSON() ([]byte, error) {
	return marshalOrderedEntries(d.entries)
}

func (l *solrDocumentList) MarshalJSON() ([]byte, error) {
	docs := l.docs
	if docs == nil {
		docs = []*solrDocument{}
	}

	nl := namedList{}
	nl.add("numFound", l.numFound)
	nl.add("start", l.start)
	nl.add("maxScore", l.maxScore)
	nl.add("docs", docs)

	return nl.MarshalJSON()
}

// solr formats dates without sub-second precision
func formatSolrDate(date time.Time) string {
	return date.UTC().Format("2006-01-02T15:04:05Z")
}

func xmlEscaped(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func writeXMLTag(buf *bytes.Buffer, tag, name, body string) {
	if name != "" {
		fmt.Fprintf(buf, `<%s name="%s">%s</%s>`, tag, xmlEscaped(name), body, tag)
	} else {
		fmt.Fprintf(buf, `<%s>%s</%s>`, tag, body, tag)
	}
}

func writeXMLValue(buf *bytes.Buffer, name string, value interface{}) {
	switch val := value.(type) {
	case *namedList:
		if name != "" {
			fmt.Fprintf(buf, `<lst name="%s">`, xmlEscaped(name))
		} else {
			buf.WriteString("<lst>")
		}
		for _, entry := range val.entries {
			writeXMLValue(buf, entry.name, entry.value)
		}
		buf.WriteString("</lst>")

	case *solrDocument:
		buf.WriteString("<doc>")
		for _, entry := range val.entries {
			writeXMLValue(buf, entry.name, entry.value)
		}
		buf.WriteString("</doc>")

	case []interface{}:
		if name != "" {
			fmt.Fprintf(buf, `<arr name="%s">`, xmlEscaped(name))
		} else {
			buf.WriteString("<arr>")
		}
		for _, item := range val {
			writeXMLValue(buf, "", item)
		}
		buf.WriteString("</arr>")

	case []string:
		values := make([]interface{}, len(val))
		for i, item := range val {
			values[i] = item
		}
		writeXMLValue(buf, name, values)

	case string:
		writeXMLTag(buf, "str", name, xmlEscaped(val))

	case bool:
		writeXMLTag(buf, "bool", name, fmt.Sprintf("%v", val))

	case int:
		writeXMLTag(buf, "int", name, fmt.Sprintf("%d", val))

	case int64:
		writeXMLTag(buf, "long", name, fmt.Sprintf("%d", val))

	case float32:
		writeXMLTag(buf, "float", name, fmt.Sprintf("%g", val))

	case float64:
		writeXMLTag(buf, "double", name, fmt.Sprintf("%g", val))

	case time.Time:
		writeXMLTag(buf, "date", name, formatSolrDate(val))

	case nil:
		if name != "" {
			fmt.Fprintf(buf, `<null name="%s"/>`, xmlEscaped(name))
		} else {
			buf.WriteString("<null/>")
		}

	default:
		writeXMLTag(buf, "str", name, xmlEscaped(fmt.Sprintf("%v", val)))
	}
}

func writeXMLDocumentList(buf *bytes.Buffer, name string, list *solrDocumentList) {
	fmt.Fprintf(buf, `<result name="%s" numFound="%d" start="%d" maxScore="%g">`, xmlEscaped(name), list.numFound, list.start, list.maxScore)

	for _, doc := range list.docs {
		writeXMLValue(buf, "", doc)
	}

	buf.WriteString("</result>")
}

func marshalSolrXML(resp *namedList) []byte {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)
	buf.WriteString("<response>")

	for _, entry := range resp.entries {
		if list, ok := entry.value.(*solrDocumentList); ok == true {
			writeXMLDocumentList(&buf, entry.name, list)
			continue
		}

		writeXMLValue(&buf, entry.name, entry.value)
	}

	buf.WriteString("</response>")

	return buf.Bytes()
}

func writeSolrResponse(c *gin.Context, status int, params solrParams, resp *namedList) {
	wt := params.param("wt")

	switch wt {
	case "xml":
		c.Data(status, "application/xml; charset=UTF-8", marshalSolrXML(resp))

	case "", "json":
		jsonBytes, err := json.Marshal(resp)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to marshal response")
			return
		}

		c.Data(status, "application/json; charset=UTF-8", jsonBytes)

	default:
		c.String(http.StatusBadRequest, "unsupported wt: [%s]", wt)
	}
}

// renders a failure in the solr error body shape, bypassing the mapper
func writeSolrError(c *gin.Context, status int, params solrParams, err error) {
	header := &namedList{}
	header.add("status", status)
	header.add("QTime", int64(0))

	errorBlock := &namedList{}
	errorBlock.add("msg", err.Error())
	errorBlock.add("code", status)

	resp := &namedList{}
	resp.add("responseHeader", header)
	resp.add("error", errorBlock)

	writeSolrResponse(c, status, params, resp)
}
