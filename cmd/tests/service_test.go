package tests

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"gopkg.in/yaml.v2"
)

type testConfig struct {
	Endpoint string
}

var cfg = loadConfig()

var client = &http.Client{Timeout: 10 * time.Second}

func loadConfig() testConfig {
	var c testConfig

	if data, err := ioutil.ReadFile("service_test.yml"); err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			log.Fatal(err)
		}
	}

	// allow environment variables to override the configuration file
	if len(os.Getenv("TS_ENDPOINT")) != 0 {
		c.Endpoint = os.Getenv("TS_ENDPOINT")
	}

	log.Printf("endpoint [%s]\n", c.Endpoint)

	return c
}

func requireEndpoint(t *testing.T) {
	if c := cfg.Endpoint; c == "" {
		t.Skip("no test endpoint configured; set TS_ENDPOINT or create service_test.yml")
	}
}

func getJSON(url string, data interface{}) (int, error) {
	res, err := client.Get(url)
	if err != nil {
		return 0, err
	}

	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, err
	}

	if err := json.Unmarshal(body, data); err != nil {
		return res.StatusCode, err
	}

	return res.StatusCode, nil
}

//
// select handler tests
//

func TestSelectDefaults(t *testing.T) {
	requireEndpoint(t)

	var data struct {
		ResponseHeader struct {
			Status int `json:"status"`
			Params struct {
				Start int `json:"start"`
				Rows  int `json:"rows"`
			} `json:"params"`
		} `json:"responseHeader"`
		Response struct {
			NumFound int `json:"numFound"`
		} `json:"response"`
	}

	status, err := getJSON(fmt.Sprintf("%s/_solr/select", cfg.Endpoint), &data)
	if err != nil {
		t.Fatalf("request failed: %s", err.Error())
	}

	if status != http.StatusOK {
		t.Fatalf("Expected %v, got %v\n", http.StatusOK, status)
	}

	if data.ResponseHeader.Status != 0 {
		t.Fatalf("Expected header status 0, got %d\n", data.ResponseHeader.Status)
	}

	if data.ResponseHeader.Params.Rows != 10 {
		t.Fatalf("Expected default rows 10, got %d\n", data.ResponseHeader.Params.Rows)
	}
}

func TestSelectBadPagination(t *testing.T) {
	requireEndpoint(t)

	var data interface{}

	status, err := getJSON(fmt.Sprintf("%s/_solr/select?start=notanumber", cfg.Endpoint), &data)
	if err != nil {
		t.Fatalf("request failed: %s", err.Error())
	}

	if status != http.StatusBadRequest {
		t.Fatalf("Expected %v, got %v\n", http.StatusBadRequest, status)
	}
}

//
// end of file
//
