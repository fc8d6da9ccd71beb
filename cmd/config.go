package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

type serviceConfigService struct {
	Port string `json:"port,omitempty"`
}

type serviceConfigElasticsearch struct {
	Host               string `json:"host,omitempty"`
	DefaultIndex       string `json:"default_index,omitempty"`
	DefaultType        string `json:"default_type,omitempty"`
	ConnTimeout        string `json:"conn_timeout,omitempty"`
	ReadTimeout        string `json:"read_timeout,omitempty"`
	HealthcheckTimeout string `json:"healthcheck_timeout,omitempty"`
}

type serviceConfig struct {
	Service       serviceConfigService       `json:"service,omitempty"`
	Elasticsearch serviceConfigElasticsearch `json:"elasticsearch,omitempty"`
}

func getSortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, "ELASTICSEARCH_SOLR_API_JSON_") {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func loadConfig() *serviceConfig {
	cfg := serviceConfig{}

	// json configs

	envs := getSortedJSONEnvVars()

	valid := true

	for _, env := range envs {
		log.Printf("[CONFIG] loading %s ...", env)
		if val := os.Getenv(env); val != "" {
			dec := json.NewDecoder(bytes.NewReader([]byte(val)))
			dec.DisallowUnknownFields()

			if err := dec.Decode(&cfg); err != nil {
				log.Printf("error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		log.Printf("exiting due to json decode error(s) above")
		os.Exit(1)
	}

	// optional convenience override to simplify deployment config
	if host := os.Getenv("ELASTICSEARCH_SOLR_API_ES_HOST"); host != "" {
		cfg.Elasticsearch.Host = host
	}

	// scope fallbacks match the stock solr plugin routes
	if cfg.Elasticsearch.DefaultIndex == "" {
		cfg.Elasticsearch.DefaultIndex = "solr"
	}

	if cfg.Elasticsearch.DefaultType == "" {
		cfg.Elasticsearch.DefaultType = "docs"
	}

	bytes, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("error encoding service config json: %s", err.Error())
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", string(bytes))

	return &cfg
}
