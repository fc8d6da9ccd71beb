package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

// helper to package a local json config file into the environment variable
// the service reads at startup.  handy for local runs:
//
//   eval $(go run ./setup -cfg config.json)

func main() {
	var cfgFile string
	var envVar string

	flag.StringVar(&cfgFile, "cfg", "config.json", "json config file to package")
	flag.StringVar(&envVar, "env", "ELASTICSEARCH_SOLR_API_JSON_MAIN", "environment variable to emit")
	flag.Parse()

	data, err := os.ReadFile(cfgFile)
	if err != nil {
		log.Fatalf("read %s: %s", cfgFile, err.Error())
	}

	// compact the json, and make sure it actually is json
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, data); err != nil {
		log.Fatalf("invalid json in %s: %s", cfgFile, err.Error())
	}

	fmt.Printf("export %s='%s'\n", envVar, compacted.String())
}
