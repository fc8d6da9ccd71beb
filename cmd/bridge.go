package main

import (
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// git commit used for this build; supplied at compile time
var gitCommit string

type bridgeVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type bridgeElasticsearch struct {
	client            *http.Client
	healthcheckClient *http.Client
	url               string
	defaultIndex      string
	defaultType       string
}

type bridgeContext struct {
	randomSource *rand.Rand
	config       *serviceConfig
	version      bridgeVersion
	es           bridgeElasticsearch
}

func (b *bridgeContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	b.version = bridgeVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[BRIDGE] version.BuildVersion = [%s]", b.version.BuildVersion)
	log.Printf("[BRIDGE] version.GoVersion    = [%s]", b.version.GoVersion)
	log.Printf("[BRIDGE] version.GitCommit    = [%s]", b.version.GitCommit)
}

func newElasticsearchClient(connTimeout, readTimeout int) *http.Client {
	return &http.Client{
		Timeout: time.Duration(readTimeout) * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   time.Duration(connTimeout) * time.Second,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100, // we are hitting one elasticsearch host, so
			MaxIdleConnsPerHost: 100, // these two values can be the same
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func (b *bridgeContext) initElasticsearch() {
	connTimeout := integerWithMinimum(b.config.Elasticsearch.ConnTimeout, 5)
	readTimeout := integerWithMinimum(b.config.Elasticsearch.ReadTimeout, 5)
	healthcheckTimeout := integerWithMinimum(b.config.Elasticsearch.HealthcheckTimeout, 5)

	b.es = bridgeElasticsearch{
		client:            newElasticsearchClient(connTimeout, readTimeout),
		healthcheckClient: newElasticsearchClient(connTimeout, healthcheckTimeout),
		url:               strings.TrimRight(b.config.Elasticsearch.Host, "/"),
		defaultIndex:      b.config.Elasticsearch.DefaultIndex,
		defaultType:       b.config.Elasticsearch.DefaultType,
	}

	log.Printf("[BRIDGE] es.url          = [%s]", b.es.url)
	log.Printf("[BRIDGE] es.defaultIndex = [%s]", b.es.defaultIndex)
	log.Printf("[BRIDGE] es.defaultType  = [%s]", b.es.defaultType)
}

func (b *bridgeContext) validateConfig() {
	// ensure the existence and validity of required configuration values

	var miscValues stringValidator

	miscValues.requireValue(b.config.Service.Port, "service port")
	miscValues.requireValue(b.config.Elasticsearch.Host, "elasticsearch host")
	miscValues.requireValue(b.config.Elasticsearch.DefaultIndex, "elasticsearch default index")
	miscValues.requireValue(b.config.Elasticsearch.DefaultType, "elasticsearch default type")

	if b.config.Elasticsearch.Host != "" && isValidURL(b.config.Elasticsearch.Host) == false {
		log.Printf("[VALIDATE] elasticsearch host is not a valid url")
		miscValues.invalid = true
	}

	if miscValues.Invalid() {
		log.Printf("[VALIDATE] exiting due to missing/incorrect field value(s) above")
		os.Exit(1)
	}
}

func initializeBridge(cfg *serviceConfig) *bridgeContext {
	b := bridgeContext{}

	b.config = cfg
	b.randomSource = rand.New(rand.NewSource(time.Now().UnixNano()))

	b.initVersion()
	b.initElasticsearch()

	b.validateConfig()

	return &b
}
