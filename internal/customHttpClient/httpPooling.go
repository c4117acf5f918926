package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/PDFSummarizer/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

// Get returns the process wide client shared by the llm providers so every
// chunk call reuses the same pool of connections.
func Get() *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return client
}
