// Package httpclient configures the HTTP client shared by the dataset
// loader and the collectors.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewOutbound builds the client used against the Overpass interpreter,
// the open-data export endpoints and remote dataset URLs. Responses are
// multi-megabyte GeoJSON documents from a handful of hosts, so the pool
// stays small and the overall timeout generous.
func NewOutbound() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   2 * time.Minute,
	}
}
