package providers

import (
	"net"
	"net/http"
	"time"

	"csd/internal/structures"
)

// HttpClients carries the two outbound clients. The status feed is polled
// on the request path so it gets a tighter timeout than the schedule source.
type HttpClients struct {
	Status *http.Client
	Source *http.Client
}

func newHttpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

func NewHttpClientProvider(conf *structures.Config) *HttpClients {
	return &HttpClients{
		Status: newHttpClient(conf.Stream.Timeout),
		Source: newHttpClient(conf.Http.Timeout),
	}
}
