package client

import (
	"fmt"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

type Config struct {
	// Timeout applies per request; the extractor fetches streams in ranged
	// chunks so it does not need to cover a whole download.
	Timeout  time.Duration
	ProxyURL string
}

// Transport routes net/http requests through a browser-fingerprinted TLS
// client.
type Transport struct {
	innerClient tls_client.HttpClient
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	fReq, err := toFHTTPRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := t.innerClient.Do(fReq)
	if err != nil {
		return nil, err
	}
	return fromFHTTPResponse(resp, req), nil
}

func toFHTTPRequest(req *http.Request) (*fhttp.Request, error) {
	fReq, err := fhttp.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to convert request: %w", err)
	}
	fReq.ContentLength = req.ContentLength
	fReq.Host = req.Host

	for k, v := range req.Header {
		fReq.Header[k] = append([]string(nil), v...)
	}
	return fReq, nil
}

func fromFHTTPResponse(resp *fhttp.Response, req *http.Request) *http.Response {
	netResp := &http.Response{
		Status:           resp.Status,
		StatusCode:       resp.StatusCode,
		Proto:            resp.Proto,
		ProtoMajor:       resp.ProtoMajor,
		ProtoMinor:       resp.ProtoMinor,
		ContentLength:    resp.ContentLength,
		Body:             resp.Body,
		Header:           make(http.Header, len(resp.Header)),
		Uncompressed:     resp.Uncompressed,
		TransferEncoding: resp.TransferEncoding,
		Request:          req,
	}

	for k, v := range resp.Header {
		netResp.Header[k] = v
	}
	return netResp
}

func NewTransport(cfg Config) (*Transport, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}

	jar := tls_client.NewCookieJar()

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(cfg.Timeout.Seconds())),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithCookieJar(jar),
	}
	if cfg.ProxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(cfg.ProxyURL))
	}

	c, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	return &Transport{innerClient: c}, nil
}

// NewHttpClient returns a standard *http.Client backed by Transport, ready to
// be handed to libraries that only accept net/http.
func NewHttpClient(cfg Config) (*http.Client, error) {
	t, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: t}, nil
}
