package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestToFHTTPRequest(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://www.youtube.com/youtubei/v1/player?key=x", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("X-Multi", "one")
	req.Header.Add("X-Multi", "two")

	fReq, err := toFHTTPRequest(req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, fReq.Method)
	assert.Equal(t, req.URL.String(), fReq.URL.String())
	assert.Equal(t, int64(7), fReq.ContentLength)
	assert.Equal(t, "application/json", fReq.Header.Get("Content-Type"))
	assert.Equal(t, []string{"one", "two"}, fReq.Header.Values("X-Multi"))
	assert.Equal(t, "v", fReq.Context().Value(ctxKey{}))

	body, err := io.ReadAll(fReq.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestFromFHTTPResponse(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://rr1.googlevideo.com/videoplayback", nil)
	fResp := &fhttp.Response{
		Status:        "206 Partial Content",
		StatusCode:    http.StatusPartialContent,
		Proto:         "HTTP/2.0",
		ProtoMajor:    2,
		ContentLength: 4,
		Body:          io.NopCloser(strings.NewReader("data")),
		Header:        fhttp.Header{"Content-Range": {"bytes 0-3/10"}},
	}

	resp := fromFHTTPResponse(fResp, req)

	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, int64(4), resp.ContentLength)
	assert.Equal(t, "bytes 0-3/10", resp.Header.Get("Content-Range"))
	assert.Same(t, req, resp.Request)
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "data", string(b))
}
