package transport

import (
	"bytes"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// clone copies r with a replayable body and the token's authorization header
func clone(r *http.Request, body []byte, token *oauth2.Token) *http.Request {
	cloned := r.Clone(r.Context())
	if body != nil {
		cloned.Body = io.NopCloser(bytes.NewReader(body))
		cloned.ContentLength = int64(len(body))
		cloned.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}
	if token != nil {
		token.SetAuthHeader(cloned)
	}
	return cloned
}

func accessToken(token *oauth2.Token) string {
	if token == nil {
		return ""
	}
	return token.AccessToken
}

// bufferBody reads the response body and replaces it with an in-memory copy
func bufferBody(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return data, err
}
