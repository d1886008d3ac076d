package client

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// DefaultUnwrap is the number of data envelopes stripped by the generic helpers
const DefaultUnwrap = 1

// Request is one logical API request
type Request struct {
	Method string
	// Path is relative to the client base URL
	Path      string
	Query     url.Values
	Header    http.Header
	Body      interface{}
	Multipart *Multipart
	// Unwrap is the number of data envelopes to strip from a success body
	Unwrap int
}

// Multipart is a multipart/form-data body
type Multipart struct {
	Fields map[string]string
	Files  []*File
}

// File is a multipart file part
type File struct {
	Field string
	Name  string
	Data  []byte
}

// RequestOption customizes a Request built by the generic helpers
type RequestOption func(r *Request)

// WithQuery adds a query parameter
func WithQuery(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = url.Values{}
		}
		r.Query.Add(key, value)
	}
}

// WithHeader sets a request header
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		r.Header.Set(key, value)
	}
}

// WithUnwrap sets the number of data envelopes to strip
func WithUnwrap(levels int) RequestOption {
	return func(r *Request) {
		r.Unwrap = levels
	}
}

// WithMultipart replaces the JSON body with a multipart form
func WithMultipart(form *Multipart) RequestOption {
	return func(r *Request) {
		r.Multipart = form
		r.Body = nil
	}
}

func (r *Request) levels() int {
	if r.Unwrap <= 0 {
		return DefaultUnwrap
	}
	return r.Unwrap
}

// encode returns the body reader and its content type
func (r *Request) encode() (io.Reader, string, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return nil, "", nil
	}
	if r.Multipart != nil {
		return r.Multipart.encode()
	}
	if r.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func (m *Multipart) encode() (io.Reader, string, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)
	for name, value := range m.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range m.Files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err = part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buffer, writer.FormDataContentType(), nil
}
