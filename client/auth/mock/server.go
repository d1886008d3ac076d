package mock

import "net/http/httptest"

// HTTPTestServer runs a Service on an httptest server
type HTTPTestServer struct {
	*Service
	Server *httptest.Server
	URL    string
}

func NewHTTPTestServer(opts ...Option) (*HTTPTestServer, error) {
	service, err := NewService(opts...)
	if err != nil {
		return nil, err
	}
	ret := &HTTPTestServer{Service: service}
	ret.Server = httptest.NewServer(service.Handler())
	ret.URL = ret.Server.URL
	return ret, nil
}

func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
