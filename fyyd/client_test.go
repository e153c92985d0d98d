package fyyd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client pointed at the given httptest server.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// --- get() internals ---

func TestGet_BuildsURLWithEscapedParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search/podcast", r.URL.Path)
		assert.Equal(t, "a b&c", r.URL.Query().Get("term"))
		w.Write([]byte(`{"status":200,"msg":"","data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	params := url.Values{}
	params.Set("term", "a b&c")

	var out []Podcast
	err := c.get(context.Background(), "/search/podcast", params, "", &out)
	require.NoError(t, err)
}

func TestGet_DecodesEnvelopeData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"msg":"ok","meta":{"paging":{"count":1,"page":0}},"data":{"id":42,"title":"Test Cast","xmlURL":"https://example.com/feed"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var p Podcast
	err := c.get(context.Background(), "/podcast", nil, "", &p)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "Test Cast", p.Title)
	assert.Equal(t, "https://example.com/feed", p.XMLURL)
}

func TestGet_NilResultSkipsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not even json`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	err := c.get(context.Background(), "/podcast", nil, "", nil)
	require.NoError(t, err)
}

func TestGet_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present, "plain requests must not carry an Authorization header")
		w.Write([]byte(`{"status":200,"msg":"","data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var p Podcast
	err := c.get(context.Background(), "/podcast", nil, "", &p)
	require.NoError(t, err)
}

func TestGet_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok_abc", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":200,"msg":"","data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var a Account
	err := c.get(context.Background(), "/account/info", nil, "tok_abc", &a)
	require.NoError(t, err)
}

func TestGet_NonOKStatusWithEnvelopeMsg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"msg":"podcast not found","data":null}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var p Podcast
	err := c.get(context.Background(), "/podcast", nil, "", &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
	assert.Contains(t, err.Error(), "podcast not found")
	assert.Contains(t, err.Error(), "404")
}

func TestGet_NonOKStatusWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>Bad Gateway</html>`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var p Podcast
	err := c.get(context.Background(), "/podcast", nil, "", &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
	assert.Contains(t, err.Error(), "502")
}

func TestGet_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var p Podcast
	err := c.get(context.Background(), "/podcast", nil, "", &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGet_DataShapeMismatch(t *testing.T) {
	// Valid envelope, but data is an object where a list is expected.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"msg":"","data":{"id":1}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var out []Podcast
	err := c.get(context.Background(), "/search/podcast", nil, "", &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Close immediately so the connection fails.

	c := newTestClient(srv)
	var p Podcast
	err := c.get(context.Background(), "/podcast", nil, "", &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestGet_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"msg":"","data":{}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(srv)
	var p Podcast
	err := c.get(ctx, "/podcast", nil, "", &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

// --- postForm ---

func TestPostForm_EncodesBodyAndDecodesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
		w.Write([]byte(`{"access_token":"A","refresh_token":"R","expires_in":60,"token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	form := url.Values{}
	form.Set("grant_type", "refresh_token")

	var resp tokenResponse
	err := c.postForm(context.Background(), srv.URL+"/oauth/token", form, &resp)
	require.NoError(t, err)
	assert.Equal(t, "A", resp.AccessToken)
	assert.Equal(t, 60, resp.ExpiresIn)
}

func TestPostForm_OAuthErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_request","error_description":"code is required"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	err := c.postForm(context.Background(), srv.URL+"/oauth/token", url.Values{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
	assert.Contains(t, err.Error(), "code is required")
}

// --- getAuthed ---

func TestGetAuthed_NoManagerFailsNotConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}))
	defer srv.Close()

	c := newTestClient(srv)
	var a Account
	err := c.getAuthed(context.Background(), "/account/info", nil, &a)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGetAuthed_UnconfiguredManagerSendsNoHeader(t *testing.T) {
	// A manager without a client ID runs in unauthenticated mode: the
	// gate trivially succeeds and no Authorization header is attached.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		w.Write([]byte(`{"status":200,"msg":"","data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.auth = &TokenManager{client: c, creds: Credentials{}, oauthBaseURL: srv.URL}

	var a Account
	err := c.getAuthed(context.Background(), "/account/info", nil, &a)
	require.NoError(t, err)
}

// --- constructors ---

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(nil, nil)
	require.NotNil(t, c.httpClient)

	hc, ok := c.httpClient.(*http.Client)
	require.True(t, ok, "default transport should be an *http.Client")
	assert.Equal(t, 30*time.Second, hc.Timeout, "default client should have a 30s timeout")
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.NotNil(t, c.logger)
	assert.Nil(t, c.auth, "plain client carries no token manager")
}

func TestNewClient_CustomTransport(t *testing.T) {
	custom := &http.Client{}
	c := NewClient(custom, nil)
	assert.Equal(t, custom, c.httpClient)
}

func TestNewOAuthClient_WiresTokenManager(t *testing.T) {
	c := NewOAuthClient(nil, nil, testCreds)
	require.NotNil(t, c.OAuth())
	assert.Equal(t, testCreds, c.auth.creds)
	assert.Equal(t, defaultOAuthURL, c.auth.oauthBaseURL)
	assert.Same(t, c, c.auth.client)
}
