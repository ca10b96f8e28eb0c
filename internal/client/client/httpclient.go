package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/logging"
)

// Server messages that carry meaning beyond the status code.
const (
	MsgEmailTaken         = "Email já cadastrado"
	MsgInvalidCredentials = "Credenciais inválidas"
)

const maxBodySize = 1 << 20

type operation int

const (
	opRegister operation = iota
	opLogin
	opOther
)

// TokenSource yields the bearer token for the next request, or "".
type TokenSource func() string

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithHTTPClient replaces the underlying *http.Client. Any timeout set
// through WithTimeout must come after it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL, for example
// "http://localhost:8080/api".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   func() string { return "" },
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	status, body, err := c.do(ctx, opRegister, http.MethodPost, "/usuarios/cadastro", r)
	if err != nil {
		return nil, err
	}

	// any 2xx is a success; the body is informational
	var u models.User
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &u) != nil {
		c.log.Debug(ctx, "register: no user in response", "status", status)
		return nil, nil
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (*models.LoginResult, error) {
	status, body, err := c.do(ctx, opLogin, http.MethodPost, "/usuarios/login", cr)
	if err != nil {
		return nil, err
	}

	var res models.LoginResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, malformed(status, fmt.Errorf("decode login response: %w", err))
	}
	if res.Token == "" {
		return nil, malformed(status, errors.New("login response has no token"))
	}
	if res.User == nil {
		return nil, malformed(status, errors.New("login response has no user"))
	}
	return &res, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	status, body, err := c.do(ctx, opOther, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, malformed(status, errors.New("post list is not an array"))
	}
	var posts []models.Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, malformed(status, fmt.Errorf("decode post list: %w", err))
	}
	return posts, nil
}

// CreatePost returns the stored post, or nil when the server sent no body.
func (c *HTTPClient) CreatePost(ctx context.Context, p models.NewPost) (*models.Post, error) {
	status, body, err := c.do(ctx, opOther, http.MethodPost, "/posts", p)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var post models.Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, malformed(status, fmt.Errorf("decode post: %w", err))
	}
	return &post, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id models.ID, u models.PostUpdate) error {
	_, _, err := c.do(ctx, opOther, http.MethodPut, postPath(id), u)
	return err
}

func (c *HTTPClient) DeletePost(ctx context.Context, id models.ID) error {
	_, _, err := c.do(ctx, opOther, http.MethodDelete, postPath(id), nil)
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, opOther, http.MethodGet, "/ping", nil)
	return err
}

func postPath(id models.ID) string {
	return "/posts/" + url.PathEscape(id.String())
}

// do sends one request and returns the status and body of a 2xx response.
// Every other outcome comes back as an *Error.
func (c *HTTPClient) do(ctx context.Context, op operation, method, path string, in any) (int, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return 0, nil, &Error{Kind: KindNetwork, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Err: fmt.Errorf("%w: read body: %w", ErrUnavailable, err)}
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, serverError(op, resp.StatusCode, body)
	}
	return resp.StatusCode, body, nil
}

type errorBody struct {
	Erro string `json:"erro"`
}

func serverError(op operation, status int, body []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := strings.TrimSpace(eb.Erro)

	var sentinel error
	switch {
	case msg == MsgEmailTaken, op == opRegister && status == http.StatusConflict:
		sentinel = ErrEmailTaken
	case op == opLogin && (status == http.StatusUnauthorized || msg == MsgInvalidCredentials):
		sentinel = ErrInvalidCredentials
	case status == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = ErrForbidden
	case status == http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrServer
	}

	return &Error{Kind: KindServer, Status: status, Message: msg, Err: sentinel}
}

func malformed(status int, cause error) *Error {
	return &Error{Kind: KindMalformed, Status: status, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, cause)}
}
