package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   []byte
}

// newTestServer answers every request with status and body and records what
// it received.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRegister_SendsWireShape(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusCreated,
		`{"id":"u1","nome":"Ana Lima","email":"ana@x.com","telefone":"(11) 98765-4321"}`)
	c := NewHTTPClient(srv.URL + "/api/")

	u, err := c.Register(context.Background(), models.Registration{
		Name: "Ana Lima", Email: "ana@x.com", Phone: "(11) 98765-4321", Password: "Abc1!x",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.ID("u1"), u.ID)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/usuarios/cadastro", rec.path)
	assert.Empty(t, rec.auth)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "Ana Lima", sent["nome"])
	assert.Equal(t, "Abc1!x", sent["senha"])
	assert.Equal(t, "(11) 98765-4321", sent["telefone"])
	assert.NotContains(t, sent, "passwordConfirmation")
}

func TestRegister_EmptyOrTextBodyIsSuccess(t *testing.T) {
	for _, body := range []string{"", "ok"} {
		srv, _ := newTestServer(t, http.StatusOK, body)
		u, err := NewHTTPClient(srv.URL).Register(context.Background(), models.Registration{})
		require.NoError(t, err, body)
		assert.Nil(t, u, body)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "by message", status: http.StatusBadRequest, body: `{"erro":"Email já cadastrado"}`},
		{name: "by status", status: http.StatusConflict, body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			_, err := NewHTTPClient(srv.URL).Register(context.Background(), models.Registration{})
			require.ErrorIs(t, err, ErrEmailTaken)
			assert.Equal(t, KindServer, KindOf(err))
			assert.Equal(t, "Este email já está cadastrado", UserMessage(err))
		})
	}
}

func TestRegister_OtherServerErrorKeepsMessage(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadRequest, `{"erro":"Telefone inválido"}`)
	_, err := NewHTTPClient(srv.URL).Register(context.Background(), models.Registration{})

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, "Telefone inválido", e.Message)
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, "Telefone inválido", UserMessage(err))
}

func TestLogin_Success(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"token":"jwt","usuario":{"id":7,"nome":"Ana"}}`)
	res, err := NewHTTPClient(srv.URL).Login(context.Background(),
		models.Credentials{Email: "ana@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, models.ID("7"), res.User.ID)
	assert.JSONEq(t, `{"email":"ana@x.com","senha":"pw"}`, string(rec.body))
}

func TestLogin_Malformed(t *testing.T) {
	for _, body := range []string{`{"usuario":{"id":1}}`, `{"token":"t"}`, ``, `<html>`} {
		srv, _ := newTestServer(t, http.StatusOK, body)
		_, err := NewHTTPClient(srv.URL).Login(context.Background(), models.Credentials{})
		require.ErrorIs(t, err, ErrMalformedResponse, body)
		assert.Equal(t, KindMalformed, KindOf(err), body)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{status: http.StatusUnauthorized, body: `{"erro":"Credenciais inválidas"}`},
		{status: http.StatusUnauthorized, body: ``},
		{status: http.StatusBadRequest, body: `{"erro":"Credenciais inválidas"}`},
	}
	for _, tt := range tests {
		srv, _ := newTestServer(t, tt.status, tt.body)
		_, err := NewHTTPClient(srv.URL).Login(context.Background(), models.Credentials{})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "Email ou senha incorretos. Por favor, verifique suas credenciais.", UserMessage(err))
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url).ListPosts(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, "Erro de conexão com o servidor. Verifique sua conexão e tente novamente.", UserMessage(err))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	err := NewHTTPClient(srv.URL, WithTimeout(50*time.Millisecond)).Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestListPosts(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK,
		`[{"id":2,"titulo":"B","conteudo":"b","usuarioId":1,"dataCriacao":"2024-01-02T00:00:00Z","usuario":{"nome":"Ana"}},
		  {"id":1,"titulo":"A","conteudo":"a","usuarioId":1,"dataCriacao":"2024-01-01T00:00:00Z"}]`)
	c := NewHTTPClient(srv.URL, WithTokenSource(func() string { return "tok" }))

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, models.ID("2"), posts[0].ID)
	assert.Equal(t, "Ana", posts[0].AuthorName())
	assert.Equal(t, "Usuário Anônimo", posts[1].AuthorName())
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, "/posts", rec.path)
}

func TestListPosts_ToleratesOddDates(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK,
		`[{"id":1,"titulo":"A","dataCriacao":"2024-05-01T12:30:00.123"},
		  {"id":2,"titulo":"B","dataCriacao":"sem data"}]`)

	posts, err := NewHTTPClient(srv.URL).ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].CreatedAt.Equal(time.Date(2024, 5, 1, 12, 30, 0, 123_000_000, time.Local)))
	assert.True(t, posts[1].CreatedAt.IsZero())
}

func TestListPosts_NotAnArray(t *testing.T) {
	for _, body := range []string{`{"posts":[]}`, `null`, ``} {
		srv, _ := newTestServer(t, http.StatusOK, body)
		_, err := NewHTTPClient(srv.URL).ListPosts(context.Background())
		assert.Equal(t, KindMalformed, KindOf(err), body)
	}
}

func TestCreatePost(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusCreated, `{"id":"p1","titulo":"T","conteudo":"C","usuarioId":"u1"}`)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	p, err := NewHTTPClient(srv.URL).CreatePost(context.Background(), models.NewPost{
		Title: "T", Content: "C", AuthorID: "u1", CreatedAt: created,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("p1"), p.ID)
	assert.JSONEq(t,
		`{"titulo":"T","conteudo":"C","usuarioId":"u1","dataCriacao":"2024-05-01T10:00:00Z"}`,
		string(rec.body))
}

func TestCreatePost_EmptyBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusCreated, "")
	p, err := NewHTTPClient(srv.URL).CreatePost(context.Background(), models.NewPost{})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdatePost(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	err := NewHTTPClient(srv.URL).UpdatePost(context.Background(), "a/b", models.PostUpdate{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/posts/a/b", rec.path)
	assert.JSONEq(t, `{"titulo":"T","conteudo":"C"}`, string(rec.body))
}

func TestDeletePost_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusNoContent, want: nil},
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusForbidden, want: ErrForbidden},
		{status: http.StatusNotFound, want: ErrNotFound},
		{status: http.StatusInternalServerError, want: ErrServer},
	}
	for _, tt := range tests {
		srv, rec := newTestServer(t, tt.status, "")
		err := NewHTTPClient(srv.URL).DeletePost(context.Background(), "9")
		assert.Equal(t, http.MethodDelete, rec.method)
		if tt.want == nil {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, tt.want)
		assert.Equal(t, KindServer, KindOf(err))
	}
}

func TestKindOfAndUserMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Ocorreu um erro. Tente novamente.", UserMessage(errors.New("x")))
}
