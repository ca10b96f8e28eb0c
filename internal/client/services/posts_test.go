package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ana   = models.User{ID: "u1", Name: "Ana"}
	bruno = models.User{ID: "u2", Name: "Bruno"}
)

func seedPosts() []models.Post {
	return []models.Post{
		{ID: "p2", Title: "Feijoada", Content: "...", AuthorID: "u1"},
		{ID: "p1", Title: "Moqueca", Content: "...", AuthorID: "u2"},
	}
}

func newPostService(t *testing.T, fc *fakeClient, u *models.User) *postService {
	t.Helper()
	store := newStore(t)
	if u != nil {
		store = loggedIn(t, *u)
	}
	if fc.ListFn == nil {
		fc.ListFn = func(context.Context) ([]models.Post, error) { return seedPosts(), nil }
	}
	svc := NewPostService(fc, store, logging.Discard()).(*postService)
	require.NoError(t, svc.Refresh(context.Background()))
	fc.calls = nil
	return svc
}

func TestRefresh_KeepsServerOrderAndSnapshots(t *testing.T) {
	svc := newPostService(t, &fakeClient{}, nil)

	posts := svc.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, models.ID("p2"), posts[0].ID)

	posts[0].Title = "changed"
	assert.Equal(t, "Feijoada", svc.Posts()[0].Title)
}

func TestRefresh_FailureKeepsList(t *testing.T) {
	fc := &fakeClient{}
	svc := newPostService(t, fc, nil)

	fc.ListFn = func(context.Context) ([]models.Post, error) {
		return nil, &client.Error{Kind: client.KindNetwork, Err: client.ErrUnavailable}
	}
	require.ErrorIs(t, svc.Refresh(context.Background()), client.ErrUnavailable)
	assert.Len(t, svc.Posts(), 2)
}

func TestCreate_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc := newPostService(t, fc, nil)

	_, err := svc.Create(context.Background(), "T", "C")
	require.ErrorIs(t, err, client.ErrNotAuthenticated)
	assert.Empty(t, fc.calls)
}

func TestCreate_ValidatesBeforeSending(t *testing.T) {
	fc := &fakeClient{}
	svc := newPostService(t, fc, &ana)

	_, err := svc.Create(context.Background(), "", "C")
	assert.Contains(t, client.FieldErrorsOf(err), validation.FieldTitle)
	assert.Empty(t, fc.calls)
}

func TestCreate_SendsAuthorAndClockThenRefetches(t *testing.T) {
	var sent models.NewPost
	fc := &fakeClient{CreateFn: func(_ context.Context, p models.NewPost) (*models.Post, error) {
		sent = p
		return &models.Post{ID: "p3", Title: p.Title, AuthorID: p.AuthorID}, nil
	}}
	svc := newPostService(t, fc, &ana)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600)) }
	fc.ListFn = func(context.Context) ([]models.Post, error) {
		return append([]models.Post{{ID: "p3", Title: "Pão", AuthorID: "u1"}}, seedPosts()...), nil
	}

	p, err := svc.Create(context.Background(), "Pão", "Farinha")
	require.NoError(t, err)
	assert.Equal(t, models.ID("p3"), p.ID)
	assert.Equal(t, models.ID("u1"), sent.AuthorID)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), sent.CreatedAt)
	assert.Equal(t, []string{"create", "list"}, fc.calls)
	assert.Len(t, svc.Posts(), 3)
	assert.Equal(t, models.ID("p3"), svc.Posts()[0].ID)
}

func TestCreate_ServerErrorKeepsList(t *testing.T) {
	fc := &fakeClient{CreateFn: func(context.Context, models.NewPost) (*models.Post, error) {
		return nil, &client.Error{Kind: client.KindServer, Status: 500, Err: client.ErrServer}
	}}
	svc := newPostService(t, fc, &ana)

	_, err := svc.Create(context.Background(), "T", "C")
	require.ErrorIs(t, err, client.ErrServer)
	assert.Equal(t, []string{"create"}, fc.calls)
	assert.Len(t, svc.Posts(), 2)
}

func TestEdit_PatchesInPlace(t *testing.T) {
	var gotID models.ID
	var gotUpdate models.PostUpdate
	fc := &fakeClient{UpdateFn: func(_ context.Context, id models.ID, u models.PostUpdate) error {
		gotID, gotUpdate = id, u
		return nil
	}}
	svc := newPostService(t, fc, &ana)

	require.NoError(t, svc.Edit(context.Background(), "p2", "Feijoada completa", "Com couve"))
	assert.Equal(t, models.ID("p2"), gotID)
	assert.Equal(t, models.PostUpdate{Title: "Feijoada completa", Content: "Com couve"}, gotUpdate)

	p, ok := svc.Find("p2")
	require.True(t, ok)
	assert.Equal(t, "Feijoada completa", p.Title)
	assert.Equal(t, "Com couve", p.Content)
	assert.Equal(t, models.ID("u1"), p.AuthorID)
	assert.Equal(t, []string{"update"}, fc.calls)
}

func TestEdit_OtherAuthorsPostIsForbiddenLocally(t *testing.T) {
	fc := &fakeClient{}
	svc := newPostService(t, fc, &ana)

	err := svc.Edit(context.Background(), "p1", "T", "C")
	require.ErrorIs(t, err, client.ErrForbidden)
	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Empty(t, fc.calls)
}

func TestEdit_ServerErrorKeepsList(t *testing.T) {
	fc := &fakeClient{UpdateFn: func(context.Context, models.ID, models.PostUpdate) error {
		return &client.Error{Kind: client.KindServer, Status: 403, Err: client.ErrForbidden}
	}}
	svc := newPostService(t, fc, &ana)

	require.ErrorIs(t, svc.Edit(context.Background(), "p2", "T", "C"), client.ErrForbidden)
	p, _ := svc.Find("p2")
	assert.Equal(t, "Feijoada", p.Title)
}

func TestDelete_FiltersList(t *testing.T) {
	fc := &fakeClient{DeleteFn: func(context.Context, models.ID) error { return nil }}
	svc := newPostService(t, fc, &bruno)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	posts := svc.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, models.ID("p2"), posts[0].ID)
}

func TestDelete_RepeatedYieldsNotFound(t *testing.T) {
	deleted := false
	fc := &fakeClient{DeleteFn: func(context.Context, models.ID) error {
		if deleted {
			return &client.Error{Kind: client.KindServer, Status: 404, Err: client.ErrNotFound}
		}
		deleted = true
		return nil
	}}
	svc := newPostService(t, fc, &bruno)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	require.ErrorIs(t, svc.Delete(context.Background(), "p1"), client.ErrNotFound)
	assert.Len(t, svc.Posts(), 1)
}

func TestDelete_OtherAuthorsPostIsForbiddenLocally(t *testing.T) {
	fc := &fakeClient{}
	svc := newPostService(t, fc, &bruno)

	require.ErrorIs(t, svc.Delete(context.Background(), "p2"), client.ErrForbidden)
	assert.Empty(t, fc.calls)
	assert.Len(t, svc.Posts(), 2)
}

func TestMutations_ShareBusyFlag(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	fc := &fakeClient{UpdateFn: func(context.Context, models.ID, models.PostUpdate) error {
		close(entered)
		<-release
		return nil
	}}
	svc := newPostService(t, fc, &ana)

	done := make(chan error, 1)
	go func() { done <- svc.Edit(context.Background(), "p2", "T", "C") }()
	<-entered

	assert.ErrorIs(t, svc.Delete(context.Background(), "p2"), ErrBusy)

	close(release)
	require.NoError(t, <-done)
}
