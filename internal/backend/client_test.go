package backend

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

func newTestClient(t *testing.T) (*Client, *testutil.FakeBackend) {
	fake := testutil.NewFakeBackend(t)
	return NewClient(Config{BaseURL: fake.URL() + "/"}, testutil.NopLogger()), fake
}

func TestRequestWithoutTokenOmitsAuthorization(t *testing.T) {
	client, fake := newTestClient(t)

	_, err := NewAPI(client).Login(context.Background(), testutil.AdminEmail, testutil.AdminPassword)
	require.NoError(t, err)

	req, ok := fake.LastRequest(http.MethodPost, "/admin-auth/login")
	require.True(t, ok)
	assert.Empty(t, req.Authorization)
	assert.NotEmpty(t, req.RequestID)
}

func TestRequestWithTokenSendsBearer(t *testing.T) {
	client, fake := newTestClient(t)
	api := NewAPI(client.WithTokenSource(StaticToken(testutil.AdminToken)))

	_, err := api.Dashboard(context.Background())
	require.NoError(t, err)

	req, ok := fake.LastRequest(http.MethodGet, "/admin/dashboard")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+testutil.AdminToken, req.Authorization)
}

func TestWithTokenSourceLeavesOriginalUnauthenticated(t *testing.T) {
	client, fake := newTestClient(t)
	_ = client.WithTokenSource(StaticToken(testutil.AdminToken))

	_, err := NewAPI(client).Dashboard(context.Background())
	require.Error(t, err)

	req, _ := fake.LastRequest(http.MethodGet, "/admin/dashboard")
	assert.Empty(t, req.Authorization)
}

func TestTokenSourceErrorAbortsRequest(t *testing.T) {
	client, fake := newTestClient(t)
	failing := tokenFunc(func(context.Context) (string, error) { return "", errors.New("no token") })

	err := client.WithTokenSource(failing).Get(context.Background(), "/admin/users", nil)
	assert.EqualError(t, err, "no token")
	assert.Empty(t, fake.Requests())
}

func TestStatusErrorCarriesBackendMessage(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Fail(http.MethodGet, "/admin/users", http.StatusForbidden, "Admins only")

	_, err := NewAPI(client.WithTokenSource(StaticToken(testutil.AdminToken))).ListUsers(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "Admins only", se.Message)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, "Admins only", Message(err, "fallback"))
}

func TestNotFound(t *testing.T) {
	client, _ := newTestClient(t)
	api := NewAPI(client.WithTokenSource(StaticToken(testutil.AdminToken)))

	err := api.DeletePost(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuthError(err))
}

func TestListDecodesRecords(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Users = []model.User{{ID: "u1", Name: "Ada Stone", Email: "ada@rq.test", Role: model.UserRoleGeologist, Active: true}}
	api := NewAPI(client.WithTokenSource(StaticToken(testutil.AdminToken)))

	users, err := api.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada Stone", users[0].Name)
	assert.Equal(t, model.UserStatusActive, users[0].Status())
}

func TestIDsArePathEscaped(t *testing.T) {
	client, fake := newTestClient(t)
	api := NewAPI(client.WithTokenSource(StaticToken(testutil.AdminToken)))

	_ = api.DeleteFact(context.Background(), "fact 1")

	_, ok := fake.LastRequest(http.MethodDelete, "/admin/delete-fact/fact 1")
	assert.True(t, ok)
}

func TestErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail", `{"detail":"bad"}`, "bad"},
		{"message", `{"message":"worse"}`, "worse"},
		{"error string", `{"error":"oops"}`, "oops"},
		{"error object", `{"error":{"message":"nested"}}`, "nested"},
		{"detail list", `{"detail":[{"msg":"x"}],"message":"fallback"}`, "fallback"},
		{"not json", `<html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}

func TestMessageFallsBackOnStatusText(t *testing.T) {
	err := newStatusError(http.MethodGet, "/x", http.StatusInternalServerError, nil)
	assert.Equal(t, "fallback", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("network"), "fallback"))
}

type tokenFunc func(context.Context) (string, error)

func (f tokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}
