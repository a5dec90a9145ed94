package server_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"p2p_market/pkg/rest"
)

func TestPostUser(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client, closeServer := newTestServer(t, newFakeDealService())
	defer closeServer()

	var user rest.User

	resp, err := client.Post(ctx, "/v1/users", nil, rest.CreateUserRequest{
		Name:     "Abebe",
		Username: "abebe_k",
		Role:     "seller",
	}, &user, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("abebe_k", user.Username)
	rq.Equal("seller", user.Role)
}

func TestPostUserBadRole(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client, closeServer := newTestServer(t, newFakeDealService())
	defer closeServer()

	var errResp rest.Error

	resp, err := client.Post(ctx, "/v1/users", nil, rest.CreateUserRequest{
		Name:     "Abebe",
		Username: "abebe_k",
		Role:     "admin",
	}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("ValidationError"), errResp.Code)
}

func TestGetUsersByUsername(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client, closeServer := newTestServer(t, newFakeDealService())
	defer closeServer()

	var users []rest.User

	resp, err := client.Get(ctx, "/v1/users?username=abebe_k", nil, &users, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(users, 1)
	rq.Equal("abebe_k", users[0].Username)
}

func TestGetUsersBadPaging(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client, closeServer := newTestServer(t, newFakeDealService())
	defer closeServer()

	var errResp rest.Error

	resp, err := client.Get(ctx, "/v1/users?limit=0", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidPaging"), errResp.Code)
}
