package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorUnwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthenticated},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusNotFound, ErrNotFoundOrUnauthorized},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadGateway, ErrExternalService},
	}
	for _, tt := range tests {
		err := error(&APIError{Status: tt.status, Message: "x"})
		assert.ErrorIs(t, err, tt.want, http.StatusText(tt.status))
	}

	err := error(&APIError{Status: http.StatusInternalServerError})
	assert.Nil(t, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "500")
}

func TestClientSendsTokenAndDecodesEnvelope(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody dto.CreateTodoRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/anonymous":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"Resource created successfully","data":{"token":"tok-1","session_id":"s1","user":{"user_id":"u1","anonymous":true}}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/todos":
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"id":"t1","todo":{"id":"t1","title":"x"}}}`))
		case r.URL.Path == "/api/todos/a%2Fb/toggle" || r.URL.RawPath == "/api/todos/a%2Fb/toggle":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Todo not found or unauthorized"}`))
		case r.URL.Path == "/api/summary" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"data":{"summary":null}}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL + "/")

	res, err := c.Anonymous(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.True(t, res.User.Anonymous)
	assert.Equal(t, "tok-1", c.Token())
	assert.Empty(t, gotAuth)

	id, err := c.CreateTodo(ctx, dto.CreateTodoRequest{Title: "x", Priority: model.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, "t1", id)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "/api/todos", gotPath)
	assert.Equal(t, model.PriorityLow, gotBody.Priority)

	err = c.ToggleTodo(ctx, "a/b")
	require.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Todo not found or unauthorized", apiErr.Message)

	summary, err := c.LatestSummary(ctx)
	require.NoError(t, err)
	assert.Nil(t, summary)

	err = c.DeleteTodo(ctx, "t1")
	var teapot *APIError
	require.ErrorAs(t, err, &teapot)
	assert.Equal(t, http.StatusTeapot, teapot.Status)
}
