package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/testutils"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sseFrame struct {
	event string
	data  string
}

// readFrame returns the next event, skipping comment lines.
func readFrame(t *testing.T, r *bufio.Reader) sseFrame {
	t.Helper()
	var f sseFrame
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if f.event != "" {
				return f
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			f.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			f.data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func openStream(t *testing.T, app *testApp, heartbeat time.Duration, userID string) *bufio.Reader {
	t.Helper()

	live := NewLiveHandler(app.todos, app.summaries, app.broker, testutils.Logger())
	live.heartbeat = heartbeat

	r := gin.New()
	r.GET("/live", asUser(), live.Stream)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/live", nil)
	require.NoError(t, err)
	req.Header.Set("X-Test-User", userID)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	return bufio.NewReader(resp.Body)
}

func TestLiveStreamSendsStateAndChanges(t *testing.T) {
	app := setupHandlerTest(t)
	ctx := context.Background()

	_, err := app.todos.Create(ctx, "alice", usecase.CreateTodoInput{Title: "existing", Priority: model.PriorityHigh})
	require.NoError(t, err)

	stream := openStream(t, app, time.Minute, "alice")

	f := readFrame(t, stream)
	require.Equal(t, dto.EventTodos, f.event)
	var todos []*model.Todo
	require.NoError(t, json.Unmarshal([]byte(f.data), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "existing", todos[0].Title)

	f = readFrame(t, stream)
	require.Equal(t, dto.EventStats, f.event)
	var stats model.TodoStats
	require.NoError(t, json.Unmarshal([]byte(f.data), &stats))
	assert.Equal(t, model.TodoStats{Total: 1, Pending: 1, HighPriority: 1}, stats)

	f = readFrame(t, stream)
	require.Equal(t, dto.EventSummary, f.event)
	assert.JSONEq(t, `{"summary":null}`, f.data)

	require.Eventually(t, func() bool { return app.broker.Subscribers("alice") == 1 }, 2*time.Second, 10*time.Millisecond)

	// another user's write is not delivered; alice's own write is
	_, err = app.todos.Create(ctx, "bob", usecase.CreateTodoInput{Title: "bob's", Priority: model.PriorityLow})
	require.NoError(t, err)
	_, err = app.todos.Create(ctx, "alice", usecase.CreateTodoInput{Title: "new one", Priority: model.PriorityLow})
	require.NoError(t, err)

	f = readFrame(t, stream)
	require.Equal(t, dto.EventTodos, f.event)
	require.NoError(t, json.Unmarshal([]byte(f.data), &todos))
	require.Len(t, todos, 2)
	assert.Equal(t, "new one", todos[0].Title)

	f = readFrame(t, stream)
	require.Equal(t, dto.EventStats, f.event)
	require.NoError(t, json.Unmarshal([]byte(f.data), &stats))
	assert.Equal(t, 2, stats.Total)
}

func TestLiveStreamHeartbeat(t *testing.T) {
	app := setupHandlerTest(t)
	stream := openStream(t, app, 20*time.Millisecond, "alice")

	for i := 0; i < 3; i++ {
		readFrame(t, stream)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("no heartbeat")
		default:
		}
		line, err := stream.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, ": ping") {
			return
		}
	}
}

func TestLiveStreamReleasesSubscription(t *testing.T) {
	app := setupHandlerTest(t)

	live := NewLiveHandler(app.todos, app.summaries, app.broker, testutils.Logger())
	r := gin.New()
	r.GET("/live", asUser(), live.Stream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/live", nil)
	require.NoError(t, err)
	req.Header.Set("X-Test-User", "alice")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	stream := bufio.NewReader(resp.Body)
	for i := 0; i < 3; i++ {
		readFrame(t, stream)
	}
	require.Eventually(t, func() bool { return app.broker.Subscribers("alice") == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	resp.Body.Close()
	assert.Eventually(t, func() bool { return app.broker.Subscribers("alice") == 0 }, 2*time.Second, 10*time.Millisecond)
}


func TestLiveStreamDeliversSummaryAfterTodoChange(t *testing.T) {
	app := setupHandlerTest(t)
	ctx := context.Background()
	app.llm.On("Complete", mock.Anything, mock.Anything).Return("Fresh insights", nil).Once()

	stream := openStream(t, app, time.Minute, "alice")
	for i := 0; i < 3; i++ {
		readFrame(t, stream)
	}
	require.Eventually(t, func() bool { return app.broker.Subscribers("alice") == 1 }, 2*time.Second, 10*time.Millisecond)

	// the todo change and the summary change land back to back
	_, err := app.todos.Create(ctx, "alice", usecase.CreateTodoInput{Title: "plan week", Priority: model.PriorityMedium})
	require.NoError(t, err)
	_, err = app.summaries.Generate(ctx, "alice")
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		f := readFrame(t, stream)
		if f.event != dto.EventSummary {
			continue
		}
		var got dto.LatestSummaryResponse
		require.NoError(t, json.Unmarshal([]byte(f.data), &got))
		require.NotNil(t, got.Summary)
		assert.Equal(t, "Fresh insights", got.Summary.Content)
		return
	}
	t.Fatal("summary change never reached the stream")
}
