package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/model"
)

// Snapshot is the latest server-side view of the caller's data. Loaded is
// false until the todo list has arrived at least once, which lets a UI tell
// "still loading" apart from "no todos".
type Snapshot struct {
	Todos   []*model.Todo
	Stats   model.TodoStats
	Summary *model.Summary
	Loaded  bool
}

// Subscribe opens the live stream. A Snapshot is delivered after the
// initial state and after every change the server reports. The channel is
// closed when ctx ends or the stream breaks; nothing is retried.
func (c *Client) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/live", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opening live stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return nil, &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	out := make(chan Snapshot, 1)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		var snap Snapshot
		_ = readEvents(bufio.NewReader(resp.Body), func(event, data string) bool {
			emit, err := snap.apply(event, data)
			if err != nil || !emit {
				return err == nil
			}
			select {
			case out <- snap.clone():
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return out, nil
}

// apply folds one event into the snapshot and reports whether the result
// is worth emitting. todos is always followed by stats, so only the latter
// triggers an emission.
func (s *Snapshot) apply(event, data string) (bool, error) {
	switch event {
	case dto.EventTodos:
		var todos []*model.Todo
		if err := json.Unmarshal([]byte(data), &todos); err != nil {
			return false, err
		}
		s.Todos = todos
		s.Loaded = true
		return false, nil
	case dto.EventStats:
		if err := json.Unmarshal([]byte(data), &s.Stats); err != nil {
			return false, err
		}
		return true, nil
	case dto.EventSummary:
		var res dto.LatestSummaryResponse
		if err := json.Unmarshal([]byte(data), &res); err != nil {
			return false, err
		}
		s.Summary = res.Summary
		return s.Loaded, nil
	}
	return false, nil
}

func (s Snapshot) clone() Snapshot {
	s.Todos = append([]*model.Todo(nil), s.Todos...)
	return s
}

// readEvents parses a text/event-stream body and calls fn for every
// complete event until fn returns false or the body ends.
func readEvents(r *bufio.Reader, fn func(event, data string) bool) error {
	var (
		event string
		data  []string
	)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if len(data) > 0 {
				if !fn(event, strings.Join(data, "\n")) {
					return nil
				}
			}
			event, data = "", nil
		case strings.HasPrefix(line, ":"):
			// comment, used for heartbeats
		default:
			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "event":
				event = value
			case "data":
				data = append(data, value)
			}
		}
	}
}
