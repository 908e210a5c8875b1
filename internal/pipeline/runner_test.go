package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"auto-collection-gen/internal/collection"
	"auto-collection-gen/internal/logger"
	"auto-collection-gen/internal/provider"
	"auto-collection-gen/internal/reporter"
	"auto-collection-gen/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStream replays scripted fragments, then terminates with err or EOF.
type stubStream struct {
	fragments []string
	err       error
	pos       int
	closed    bool
}

func (s *stubStream) Recv() (string, error) {
	if s.pos < len(s.fragments) {
		frag := s.fragments[s.pos]
		s.pos++
		return frag, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

func (s *stubStream) Close() error {
	s.closed = true
	return nil
}

// stubClient returns one scripted stream (or error) per Generate call.
type stubClient struct {
	streams []*stubStream
	errs    []error
	calls   int
}

func (c *stubClient) Name() string { return "stub" }

func (c *stubClient) Generate(ctx context.Context, prompt string) (provider.Stream, error) {
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	if i >= len(c.streams) {
		return nil, errors.New("unexpected Generate call")
	}
	return c.streams[i], nil
}

func collectEvents(t *testing.T, r *Runner, endpoints []types.Endpoint) ([]types.ProgressEvent, error) {
	t.Helper()
	var events []types.ProgressEvent
	err := r.Run(context.Background(), endpoints, func(ev types.ProgressEvent) error {
		events = append(events, ev)
		return nil
	})
	return events, err
}

func TestRunnerHappyPath(t *testing.T) {
	dir := t.TempDir()
	validCase := `{"testCaseName":"Fetch items","steps":[{"action":"GET /items","expectedResult":"200 OK"}]}`

	client := &stubClient{
		streams: []*stubStream{
			{fragments: []string{validCase[:20], validCase[20:]}},
			{fragments: []string{`not json at all`}},
		},
	}
	runner := NewRunner(client, reporter.NewWriter(dir), logger.NewTestLogger())

	endpoints := []types.Endpoint{
		{Path: "/items", Method: "GET"},
		{Path: "/items/:id", Method: "DELETE"},
	}
	events, err := collectEvents(t, runner, endpoints)
	require.NoError(t, err)

	// analyzing + 2 partials, analyzing + 1 partial, done
	require.Len(t, events, 6)
	assert.Equal(t, types.ProgressEvent{Step: "GET /items", Msg: "analyzing endpoint"}, events[0])
	assert.Equal(t, validCase[:20], events[1].Partial)
	assert.Equal(t, validCase[20:], events[2].Partial)
	assert.Equal(t, types.ProgressEvent{Step: "DELETE /items/:id", Msg: "analyzing endpoint"}, events[3])
	assert.Equal(t, "not json at all", events[4].Partial)

	done := events[5]
	assert.Equal(t, "done", done.Step)
	assert.NotEmpty(t, done.SavedTo)
	require.NotNil(t, done.Collection)

	col, ok := done.Collection.(*collection.Collection)
	require.True(t, ok)
	require.Len(t, col.Item, 2)
	assert.Equal(t, "Fetch items", col.Item[0].Name)
	// Unusable model output degraded to the fallback, not an error.
	assert.Equal(t, "DELETE /items/:id Default Test", col.Item[1].Name)

	// Streams are fully drained and closed in order.
	for _, s := range client.streams {
		assert.True(t, s.closed)
	}
}

func TestRunnerSavesArtifact(t *testing.T) {
	dir := t.TempDir()
	client := &stubClient{
		streams: []*stubStream{
			{fragments: []string{`{"testCaseName":"X","steps":[{"action":"a","expectedResult":"r"}]}`}},
		},
	}
	runner := NewRunner(client, reporter.NewWriter(dir), logger.NewTestLogger())

	events, err := collectEvents(t, runner, []types.Endpoint{{Path: "/x", Method: "GET"}})
	require.NoError(t, err)

	done := events[len(events)-1]
	assert.Equal(t, filepath.Join(dir, "stub_collection.json"), done.SavedTo)

	data, err := os.ReadFile(done.SavedTo)
	require.NoError(t, err)

	var payload struct {
		Collection collection.Collection `json:"collection"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload.Collection.Item, 1)
	assert.Equal(t, "X", payload.Collection.Item[0].Name)
}

func TestRunnerLogsCarryProviderField(t *testing.T) {
	dir := t.TempDir()
	client := &stubClient{
		streams: []*stubStream{
			{fragments: []string{`{"testCaseName":"X","steps":[{"action":"a","expectedResult":"r"}]}`}},
		},
	}
	log := logger.NewTestLogger()
	runner := NewRunner(client, reporter.NewWriter(dir), log)

	_, err := collectEvents(t, runner, []types.Endpoint{{Path: "/x", Method: "GET"}})
	require.NoError(t, err)

	entries := log.Entries()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Equal(t, "stub", entry.Fields["provider"])
	}
}

func TestRunnerTransportErrorStopsBatch(t *testing.T) {
	dir := t.TempDir()
	transportErr := &provider.ProviderError{Provider: "stub", Err: errors.New("connection reset")}

	client := &stubClient{
		streams: []*stubStream{
			{fragments: []string{`{"testCaseName":"A","steps":[{"action":"a","expectedResult":"r"}]}`}},
			{fragments: []string{`{"testCase`}, err: transportErr},
		},
	}
	runner := NewRunner(client, reporter.NewWriter(dir), logger.NewTestLogger())

	endpoints := []types.Endpoint{
		{Path: "/a", Method: "GET"},
		{Path: "/b", Method: "GET"},
		{Path: "/c", Method: "GET"},
	}
	events, err := collectEvents(t, runner, endpoints)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")

	// Full set for /a, then /b's analyzing + partial, then the terminal error.
	require.Len(t, events, 5)
	assert.Equal(t, "GET /a", events[0].Step)
	assert.Equal(t, "GET /b", events[2].Step)
	last := events[len(events)-1]
	assert.NotEmpty(t, last.Error)

	// No event for /c and no third provider call.
	assert.Equal(t, 2, client.calls)

	// No artifact was finalized.
	_, statErr := os.Stat(filepath.Join(dir, "stub_collection.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunnerGenerateErrorStopsBatch(t *testing.T) {
	dir := t.TempDir()
	client := &stubClient{
		errs: []error{&provider.ProviderError{Provider: "stub", Err: errors.New("dial timeout")}},
	}
	runner := NewRunner(client, reporter.NewWriter(dir), logger.NewTestLogger())

	events, err := collectEvents(t, runner, []types.Endpoint{{Path: "/a", Method: "GET"}})
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "analyzing endpoint", events[0].Msg)
	assert.Contains(t, events[1].Error, "dial timeout")
}

func TestRunnerStopsWhenConsumerGone(t *testing.T) {
	dir := t.TempDir()
	client := &stubClient{
		streams: []*stubStream{
			{fragments: []string{"a", "b"}},
			{fragments: []string{"c"}},
		},
	}
	runner := NewRunner(client, reporter.NewWriter(dir), logger.NewTestLogger())

	disconnect := errors.New("client disconnected")
	emitted := 0
	err := runner.Run(context.Background(), []types.Endpoint{
		{Path: "/a", Method: "GET"},
		{Path: "/b", Method: "GET"},
	}, func(ev types.ProgressEvent) error {
		emitted++
		if emitted >= 2 {
			return disconnect
		}
		return nil
	})

	require.Error(t, err)
	// Only the first endpoint's provider call was issued.
	assert.Equal(t, 1, client.calls)
}

func TestRunnerHonorsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	client := &stubClient{}
	runner := NewRunner(client, reporter.NewWriter(dir), logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, []types.Endpoint{{Path: "/a", Method: "GET"}}, func(ev types.ProgressEvent) error {
		t.Fatal("no events expected after cancellation")
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, client.calls)
}
