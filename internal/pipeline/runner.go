package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"auto-collection-gen/internal/collection"
	"auto-collection-gen/internal/generator"
	"auto-collection-gen/internal/logger"
	"auto-collection-gen/internal/provider"
	"auto-collection-gen/internal/reporter"
	"auto-collection-gen/internal/types"
)

// DefaultCollectionName names the assembled collection artifact.
const DefaultCollectionName = "Generated API Tests"

// EmitFunc delivers one progress event to the caller. A returned error means
// the caller is gone (e.g. the client disconnected); the run stops and no
// further provider calls are issued.
type EmitFunc func(types.ProgressEvent) error

// Runner drives the per-endpoint generation sequence: prompt, provider
// stream, aggregation, collection assembly, artifact finalization. Endpoints
// are processed strictly sequentially; each provider stream is fully drained
// before the next endpoint starts, so output order always matches endpoint
// order.
type Runner struct {
	client provider.Client
	writer *reporter.Writer
	logger logger.Logger
}

// NewRunner creates a new pipeline runner
func NewRunner(client provider.Client, writer *reporter.Writer, log logger.Logger) *Runner {
	return &Runner{
		client: client,
		writer: writer,
		logger: log.WithField("provider", client.Name()),
	}
}

// Run generates one test case per endpoint and assembles the collection,
// emitting progress events as it works. Partial progress already emitted is
// never retracted: on an unrecoverable failure a terminal error event is
// emitted (best effort) and the run stops.
func (r *Runner) Run(ctx context.Context, endpoints []types.Endpoint, emit EmitFunc) error {
	asm := collection.NewAssembler(DefaultCollectionName)

	for _, ep := range endpoints {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := fmt.Sprintf("%s %s", ep.Method, ep.Path)
		if err := emit(types.ProgressEvent{Step: step, Msg: "analyzing endpoint"}); err != nil {
			return err
		}

		fragments, err := r.streamEndpoint(ctx, ep, step, emit)
		if err != nil {
			return r.fail(ctx, emit, err)
		}

		tc := generator.Aggregate(ep, fragments)
		r.logger.Info(ctx, "test case generated", map[string]interface{}{
			"endpoint": step,
			"name":     tc.TestCaseName,
			"steps":    len(tc.Steps),
		})

		asm.Append(ep, tc)
	}

	path, err := r.writer.Save(r.client.Name(), asm.Collection())
	if err != nil {
		return r.fail(ctx, emit, err)
	}

	r.logger.Info(ctx, "collection saved", map[string]interface{}{
		"path":  path,
		"items": asm.Len(),
	})

	return emit(types.ProgressEvent{
		Step:       "done",
		SavedTo:    path,
		Collection: asm.Collection(),
	})
}

// streamEndpoint opens the provider stream for one endpoint and drains it,
// emitting one partial event per fragment.
func (r *Runner) streamEndpoint(ctx context.Context, ep types.Endpoint, step string, emit EmitFunc) ([]string, error) {
	prompt := generator.BuildPrompt(ep)

	stream, err := r.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var fragments []string
	for {
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return fragments, nil
		}
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag)
		if err := emit(types.ProgressEvent{Step: step, Partial: frag}); err != nil {
			return nil, err
		}
	}
}

// fail converts an unrecoverable failure into a terminal error event. The
// event is best effort: when emit itself is the failure there is nobody left
// to notify.
func (r *Runner) fail(ctx context.Context, emit EmitFunc, err error) error {
	r.logger.Error(ctx, "generation pipeline failed", map[string]interface{}{
		"error": err.Error(),
	})
	_ = emit(types.ProgressEvent{Error: err.Error()})
	return err
}
