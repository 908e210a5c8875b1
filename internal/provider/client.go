package provider

import "context"

// Stream is a finite, non-restartable sequence of text fragments produced by
// one generation request.
type Stream interface {
	// Recv returns the next fragment. io.EOF signals normal end of stream;
	// any other error is a transport or authentication failure.
	Recv() (string, error)

	// Close releases the underlying connection. Safe to call after Recv has
	// returned an error.
	Close() error
}

// Client defines the capability contract for LLM backends: submit a prompt,
// receive a lazy sequence of text fragments.
type Client interface {
	// Name identifies the provider (keys the output artifact).
	Name() string

	// Generate submits the prompt and opens the fragment stream.
	Generate(ctx context.Context, prompt string) (Stream, error)
}
