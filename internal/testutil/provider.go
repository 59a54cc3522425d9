package testutil

import (
	"context"
	"sync"

	"github.com/mira/chat-relay/internal/llm"
)

// FakeProvider is a scripted stand-in for the OpenAI client. It replies with
// a fixed string (or error) and records every prompt it was asked.
type FakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{reply: "fake reply"}
}

func (p *FakeProvider) SetReply(reply string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reply = reply
	p.err = nil
}

func (p *FakeProvider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Prompts returns a copy of every prompt received so far.
func (p *FakeProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

func (p *FakeProvider) Complete(ctx context.Context, prompt string) (*llm.Completion, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return nil, p.err
	}

	return &llm.Completion{
		Text:             p.reply,
		Model:            "fake-model",
		PromptTokens:     int64(len(prompt)),
		CompletionTokens: int64(len(p.reply)),
	}, nil
}
