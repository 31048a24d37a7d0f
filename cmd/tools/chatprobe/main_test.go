package main

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	"github.com/zhouzirui/persona-chat/backend/internal/service/ai"
)

type scripted struct {
	outcome ai.Outcome
	got     []*schema.Message
}

func (s *scripted) Complete(_ context.Context, entries []*schema.Message) ai.Outcome {
	s.got = entries
	return s.outcome
}

func (s *scripted) Name() string { return "scripted" }

func TestProbe(t *testing.T) {
	p, _ := personality.Default().Get("zoe_tech")

	ok := &scripted{outcome: ai.Success("Go is great")}
	if code := probe(context.Background(), ok, p, "favorite language?"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if len(ok.got) != 2 || ok.got[0].Content != p.SystemPrompt || ok.got[1].Content != "favorite language?" {
		t.Fatalf("unexpected prompt: %+v", ok.got)
	}

	failing := &scripted{outcome: ai.Failure(&ai.Error{Kind: ai.KindNetwork, Provider: "scripted", Cause: errors.New("dial tcp")})}
	if code := probe(context.Background(), failing, p, "hello"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}
