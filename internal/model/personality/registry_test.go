package personality

import "testing"

func TestDefaultRegistryOrder(t *testing.T) {
	reg := Default()
	items := reg.List()

	if len(items) != 10 {
		t.Fatalf("expected 10 personalities, got %d", len(items))
	}
	if items[0].ID != "alex_sarcastic" || items[9].ID != "noah_chill" {
		t.Fatalf("unexpected order: first=%s last=%s", items[0].ID, items[9].ID)
	}
}

func TestRegistryGet(t *testing.T) {
	reg := Default()

	p, ok := reg.Get("alex_sarcastic")
	if !ok {
		t.Fatal("expected alex_sarcastic to exist")
	}
	if p.Name != "Alex" {
		t.Fatalf("unexpected name %q", p.Name)
	}
	if p.SystemPrompt == "" {
		t.Fatal("expected a system prompt")
	}

	if _, ok := reg.Get("missing"); ok {
		t.Fatal("expected lookup of unknown id to fail")
	}
}

func TestRegistryListIsCopy(t *testing.T) {
	reg := Default()
	items := reg.List()
	items[0].Name = "changed"

	p, _ := reg.Get(items[0].ID)
	if p.Name == "changed" {
		t.Fatal("List must not expose internal state")
	}
}

func TestRegistryIgnoresDuplicateIDs(t *testing.T) {
	reg := NewMemoryRegistry([]Personality{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
		{ID: "b", Name: "third"},
	})

	if got := len(reg.List()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	p, _ := reg.Get("a")
	if p.Name != "first" {
		t.Fatalf("expected first declaration to win, got %q", p.Name)
	}
}
