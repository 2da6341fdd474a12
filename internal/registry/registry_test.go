package registry

import (
	"context"
	"testing"
)

type stubFrontend struct {
	id  string
	ran bool
}

func (s *stubFrontend) ID() string    { return s.id }
func (s *stubFrontend) Title() string { return "Stub " + s.id }
func (s *stubFrontend) Run(ctx context.Context, env Env) error {
	s.ran = true
	return nil
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	savedF, savedT := factories, titles
	factories = make(map[string]Factory)
	titles = make(map[string]string)
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		factories, titles = savedF, savedT
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	withCleanRegistry(t)

	Register("zeta", func() Frontend { return &stubFrontend{id: "zeta"} })
	Register("alpha", func() Frontend { return &stubFrontend{id: "alpha"} })

	list := List()
	if len(list) != 2 {
		t.Fatalf("Expected 2 frontends, got %d", len(list))
	}
	if list[0].ID != "alpha" || list[1].ID != "zeta" {
		t.Errorf("List() order = %v, expected sorted by ID", list)
	}
	if list[0].Title != "Stub alpha" {
		t.Errorf("Title = %q, expected %q", list[0].Title, "Stub alpha")
	}

	if !Exists("alpha") || Exists("beta") {
		t.Error("Exists() reports wrong membership")
	}

	fe, err := Create("alpha")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := fe.Run(context.Background(), Env{}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !fe.(*stubFrontend).ran {
		t.Error("Run() was not called on the created frontend")
	}
}

func TestCreateUnknown(t *testing.T) {
	withCleanRegistry(t)

	if _, err := Create("missing"); err == nil {
		t.Error("Expected an error for an unknown frontend")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withCleanRegistry(t)
	Register("dup", func() Frontend { return &stubFrontend{id: "dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic on duplicate registration")
		}
	}()
	Register("dup", func() Frontend { return &stubFrontend{id: "dup"} })
}
