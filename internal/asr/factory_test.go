package asr

import "testing"

func TestFactoryFor(t *testing.T) {
	for _, name := range []string{"", BackendExec, BackendWhisper} {
		f, err := FactoryFor(name)
		if err != nil {
			t.Fatalf("FactoryFor(%q): %v", name, err)
		}
		if f == nil {
			t.Fatalf("FactoryFor(%q) returned nil factory", name)
		}
	}
}

func TestFactoryForUnknown(t *testing.T) {
	if _, err := FactoryFor("parakeet"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
