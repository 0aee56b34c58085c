package session_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tagmark/internal/console"
	"tagmark/internal/logging"
	"tagmark/internal/session"
	"tagmark/internal/skipcache"
)

func seededCache(t *testing.T) *skipcache.Cache {
	t.Helper()
	cache, err := skipcache.Open(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	if err := cache.SetSkipped("alpha", []int{3, 7}); err != nil {
		t.Fatalf("seed alpha: %v", err)
	}
	if err := cache.SetSkipped("beta", []int{1}); err != nil {
		t.Fatalf("seed beta: %v", err)
	}
	return cache
}

func choose(t *testing.T, cache *skipcache.Cache, input string) (string, string, error) {
	t.Helper()
	var out bytes.Buffer
	name, err := session.ChooseSession(
		context.Background(),
		cache,
		session.NewLineReader(strings.NewReader(input)),
		console.NewPlainPrinter(&out),
	)
	return name, out.String(), err
}

func TestChooseSessionByNumber(t *testing.T) {
	name, output, err := choose(t, seededCache(t), "1\n")
	if err != nil {
		t.Fatalf("ChooseSession returned error: %v", err)
	}
	// Sessions are listed sorted, so index 1 is beta.
	if name != "beta" {
		t.Fatalf("unexpected session: %q", name)
	}
	if !strings.Contains(output, "alpha") || !strings.Contains(output, "beta") {
		t.Fatalf("session listing missing:\n%s", output)
	}
}

func TestChooseSessionNewName(t *testing.T) {
	name, _, err := choose(t, seededCache(t), "gamma\n")
	if err != nil {
		t.Fatalf("ChooseSession returned error: %v", err)
	}
	if name != "gamma" {
		t.Fatalf("unexpected session: %q", name)
	}
}

func TestChooseSessionRepromptsOnBadNumber(t *testing.T) {
	name, output, err := choose(t, seededCache(t), "9\nfresh\n")
	if err != nil {
		t.Fatalf("ChooseSession returned error: %v", err)
	}
	if name != "fresh" {
		t.Fatalf("unexpected session: %q", name)
	}
	if !strings.Contains(output, "not a valid session number") {
		t.Fatalf("missing reprompt warning:\n%s", output)
	}
}

func TestChooseSessionRepromptsOnEmptyLine(t *testing.T) {
	name, output, err := choose(t, seededCache(t), "\nmine\n")
	if err != nil {
		t.Fatalf("ChooseSession returned error: %v", err)
	}
	if name != "mine" {
		t.Fatalf("unexpected session: %q", name)
	}
	if !strings.Contains(output, "cannot be empty") {
		t.Fatalf("missing empty-name warning:\n%s", output)
	}
}

func TestChooseSessionFailsOnClosedInput(t *testing.T) {
	if _, _, err := choose(t, seededCache(t), ""); err == nil {
		t.Fatal("expected error when input ends before a choice")
	}
}
