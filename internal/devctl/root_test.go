package devctl

import (
	"context"
	"errors"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := BuildRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestRootDispatchesTestCommands(t *testing.T) {
	origUnit, origBlackbox, origAll := fnRunUnitTests, fnRunBlackboxTests, fnRunAllTests
	defer func() { fnRunUnitTests, fnRunBlackboxTests, fnRunAllTests = origUnit, origBlackbox, origAll }()

	var calls []string
	fnRunUnitTests = func(ctx context.Context) error { calls = append(calls, "unit"); return nil }
	fnRunBlackboxTests = func(ctx context.Context) error { calls = append(calls, "blackbox"); return nil }
	fnRunAllTests = func(ctx context.Context) error { calls = append(calls, "all"); return nil }

	for _, sub := range []string{"unit", "blackbox", "all"} {
		if err := execute(t, "test", sub); err != nil {
			t.Fatalf("test %s: %v", sub, err)
		}
	}
	if len(calls) != 3 || calls[0] != "unit" || calls[1] != "blackbox" || calls[2] != "all" {
		t.Fatalf("calls=%v", calls)
	}
}

func TestRootPassesModelFlags(t *testing.T) {
	origDeps := fnCheckDeps
	defer func() { fnCheckDeps = origDeps }()

	var gotDir, gotModel string
	fnCheckDeps = func(ctx context.Context, modelsDir, model string) error {
		gotDir, gotModel = modelsDir, model
		return nil
	}
	if err := execute(t, "deps", "--models-dir", "/opt/models", "--model", "medium"); err != nil {
		t.Fatalf("deps: %v", err)
	}
	if gotDir != "/opt/models" || gotModel != "medium" {
		t.Fatalf("dir=%q model=%q", gotDir, gotModel)
	}
}

func TestRootFetchRequiresName(t *testing.T) {
	origFetch := fnFetchModel
	defer func() { fnFetchModel = origFetch }()

	var fetched string
	fnFetchModel = func(ctx context.Context, dir, name string) (string, error) {
		fetched = name
		return "/tmp/" + name, nil
	}
	if err := execute(t, "models", "fetch"); err == nil {
		t.Fatal("expected arg error")
	}
	if err := execute(t, "models", "fetch", "base"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetched != "base" {
		t.Fatalf("fetched=%q", fetched)
	}
}

func TestRootSmokeForwardsAddr(t *testing.T) {
	origSmoke := fnSmoke
	defer func() { fnSmoke = origSmoke }()

	var got SmokeConfig
	fnSmoke = func(ctx context.Context, cfg SmokeConfig) error {
		got = cfg
		return nil
	}
	if err := execute(t, "smoke", "--addr", "http://127.0.0.1:9999"); err != nil {
		t.Fatalf("smoke: %v", err)
	}
	if got.Addr != "http://127.0.0.1:9999" {
		t.Fatalf("cfg=%+v", got)
	}
}

func TestRootPropagatesErrors(t *testing.T) {
	origUnit := fnRunUnitTests
	defer func() { fnRunUnitTests = origUnit }()

	boom := errors.New("suite failed")
	fnRunUnitTests = func(ctx context.Context) error { return boom }
	if err := execute(t, "test", "unit"); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	if err := execute(t, "frobnicate"); err == nil {
		t.Fatal("expected unknown command error")
	}
}
