package devctl

import "context"

// RunUnitTests runs every package test in the module.
func RunUnitTests(ctx context.Context) error {
	info("==== Run unit tests ====")
	return runStreaming(ctx, "go", "test", "./...", "-count=1")
}

// RunBlackboxTests builds and exercises the server binary end to end.
func RunBlackboxTests(ctx context.Context) error {
	info("==== Run blackbox tests ====")
	return runStreaming(ctx, "go", "test", "./tests/blackbox", "-v", "-count=1")
}

// RunAllTests runs the unit suite and then the blackbox suite.
func RunAllTests(ctx context.Context) error {
	if err := RunUnitTests(ctx); err != nil {
		return err
	}
	return RunBlackboxTests(ctx)
}
