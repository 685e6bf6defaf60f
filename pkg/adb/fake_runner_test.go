package adb

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// fakeRunner answers from a script keyed by the space-joined argv (without
// the executable). Unscripted commands exit 1 with empty output.
type fakeRunner struct {
	mu      sync.Mutex
	script  map[string]Result
	spawn   map[string]error
	calls   []string
	lastCtx context.Context
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{script: map[string]Result{}, spawn: map[string]error{}}
}

func (f *fakeRunner) on(cmd string, res Result) *fakeRunner {
	f.script[cmd] = res
	return f
}

func (f *fakeRunner) stdout(cmd, out string) *fakeRunner {
	return f.on(cmd, Result{Stdout: []byte(out)})
}

func (f *fakeRunner) fail(cmd, stderr string) *fakeRunner {
	return f.on(cmd, Result{Stderr: stderr, ExitCode: 1})
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.lastCtx = ctx
	f.mu.Unlock()

	if err, ok := f.spawn[key]; ok {
		return Result{}, err
	}
	if res, ok := f.script[key]; ok {
		return res, nil
	}
	return Result{ExitCode: 1}, nil
}

func (f *fakeRunner) called(cmd string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == cmd {
			return true
		}
	}
	return false
}

var errNotFound = errors.New("exec: \"adb\": executable file not found in $PATH")
