// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cor_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/cor"
	"github.com/zeebo/assert"
)

// appendCommand records its execution and passes an accumulating string
// through the chain's in/out piping.
type appendCommand struct {
	cor.BaseCommand
	suffix string
	fail   error
}

func newAppendCommand(name, suffix string, fail error) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix, fail: fail}
}

// IsExecutable only needs a Go context here: these commands tolerate a
// missing primary input and treat it as the empty string.
func (c *appendCommand) IsExecutable(ctx cor.Context) bool {
	return ctx != nil && ctx.GetContext() != nil
}

func (c *appendCommand) Execute(ctx cor.Context) {
	if c.fail != nil {
		ctx.AddError(c.GetName(), c.fail)
		return
	}
	in, _ := ctx.Get(c.GetInputParam()).(string)
	ctx.Add(c.GetOutputParam(), in+c.suffix)
}

// TestChainPipesOutputToInput verifies the core piping contract: each
// command's CtxOut value becomes the next command's CtxIn.
func TestChainPipesOutputToInput(t *testing.T) {
	chain := cor.NewBaseChain("test").
		AddCommand(newAppendCommand("first", "a", nil)).
		AddCommand(newAppendCommand("second", "b", nil)).
		AddCommand(newAppendCommand("third", "c", nil))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(cor.CtxIn, "")

	chain.Execute(ctx)

	assert.False(t, ctx.HasErrors())
	assert.Equal(t, "abc", ctx.Get(cor.CtxIn))
}

// TestChainStopsAtFirstError verifies the fatal-step policy: once a
// command records an error, later commands do not run.
func TestChainStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	tail := newAppendCommand("tail", "x", nil)
	chain := cor.NewBaseChain("test").
		AddCommand(newAppendCommand("first", "a", nil)).
		AddCommand(newAppendCommand("broken", "", boom)).
		AddCommand(tail)

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(cor.CtxIn, "")

	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.Error(t, ctx.Err())
	assert.Nil(t, ctx.Get(cor.CtxIn))
}

// TestChainContinueOnFailure verifies the override: with the flag set the
// chain keeps running commands after an error.
func TestChainContinueOnFailure(t *testing.T) {
	chain := cor.NewBaseChain("test").
		ContinueOnFailure(true).
		AddCommand(newAppendCommand("broken", "", errors.New("boom"))).
		AddCommand(newAppendCommand("tail", "z", nil))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.Add(cor.CtxIn, "")

	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.Equal(t, "z", ctx.Get(cor.CtxIn))
}

// TestChainStopsOnCanceledContext verifies that a canceled Go context
// stops the chain before the next command and records the cancellation.
func TestChainStopsOnCanceledContext(t *testing.T) {
	goCtx, cancel := context.WithCancel(context.Background())
	cancel()

	chain := cor.NewBaseChain("test").
		AddCommand(newAppendCommand("first", "a", nil))

	ctx := cor.NewBaseContext()
	ctx.SetContext(goCtx)
	ctx.Add(cor.CtxIn, "")

	chain.Execute(ctx)

	assert.True(t, ctx.HasErrors())
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}

// TestContextCloseRemovesTempFiles verifies that Close deletes every
// tracked temp file and tolerates files already gone.
func TestContextCloseRemovesTempFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.tmp")
	assert.NoError(t, os.WriteFile(present, []byte("x"), 0o644))

	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	ctx.AddTempFile(present)
	ctx.AddTempFile(filepath.Join(dir, "already-gone.tmp"))

	ctx.Close()

	_, err := os.Stat(present)
	assert.True(t, os.IsNotExist(err))
}

// TestContextErrIsDeterministic verifies that Err reports multiple
// recorded errors in a stable key order.
func TestContextErrIsDeterministic(t *testing.T) {
	ctx := cor.NewBaseContext()
	ctx.AddError("b_command", errors.New("second"))
	ctx.AddError("a_command", errors.New("first"))

	first := ctx.Err().Error()
	second := ctx.Err().Error()
	assert.Equal(t, first, second)
}
