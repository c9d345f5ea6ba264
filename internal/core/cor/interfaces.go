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

// Package cor (Chain of Responsibility) provides the building blocks for
// assembling the annotation pipeline as a sequence of commands. Each command
// is an atomic, individually traced unit of work; a chain executes its
// commands in order, piping the primary output of one command into the
// primary input of the next through a shared context.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys used for the primary data flow within a
// chain. A chain moves the value a command stored under CtxOut into CtxIn
// before executing the next command.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands for
// a single pipeline run. It carries data, errors, and the list of temporary
// files the run has created so they can be cleaned up at the end.
type Context interface {
	// SetContext sets the standard Go context, used for cancellation and for
	// carrying OpenTelemetry span information between commands.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. Returns the Context for fluent chaining.
	Add(key string, value interface{}) Context

	// Get retrieves a value by key, or nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// AddError records an error produced by a command, keyed by the command
	// name.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the run.
	GetErrors() map[string]error

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool

	// Err joins all recorded errors into a single error, or returns nil.
	Err() error

	// AddTempFile tracks a temporary file created during the run.
	AddTempFile(file string)

	// GetTempFiles returns all tracked temporary file paths.
	GetTempFiles() []string

	// Close removes all tracked temporary files. Removal failures are logged
	// and never replace an error already recorded in the context.
	Close()
}

// Executable is any object with a core execution step. Commands read their
// inputs from the context and write their outputs back to it.
type Executable interface {
	Execute(context Context)
}

// Command is an atomic, testable unit of work within a pipeline.
type Command interface {
	Executable

	// GetName returns the command name used for logging and telemetry.
	GetName() string

	// GetInputParam returns the context key holding the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the context key the command stores its output under.
	GetOutputParam() string

	// IsExecutable reports whether the command can run against the current
	// state of the context. Checked before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains
// can be nested.
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after a
	// command records an error. The pipeline default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
