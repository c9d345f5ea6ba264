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

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultPollInterval is the baseline delay between status checks.
const DefaultPollInterval = 2 * time.Second

// PollObservation is one status check result handed to the poller: the
// job's current state and, when the state is failure-terminal, the reason
// extracted from the status payload.
type PollObservation struct {
	State         string
	FailureReason string
}

// PollFunc performs one status check against an external job. Payload data
// (transcript URI, label set) stays with the caller via closure capture;
// the poller only needs the state.
type PollFunc func(ctx context.Context) (PollObservation, error)

// ExternalJobError reports an external job that reached its failure
// terminal state.
type ExternalJobError struct {
	Kind   string // "transcription" or "detection".
	Reason string
}

func (e *ExternalJobError) Error() string {
	return fmt.Sprintf("%s job failed: %s", e.Kind, e.Reason)
}

// Poller blocks the calling goroutine until an external job reaches a
// terminal state. The baseline configuration polls every two seconds with
// no attempt bound; MaxAttempts > 0 adds a deadline, and the context
// cancels the wait at any poll boundary.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int // 0 means unbounded, the baseline default.
}

// NewPoller returns a poller with the given interval, falling back to
// DefaultPollInterval when the interval is not positive.
func NewPoller(interval time.Duration, maxAttempts int) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{Interval: interval, MaxAttempts: maxAttempts}
}

// WaitForCompletion polls until the observed state is one of the two
// terminal states. It returns the final observation on the success state,
// an ExternalJobError on the failure state, and the poll error itself when
// a status check fails outright. The kind tags log lines and errors.
func (p *Poller) WaitForCompletion(ctx context.Context, kind string, poll PollFunc, successState, failureState string) (PollObservation, error) {
	attempts := 0
	for {
		obs, err := poll(ctx)
		if err != nil {
			return PollObservation{}, fmt.Errorf("polling %s job: %w", kind, err)
		}

		switch obs.State {
		case successState:
			return obs, nil
		case failureState:
			reason := obs.FailureReason
			if reason == "" {
				reason = "unknown reason"
			}
			return obs, &ExternalJobError{Kind: kind, Reason: reason}
		}

		attempts++
		if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
			return obs, fmt.Errorf("%s job did not reach a terminal state after %d attempts (last state %s)", kind, attempts, obs.State)
		}
		slog.Info("waiting on external job", "kind", kind, "state", obs.State)

		select {
		case <-ctx.Done():
			return obs, fmt.Errorf("waiting on %s job: %w", kind, ctx.Err())
		case <-time.After(p.Interval):
		}
	}
}
