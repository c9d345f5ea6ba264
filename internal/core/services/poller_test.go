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

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
	"github.com/stretchr/testify/assert"
)

// scriptedPoll returns a PollFunc that plays back the given states in
// order, repeating the last one.
func scriptedPoll(states ...services.PollObservation) services.PollFunc {
	i := 0
	return func(_ context.Context) (services.PollObservation, error) {
		obs := states[i]
		if i < len(states)-1 {
			i++
		}
		return obs, nil
	}
}

// TestWaitForCompletionSuccess verifies that the poller loops through
// transitional states and returns the observation that carried the
// success terminal state.
func TestWaitForCompletionSuccess(t *testing.T) {
	poller := services.NewPoller(time.Millisecond, 0)
	obs, err := poller.WaitForCompletion(context.Background(), "transcription",
		scriptedPoll(
			services.PollObservation{State: services.StateInProgress},
			services.PollObservation{State: services.StateInProgress},
			services.PollObservation{State: services.StateCompleted},
		),
		services.StateCompleted, services.StateFailed)

	assert.NoError(t, err)
	assert.Equal(t, services.StateCompleted, obs.State)
}

// TestWaitForCompletionFailure verifies that the failure terminal state
// surfaces as an ExternalJobError carrying the service's reason.
func TestWaitForCompletionFailure(t *testing.T) {
	poller := services.NewPoller(time.Millisecond, 0)
	_, err := poller.WaitForCompletion(context.Background(), "detection",
		scriptedPoll(
			services.PollObservation{State: services.StateInProgress},
			services.PollObservation{State: services.StateFailed, FailureReason: "unsupported codec"},
		),
		services.StateCompleted, services.StateFailed)

	var jobErr *services.ExternalJobError
	assert.ErrorAs(t, err, &jobErr)
	assert.Equal(t, "detection", jobErr.Kind)
	assert.Equal(t, "unsupported codec", jobErr.Reason)
}

// TestWaitForCompletionFailureWithoutReason checks that a failure with no
// reason from the service still produces a meaningful error.
func TestWaitForCompletionFailureWithoutReason(t *testing.T) {
	poller := services.NewPoller(time.Millisecond, 0)
	_, err := poller.WaitForCompletion(context.Background(), "transcription",
		scriptedPoll(services.PollObservation{State: services.StateFailed}),
		services.StateCompleted, services.StateFailed)

	var jobErr *services.ExternalJobError
	assert.ErrorAs(t, err, &jobErr)
	assert.Equal(t, "unknown reason", jobErr.Reason)
}

// TestWaitForCompletionPollError verifies that a failing status check
// aborts the wait immediately with the underlying error.
func TestWaitForCompletionPollError(t *testing.T) {
	poller := services.NewPoller(time.Millisecond, 0)
	pollErr := errors.New("throttled")
	_, err := poller.WaitForCompletion(context.Background(), "transcription",
		func(_ context.Context) (services.PollObservation, error) {
			return services.PollObservation{}, pollErr
		},
		services.StateCompleted, services.StateFailed)

	assert.ErrorIs(t, err, pollErr)
}

// TestWaitForCompletionContextCancel verifies that canceling the context
// unblocks a wait stuck on a job that never terminates.
func TestWaitForCompletionContextCancel(t *testing.T) {
	poller := services.NewPoller(50*time.Millisecond, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := poller.WaitForCompletion(ctx, "detection",
		scriptedPoll(services.PollObservation{State: services.StateInProgress}),
		services.StateCompleted, services.StateFailed)

	assert.ErrorIs(t, err, context.Canceled)
}

// TestWaitForCompletionMaxAttempts verifies the bounded mode: a job still
// transitional after the attempt budget returns an error instead of
// waiting forever.
func TestWaitForCompletionMaxAttempts(t *testing.T) {
	poller := services.NewPoller(time.Millisecond, 3)
	_, err := poller.WaitForCompletion(context.Background(), "transcription",
		scriptedPoll(services.PollObservation{State: services.StateInProgress}),
		services.StateCompleted, services.StateFailed)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "3 attempts")
}
