// Copyright © 2022 Meroxa, Inc. & Yalantis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/conduitio/conduit-connector-sdk"
)

// Params holds the endpoint and the credentials of an Oracle database.
// Params are loaded once from a validated configuration and never mutated.
type Params struct {
	Host     string
	Port     int
	SID      string
	User     string
	Password string
}

// Address returns the host:port:SID form of the endpoint.
// It carries no credentials and is safe to log.
func (p Params) Address() string {
	return fmt.Sprintf("%s:%d:%s", p.Host, p.Port, p.SID)
}

// URL returns the connection string the driver layer opens.
func (p Params) URL() string {
	return fmt.Sprintf("%s/%s@%s:%d/%s", p.User, p.Password, p.Host, p.Port, p.SID)
}

// A Policy bounds connection acquisition. MaxAttempts limits the total number
// of attempts including the first one, Backoff is the fixed delay between
// attempts. It is not applied before the first attempt or after the last one.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// An OpenFunc opens a repository for a connection URL.
type OpenFunc func(url string) (*Oracle, error)

// An UnavailableError reports that the database stayed unreachable for every
// attempt the policy allowed. It wraps the failure of the last attempt.
type UnavailableError struct {
	Address  string
	Attempts int
	Err      error
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("database %s unavailable after %d attempt(s): %s", e.Address, e.Attempts, e.Err)
}

func (e UnavailableError) Unwrap() error {
	return e.Err
}

// Acquire opens a connection to the database under the given policy. Failed
// attempts are logged and retried after the policy's backoff until the policy
// is exhausted, in which case an UnavailableError is returned for the caller
// to judge. The returned repository is owned by the caller, who must close it.
//
// Acquire blocks for the backoff between attempts, so it belongs in task
// startup, not on a hot path.
func Acquire(ctx context.Context, params Params, policy Policy) (*Oracle, error) {
	return acquire(ctx, params, policy, New, time.Sleep)
}

func acquire(
	ctx context.Context,
	params Params,
	policy Policy,
	open OpenFunc,
	sleep func(time.Duration),
) (*Oracle, error) {
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		repo, err := open(params.URL())
		if err == nil {
			sdk.Logger(ctx).Info().
				Str("address", params.Address()).
				Int("attempt", attempt).
				Msg("connected to database")

			return repo, nil
		}

		lastErr = err

		sdk.Logger(ctx).Warn().
			Str("address", params.Address()).
			Int("attempt", attempt).
			Int("maxAttempts", policy.MaxAttempts).
			Err(err).
			Msg("database connection failed")

		if attempt < policy.MaxAttempts {
			sleep(policy.Backoff)
		}
	}

	return nil, UnavailableError{
		Address:  params.Address(),
		Attempts: policy.MaxAttempts,
		Err:      lastErr,
	}
}
