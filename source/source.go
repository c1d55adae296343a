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

package source

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/conduitio-labs/conduit-connector-oracle-logminer/config"
	"github.com/conduitio-labs/conduit-connector-oracle-logminer/repository"
	"github.com/conduitio-labs/conduit-connector-oracle-logminer/scope"
)

//go:generate mockgen -package mock -source source.go -destination ./mock/source.go

// errNoIteratorFactory is returned by Open when the source was built without
// a log-mining reader.
var errNoIteratorFactory = errors.New("no iterator factory provided")

// Iterator is the log-mining reader the source hands its capture scope and
// database connection to. All polling, SCN advancement and record translation
// happen behind it.
type Iterator interface {
	HasNext(context.Context) (bool, error)
	Next(context.Context) (sdk.Record, error)
	Close() error
}

// IteratorParams represents the bootstrap results an IteratorFactory builds
// a reader from.
type IteratorParams struct {
	// Repo is the acquired database connection. The reader borrows it; the
	// source keeps ownership and closes it on Teardown.
	Repo *repository.Oracle
	// Targets is the resolved capture scope, in whitelist order.
	Targets []scope.Target
	// Position is the position the host restarts the reader from, raw.
	Position sdk.Position
	// SessionID identifies one bootstrap of this source in log events.
	SessionID string

	BatchSize          int
	FetchSize          int
	StartSCN           uint64
	TombstonesOnDelete bool
	DictionarySource   config.DictionarySource
	Timezone           string
}

// An IteratorFactory builds the log-mining reader.
type IteratorFactory func(context.Context, IteratorParams) (Iterator, error)

// Source connector.
type Source struct {
	sdk.UnimplementedSource

	config      config.Source
	repo        *repository.Oracle
	iterator    Iterator
	newIterator IteratorFactory
}

// NewSource initialises a new source with the given log-mining reader factory.
func NewSource(newIterator IteratorFactory) sdk.Source {
	return sdk.SourceWithMiddleware(&Source{newIterator: newIterator}, sdk.DefaultSourceMiddleware()...)
}

// Parameters returns a map of named Parameters that describe how to configure the Source.
func (s *Source) Parameters() map[string]sdk.Parameter {
	return map[string]sdk.Parameter{
		config.Host: {
			Default:     "",
			Required:    true,
			Description: "The address of the Oracle database server.",
		},
		config.Port: {
			Default:     "1521",
			Required:    false,
			Description: "The port of the Oracle database listener.",
		},
		config.SID: {
			Default:     "",
			Required:    true,
			Description: "The Oracle system identifier (or service name) of the database.",
		},
		config.User: {
			Default:     "",
			Required:    true,
			Description: "The name of the database account the connector mines with.",
		},
		config.Password: {
			Default:     "",
			Required:    true,
			Description: "The password of the database account.",
		},
		config.Whitelist: {
			Default:  "",
			Required: true,
			Description: "Comma-separated list of SCHEMA or SCHEMA.TABLE entries defining what the connector " +
				"mines. Identifiers are case-sensitive and must match the case stored in the database.",
		},
		config.BatchSize: {
			Default:     "1000",
			Required:    false,
			Description: "Size of rows batch. Min is 1 and max is 100000.",
		},
		config.FetchSize: {
			Default:     "",
			Required:    false,
			Description: "Number of rows the driver fetches per round trip, equal to batchSize unless set.",
		},
		config.StartSCN: {
			Default:     "0",
			Required:    false,
			Description: "The system change number the initial capture starts from, 0 meaning a full initial capture.",
		},
		config.TombstonesOnDelete: {
			Default:     "true",
			Required:    false,
			Description: "Whether a tombstone record follows each delete.",
		},
		config.DictionarySourceKey: {
			Default:     "ONLINE",
			Required:    false,
			Description: "Where LogMiner resolves object metadata from, either ONLINE or REDO_LOG.",
		},
		config.Timezone: {
			Default:     "UTC",
			Required:    false,
			Description: "The name of the zone the mined timestamps are interpreted in.",
		},
		config.ConnectionRetries: {
			Default:     "3",
			Required:    false,
			Description: "Maximum number of connection attempts, including the first one.",
		},
		config.RetryBackoff: {
			Default:     "3s",
			Required:    false,
			Description: "Fixed delay between connection attempts.",
		},
	}
}

// Configure parses and stores configurations, returns an error in case of invalid configuration.
func (s *Source) Configure(_ context.Context, cfgRaw map[string]string) error {
	cfg, err := config.ParseSource(cfgRaw)
	if err != nil {
		return err
	}

	s.config = cfg

	return nil
}

// Open resolves the capture scope, acquires a database connection under the
// configured retry policy and hands both to the log-mining reader.
func (s *Source) Open(ctx context.Context, position sdk.Position) error {
	if s.newIterator == nil {
		return errNoIteratorFactory
	}

	targets := scope.Resolve(s.config.Whitelist)

	repo, err := repository.Acquire(ctx,
		repository.Params{
			Host:     s.config.Host,
			Port:     s.config.Port,
			SID:      s.config.SID,
			User:     s.config.User,
			Password: s.config.Password,
		},
		repository.Policy{
			MaxAttempts: s.config.ConnectionRetries,
			Backoff:     s.config.RetryBackoff,
		},
	)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}

	s.repo = repo

	sessionID := uuid.NewString()

	sdk.Logger(ctx).Info().
		Str("session", sessionID).
		Int("targets", len(targets)).
		Str("dictionarySource", s.config.DictionarySource.String()).
		Msg("capture scope resolved")

	s.iterator, err = s.newIterator(ctx, IteratorParams{
		Repo:               repo,
		Targets:            targets,
		Position:           position,
		SessionID:          sessionID,
		BatchSize:          s.config.BatchSize,
		FetchSize:          s.config.FetchSize,
		StartSCN:           s.config.StartSCN,
		TombstonesOnDelete: s.config.TombstonesOnDelete,
		DictionarySource:   s.config.DictionarySource,
		Timezone:           s.config.Timezone,
	})
	if err != nil {
		err = multierr.Append(fmt.Errorf("new iterator: %w", err), s.repo.Close())
		s.repo = nil

		return err
	}

	return nil
}

// Read returns the next record.
func (s *Source) Read(ctx context.Context) (sdk.Record, error) {
	hasNext, err := s.iterator.HasNext(ctx)
	if err != nil {
		return sdk.Record{}, fmt.Errorf("has next: %w", err)
	}

	if !hasNext {
		return sdk.Record{}, sdk.ErrBackoffRetry
	}

	r, err := s.iterator.Next(ctx)
	if err != nil {
		return sdk.Record{}, fmt.Errorf("next: %w", err)
	}

	return r, nil
}

// Ack logs the acknowledged position. Offset persistence belongs to the host.
func (s *Source) Ack(ctx context.Context, position sdk.Position) error {
	sdk.Logger(ctx).Debug().Str("position", string(position)).Msg("got ack")

	return nil
}

// Teardown gracefully shutdown connector.
func (s *Source) Teardown(_ context.Context) error {
	var err error

	if s.iterator != nil {
		err = multierr.Append(err, s.iterator.Close())
	}

	if s.repo != nil {
		err = multierr.Append(err, s.repo.Close())
	}

	return err
}
