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

package config

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// Whitelist is the configuration name of the comma-separated capture scope.
	Whitelist = "whitelist"
	// BatchSize is a config name for a batch size.
	BatchSize = "batchSize"
	// FetchSize is a config name for the driver fetch size.
	FetchSize = "fetchSize"
	// StartSCN is a config name for the SCN the initial capture starts from.
	StartSCN = "startSCN"
	// TombstonesOnDelete is a config name for emitting tombstones on deletes.
	TombstonesOnDelete = "tombstonesOnDelete"
	// DictionarySourceKey is a config name for the LogMiner dictionary source.
	DictionarySourceKey = "dictionarySource"
	// Timezone is a config name for the zone timestamps are interpreted in.
	Timezone = "timezone"
	// ConnectionRetries is a config name for the maximum connection attempts.
	ConnectionRetries = "connectionRetries"
	// RetryBackoff is a config name for the delay between connection attempts.
	RetryBackoff = "retryBackoff"

	// defaultBatchSize is the default value of the BatchSize field.
	defaultBatchSize = 1000
	// defaultTombstonesOnDelete is a default value for the TombstonesOnDelete field.
	defaultTombstonesOnDelete = true
	// defaultTimezone is a default value for the Timezone field.
	defaultTimezone = "UTC"
	// defaultConnectionRetries is a default value for the ConnectionRetries field.
	defaultConnectionRetries = 3
	// defaultRetryBackoff is a default value for the RetryBackoff field.
	defaultRetryBackoff = 3 * time.Second
)

// A Source represents a source configuration.
type Source struct {
	Configuration

	// Whitelist is a comma-separated list of SCHEMA or SCHEMA.TABLE entries
	// defining what the connector mines. Identifiers are case-sensitive and
	// must match the case stored in the database.
	Whitelist string `validate:"required"`

	// BatchSize is a size of rows batch. Min is 1 and max is 100000.
	BatchSize int `validate:"gte=1,lte=100000"`

	// FetchSize is the number of rows the driver fetches per round trip,
	// equal to BatchSize unless set explicitly.
	FetchSize int `validate:"gte=1,lte=100000"`

	// StartSCN is the system change number the initial capture starts from,
	// zero meaning a full initial capture.
	StartSCN uint64

	// TombstonesOnDelete determines whether a tombstone record follows each delete.
	TombstonesOnDelete bool

	// DictionarySource determines where LogMiner resolves object metadata from.
	DictionarySource DictionarySource

	// Timezone is the name of the zone the mined timestamps are interpreted in.
	Timezone string `validate:"required,timezone"`

	// ConnectionRetries is the maximum number of connection attempts,
	// including the first one.
	ConnectionRetries int `validate:"gte=1"`

	// RetryBackoff is the fixed delay between connection attempts.
	RetryBackoff time.Duration `validate:"gte=0"`
}

// ParseSource parses a map with source configuration values.
// A new config.Source should always be constructed using this function.
func ParseSource(cfgMap map[string]string) (Source, error) {
	config, err := parseConfiguration(cfgMap)
	if err != nil {
		return Source{}, err
	}

	cfg := Source{
		Configuration:      config,
		Whitelist:          cfgMap[Whitelist],
		BatchSize:          defaultBatchSize,
		TombstonesOnDelete: defaultTombstonesOnDelete,
		DictionarySource:   DictionaryOnline,
		Timezone:           defaultTimezone,
		ConnectionRetries:  defaultConnectionRetries,
		RetryBackoff:       defaultRetryBackoff,
	}

	if cfgMap[BatchSize] != "" {
		cfg.BatchSize, err = strconv.Atoi(cfgMap[BatchSize])
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", BatchSize, err)
		}
	}

	// the driver fetch size follows the batch size unless set explicitly
	cfg.FetchSize = cfg.BatchSize
	if cfgMap[FetchSize] != "" {
		cfg.FetchSize, err = strconv.Atoi(cfgMap[FetchSize])
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", FetchSize, err)
		}
	}

	if cfgMap[StartSCN] != "" {
		cfg.StartSCN, err = strconv.ParseUint(cfgMap[StartSCN], 10, 64)
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", StartSCN, err)
		}
	}

	if cfgMap[TombstonesOnDelete] != "" {
		cfg.TombstonesOnDelete, err = strconv.ParseBool(cfgMap[TombstonesOnDelete])
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", TombstonesOnDelete, err)
		}
	}

	if cfgMap[DictionarySourceKey] != "" {
		cfg.DictionarySource, err = ParseDictionarySource(cfgMap[DictionarySourceKey])
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", DictionarySourceKey, err)
		}
	}

	if cfgMap[Timezone] != "" {
		cfg.Timezone = cfgMap[Timezone]
	}

	if cfgMap[ConnectionRetries] != "" {
		cfg.ConnectionRetries, err = strconv.Atoi(cfgMap[ConnectionRetries])
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", ConnectionRetries, err)
		}
	}

	if cfgMap[RetryBackoff] != "" {
		cfg.RetryBackoff, err = time.ParseDuration(cfgMap[RetryBackoff])
		if err != nil {
			return Source{}, fmt.Errorf("parse %q: %w", RetryBackoff, err)
		}
	}

	err = validate(cfg)
	if err != nil {
		return Source{}, err
	}

	return cfg, nil
}
