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

import "fmt"

// A DictionarySource determines where LogMiner resolves object and column
// metadata from while mining redo logs.
type DictionarySource string

const (
	// DictionaryOnline makes LogMiner use the live data dictionary.
	DictionaryOnline DictionarySource = "ONLINE"
	// DictionaryRedoLog makes LogMiner use a dictionary written to the redo logs.
	DictionaryRedoLog DictionarySource = "REDO_LOG"
)

// ParseDictionarySource parses a dictionary source name.
func ParseDictionarySource(name string) (DictionarySource, error) {
	switch DictionarySource(name) {
	case DictionaryOnline:
		return DictionaryOnline, nil
	case DictionaryRedoLog:
		return DictionaryRedoLog, nil
	default:
		return "", fmt.Errorf("unknown dictionary source %q", name)
	}
}

// String returns the configuration name of the dictionary source.
func (d DictionarySource) String() string {
	return string(d)
}
