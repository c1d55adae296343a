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

// Package scope resolves a user-supplied whitelist string into the typed
// capture targets the log-mining reader works with.
package scope

import (
	"fmt"
	"strings"
)

// A Target identifies a single capture scope entry, either a schema-qualified
// table or a whole schema. The two implementations are TableTarget and
// SchemaTarget; no other implementations exist, so readers may switch over
// both exhaustively.
type Target interface {
	fmt.Stringer

	target()
}

// A TableTarget puts an exact schema-qualified table in scope.
type TableTarget struct {
	Owner string
	Table string
}

// A SchemaTarget puts every table under a schema in scope.
type SchemaTarget struct {
	Owner string
}

func (TableTarget) target()  {}
func (SchemaTarget) target() {}

// String returns the OWNER.TABLE form of the target.
func (t TableTarget) String() string {
	return t.Owner + "." + t.Table
}

// String returns the owner of the target.
func (t SchemaTarget) String() string {
	return t.Owner
}

// Resolve parses a comma-separated whitelist into an ordered sequence of
// capture targets. A segment containing a dot becomes a TableTarget built
// from its first two dot-delimited components, any other segment becomes a
// SchemaTarget. Segments keep their input order, duplicates are kept, and
// identifier case is left untouched — identifiers are case-sensitive and must
// match the case stored in the database. Resolve performs no validation;
// callers must ensure the whitelist is non-empty before resolving it.
func Resolve(whitelist string) []Target {
	segments := strings.Split(whitelist, ",")

	targets := make([]Target, 0, len(segments))
	for i := range segments {
		parts := strings.Split(strings.TrimSpace(segments[i]), ".")
		if len(parts) > 1 {
			targets = append(targets, TableTarget{Owner: parts[0], Table: parts[1]})

			continue
		}

		targets = append(targets, SchemaTarget{Owner: parts[0]})
	}

	return targets
}
