// Copyright © 2022 Meroxa, Inc.
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

package logminer

import (
	sdk "github.com/conduitio/conduit-connector-sdk"
)

// Specification returns specification of the connector.
func Specification() sdk.Specification {
	return sdk.Specification{
		Name:    "oracle-logminer",
		Summary: "Oracle LogMiner source plugin for Conduit, written in Go.",
		Description: "The connector mines row-level changes out of Oracle redo logs. " +
			"It resolves the configured capture scope and acquires the database " +
			"connection it hands to the log-mining reader.",
		Version: "v0.1.0",
		Author:  "Meroxa, Inc.",
	}
}
