// Copyright 2020-2021 Dolthub, Inc.
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

// Package reqid tags one solve call with a correlation id, the way the
// teacher threads a connection/process id through session logging.
package reqid

import uuid "github.com/satori/go.uuid"

// New returns a fresh request correlation id.
func New() string {
	return uuid.NewV4().String()
}
