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

package wikiapi

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrNotCategory is raised by CategoryMembers when a node dequeued from the
// traversal queue is not in the Category namespace. A well-formed category
// tree never triggers this; it guards against a corrupt subcategory link.
var ErrNotCategory = errors.NewKind("category_members: %v is not in the category namespace")

// ErrAPIFailure wraps an error reported by the remote query API itself
// (action=query response with an "error" member), as opposed to a
// transport-level failure.
var ErrAPIFailure = errors.NewKind("wiki API reported an error: %s")
