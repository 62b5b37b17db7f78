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

// Package wikiapi is the solver's collaborator contract for talking to a
// remote wiki's query API, plus a production HTTP adapter implementing it.
package wikiapi

import (
	"context"

	"github.com/pagelistbot/core/ir"
)

// WikiAPI is the port the solver consults for every page-relation
// operator. Implementations are expected to serialize their own transport
// access if shared across concurrent solves — the solver takes no lock of
// its own.
type WikiAPI interface {
	// Backlinks returns the pages that link to title, optionally including
	// pages that link through a redirect to title (level2).
	Backlinks(ctx context.Context, title ir.Title, ns ir.NamespaceSet, level2 bool, redirect ir.RedirectStrategy, assertion string) (ir.TitleSet, error)

	// CategoryMembers returns the members of the category named by title,
	// descending transitively to depth (negative = unbounded).
	CategoryMembers(ctx context.Context, title ir.Title, ns ir.NamespaceSet, depth ir.DepthNum, assertion string) (ir.TitleSet, error)

	// PrefixIndex returns the pages whose title begins with title's text,
	// within title's namespace.
	PrefixIndex(ctx context.Context, title ir.Title, ns ir.NamespaceSet, redirect ir.RedirectStrategy, assertion string) (ir.TitleSet, error)

	// EmbeddedIn returns the pages that transclude title.
	EmbeddedIn(ctx context.Context, title ir.Title, ns ir.NamespaceSet, redirect ir.RedirectStrategy, assertion string) (ir.TitleSet, error)

	// ParseTitle parses a textual title (e.g. "Category:Foo" or "Talk:Bar")
	// into an ir.Title using the wiki's namespace table.
	ParseTitle(text string) (ir.Title, error)

	// ToggleTalk maps a title between its subject and talk namespace. Most
	// adapters can delegate straight to ir.Title.ToggleTalk; it is part of
	// the port so an adapter can consult a wiki's actual namespace table
	// instead of assuming the conventional even/odd pairing.
	ToggleTalk(t ir.Title) ir.Title
}
