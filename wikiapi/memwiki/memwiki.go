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

// Package memwiki is an in-memory wikiapi.WikiAPI used purely for test
// determinism, the way the teacher's memory/mem packages stand in for a
// real storage engine in tests.
package memwiki

import (
	"context"
	"strings"

	"github.com/pagelistbot/core/ir"
	"github.com/pagelistbot/core/wikiapi"
)

// Wiki is a small, fully in-memory fixture: a fixed backlink graph, category
// tree and page list, queried the same way a real wiki would be.
//
// Its data fields are named distinctly from the WikiAPI methods they back
// (BacklinksOf vs. Backlinks, etc.) since Go does not allow a method and a
// field of the same name on one type.
type Wiki struct {
	BacklinksOf map[ir.Title][]ir.Title
	// CategoryTree maps a category title to its direct members (which may
	// themselves be Category-namespace titles, forming the tree/graph
	// CategoryMembers descends).
	CategoryTree map[ir.Title][]ir.Title
	// Pages lists every known page, used to satisfy PrefixIndex.
	Pages []ir.Title
	// TransclusionsOf maps a template title to the pages that transclude it.
	TransclusionsOf map[ir.Title][]ir.Title

	// Calls records every primitive invocation, for assertions like
	// "zero API calls were made".
	Calls []string
}

var _ wikiapi.WikiAPI = (*Wiki)(nil)

// New returns an empty fixture.
func New() *Wiki {
	return &Wiki{
		BacklinksOf:     map[ir.Title][]ir.Title{},
		CategoryTree:    map[ir.Title][]ir.Title{},
		TransclusionsOf: map[ir.Title][]ir.Title{},
	}
}

func (w *Wiki) filtered(titles []ir.Title, ns ir.NamespaceSet) ir.TitleSet {
	out := ir.TitleSet{}
	for _, t := range titles {
		if ns != nil && !ns.Contains(t.NamespaceID) {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// Backlinks implements wikiapi.WikiAPI.
func (w *Wiki) Backlinks(_ context.Context, title ir.Title, ns ir.NamespaceSet, _ bool, _ ir.RedirectStrategy, _ string) (ir.TitleSet, error) {
	w.Calls = append(w.Calls, "backlinks:"+title.Text)
	return w.filtered(w.BacklinksOf[title], ns), nil
}

// CategoryMembers implements wikiapi.WikiAPI, descending the fixture's
// category tree breadth-first with cycle protection, mirroring the
// production adapter's traversal.
func (w *Wiki) CategoryMembers(_ context.Context, title ir.Title, ns ir.NamespaceSet, depth ir.DepthNum, _ string) (ir.TitleSet, error) {
	if title.NamespaceID != ir.NSCategory {
		return nil, wikiapi.ErrNotCategory.New(title)
	}

	wantCategory := ns == nil || ns.Contains(ir.NSCategory)

	type queued struct {
		title ir.Title
		level ir.DepthNum
	}
	visited := ir.NewTitleSet(title)
	queue := []queued{{title, 0}}
	result := ir.TitleSet{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		w.Calls = append(w.Calls, "categorymembers:"+cur.title.Text)

		for _, member := range w.CategoryTree[cur.title] {
			if member.NamespaceID == ir.NSCategory {
				if depth.Unbounded() || cur.level < depth {
					if _, ok := visited[member]; !ok {
						visited[member] = struct{}{}
						queue = append(queue, queued{member, cur.level + 1})
					}
				}
				if wantCategory {
					result[member] = struct{}{}
				}
				continue
			}
			if ns == nil || ns.Contains(member.NamespaceID) {
				result[member] = struct{}{}
			}
		}
	}

	return result, nil
}

// PrefixIndex implements wikiapi.WikiAPI.
func (w *Wiki) PrefixIndex(_ context.Context, title ir.Title, ns ir.NamespaceSet, _ ir.RedirectStrategy, _ string) (ir.TitleSet, error) {
	if ns != nil && !ns.Contains(title.NamespaceID) {
		return ir.TitleSet{}, nil
	}
	w.Calls = append(w.Calls, "prefixindex:"+title.Text)

	out := ir.TitleSet{}
	for _, p := range w.Pages {
		if p.NamespaceID == title.NamespaceID && strings.HasPrefix(p.Text, title.Text) {
			out[p] = struct{}{}
		}
	}
	return out, nil
}

// EmbeddedIn implements wikiapi.WikiAPI.
func (w *Wiki) EmbeddedIn(_ context.Context, title ir.Title, ns ir.NamespaceSet, _ ir.RedirectStrategy, _ string) (ir.TitleSet, error) {
	w.Calls = append(w.Calls, "embeddedin:"+title.Text)
	return w.filtered(w.TransclusionsOf[title], ns), nil
}

// ParseTitle implements wikiapi.WikiAPI using a ":"-separated
// "Namespace:Text" convention resolved against a fixed, conventional
// MediaWiki namespace name table; unprefixed text is NSMain.
func (w *Wiki) ParseTitle(text string) (ir.Title, error) {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		if ns, ok := namespaceByName[text[:i]]; ok {
			return ir.Title{NamespaceID: ns, Text: text[i+1:]}, nil
		}
	}
	return ir.Title{NamespaceID: ir.NSMain, Text: text}, nil
}

// ToggleTalk implements wikiapi.WikiAPI via the conventional even/odd
// namespace pairing.
func (w *Wiki) ToggleTalk(t ir.Title) ir.Title {
	return t.ToggleTalk()
}

var namespaceByName = map[string]ir.NamespaceID{
	"Talk":     ir.NSTalk,
	"File":     ir.NSFile,
	"Category": ir.NSCategory,
}
