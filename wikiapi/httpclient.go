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
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/pagelistbot/core/ir"
)

// HTTPClient is the production WikiAPI adapter: it speaks the MediaWiki
// action=query wire protocol over a pluggable Transport. Its own state (the
// namespace table) is read-mostly and guarded by a RWMutex the way the
// teacher's Provider guards its catalog map.
type HTTPClient struct {
	transport Transport
	baseURL   string

	mu         sync.RWMutex
	namespaces map[string]ir.NamespaceID
	talkPairs  map[ir.NamespaceID]ir.NamespaceID
}

// NewHTTPClient builds an adapter against baseURL (a MediaWiki api.php
// endpoint) using transport for the underlying requests. The namespace
// table seeds the conventional core namespaces; SetNamespaces replaces it
// with a site's actual table once known (siteinfo is outside this core's
// scope — callers fetch and install it).
func NewHTTPClient(baseURL string, transport Transport) *HTTPClient {
	c := &HTTPClient{
		transport: transport,
		baseURL:   baseURL,
	}
	c.SetNamespaces(map[string]ir.NamespaceID{
		"Talk":     ir.NSTalk,
		"File":     ir.NSFile,
		"Category": ir.NSCategory,
	})
	return c
}

// SetNamespaces installs a site's namespace-name table, used by ParseTitle.
// Talk-pairing for ToggleTalk is still derived from the conventional
// even/odd rule; sites with non-standard pairings are out of this core's
// scope.
func (c *HTTPClient) SetNamespaces(byName map[string]ir.NamespaceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.namespaces = byName
}

var _ WikiAPI = (*HTTPClient)(nil)

// rawTitleItem mirrors one entry of a query.<list> array, including the
// nested redirlinks the backlinks listing emits for redirect chains.
type rawTitleItem struct {
	Ns         int32           `json:"ns"`
	Title      string          `json:"title"`
	Redirect   json.RawMessage `json:"redirect"`
	Redirlinks []rawTitleItem  `json:"redirlinks"`
}

func flattenTitles(items []rawTitleItem, includeRedirect bool) []ir.Title {
	out := make([]ir.Title, 0, len(items))
	for _, item := range items {
		if item.Redirect != nil {
			out = append(out, flattenTitles(item.Redirlinks, includeRedirect)...)
			if !includeRedirect {
				continue
			}
		}
		text := item.Title
		if item.Ns != int32(ir.NSMain) {
			if i := strings.IndexByte(text, ':'); i >= 0 {
				text = text[i+1:]
			}
		}
		out = append(out, ir.Title{NamespaceID: ir.NamespaceID(item.Ns), Text: text})
	}
	return out
}

type apiErrorBody struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type queryEnvelope struct {
	Error    *apiErrorBody              `json:"error"`
	Continue map[string]string          `json:"continue"`
	Query    map[string]json.RawMessage `json:"query"`
}

// listAll drives pagination to exhaustion and returns the flattened,
// deduplication-free title list for the given query.<listKey> array.
func (c *HTTPClient) listAll(ctx context.Context, params url.Values, listKey string, includeRedirect bool) ([]ir.Title, error) {
	var all []ir.Title
	cont := url.Values{}

	for {
		req := cloneValues(params)
		for k := range cont {
			req.Set(k, cont.Get(k))
		}

		raw, err := c.transport.Do(ctx, c.baseURL, req)
		if err != nil {
			return nil, err
		}

		var env queryEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, errors.Wrap(err, "wikiapi: decoding response")
		}
		if env.Error != nil {
			return nil, ErrAPIFailure.New(env.Error.Code + ": " + env.Error.Info)
		}

		if listRaw, ok := env.Query[listKey]; ok {
			var items []rawTitleItem
			if err := json.Unmarshal(listRaw, &items); err != nil {
				return nil, errors.Wrap(err, "wikiapi: decoding "+listKey)
			}
			all = append(all, flattenTitles(items, includeRedirect)...)
		}

		if len(env.Continue) == 0 {
			return all, nil
		}
		cont = url.Values{}
		for k, v := range env.Continue {
			cont.Set(k, v)
		}
	}
}

func concatNS(ns ir.NamespaceSet) string {
	ids := make([]string, 0, len(ns))
	for id := range ns {
		ids = append(ids, strconv.Itoa(int(id)))
	}
	return strings.Join(ids, "|")
}

func insertAssertion(params url.Values, assertion string) {
	if assertion != "" {
		params.Set("assert", assertion)
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		cp := make([]string, len(vals))
		copy(cp, vals)
		out[k] = cp
	}
	return out
}

// Backlinks implements WikiAPI. When level2 is true the server-side
// namespace filter is skipped (an inter-namespace redirect chain would be
// hidden by it) and ns is instead applied locally after flattening.
func (c *HTTPClient) Backlinks(ctx context.Context, title ir.Title, ns ir.NamespaceSet, level2 bool, redirect ir.RedirectStrategy, assertion string) (ir.TitleSet, error) {
	params := url.Values{
		"utf8":          {"1"},
		"action":        {"query"},
		"list":          {"backlinks"},
		"bltitle":       {c.fullPretty(title)},
		"bllimit":       {"max"},
		"blfilterredir": {wireRedirect(redirect)},
	}
	insertAssertion(params, assertion)

	if level2 {
		params.Set("blredirect", "1")
	} else if ns != nil {
		params.Set("blnamespace", concatNS(ns))
	}

	includeRedirect := redirect != ir.RedirectNone
	titles, err := c.listAll(ctx, params, "backlinks", includeRedirect)
	if err != nil {
		return nil, err
	}

	out := ir.TitleSet{}
	for _, t := range titles {
		if level2 && ns != nil && !ns.Contains(t.NamespaceID) {
			continue
		}
		out[t] = struct{}{}
	}
	return out, nil
}

// CategoryMembers implements WikiAPI: a breadth-first traversal of the
// category graph with miser-mode cmtype derivation, per spec.md §4.4.
func (c *HTTPClient) CategoryMembers(ctx context.Context, title ir.Title, ns ir.NamespaceSet, depth ir.DepthNum, assertion string) (ir.TitleSet, error) {
	wantCategory := ns == nil
	wantFile := ns == nil
	var nsRest ir.NamespaceSet
	if ns != nil {
		nsRest = ns.Clone()
		wantCategory = nsRest.Remove(ir.NSCategory)
		wantFile = nsRest.Remove(ir.NSFile)
	}

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

		if cur.title.NamespaceID != ir.NSCategory {
			return nil, ErrNotCategory.New(cur.title)
		}

		canDescend := depth.Unbounded() || cur.level < depth

		var cmtype []string
		cmnamespace := ir.NewNamespaceSet()
		if ns == nil || len(nsRest) > 0 {
			cmtype = append(cmtype, "page")
			for id := range nsRest {
				cmnamespace[id] = struct{}{}
			}
		}
		if wantFile {
			cmtype = append(cmtype, "file")
			cmnamespace[ir.NSFile] = struct{}{}
		}
		if wantCategory || canDescend {
			cmtype = append(cmtype, "subcat")
			cmnamespace[ir.NSCategory] = struct{}{}
		}

		params := url.Values{
			"utf8":        {"1"},
			"action":      {"query"},
			"list":        {"categorymembers"},
			"cmtitle":     {c.fullPretty(cur.title)},
			"cmlimit":     {"max"},
			"cmtype":      {strings.Join(cmtype, "|")},
		}
		if ns != nil {
			params.Set("cmnamespace", concatNS(cmnamespace))
		}
		insertAssertion(params, assertion)

		members, err := c.listAll(ctx, params, "categorymembers", true)
		if err != nil {
			return nil, err
		}

		for _, m := range members {
			if m.NamespaceID == ir.NSCategory {
				if canDescend {
					if _, ok := visited[m]; !ok {
						visited[m] = struct{}{}
						queue = append(queue, queued{m, cur.level + 1})
					}
				}
				if wantCategory {
					result[m] = struct{}{}
				}
				continue
			}
			result[m] = struct{}{}
		}
	}

	return result, nil
}

// PrefixIndex implements WikiAPI.
func (c *HTTPClient) PrefixIndex(ctx context.Context, title ir.Title, ns ir.NamespaceSet, redirect ir.RedirectStrategy, assertion string) (ir.TitleSet, error) {
	if ns != nil && !ns.Contains(title.NamespaceID) {
		return ir.TitleSet{}, nil
	}

	params := url.Values{
		"utf8":          {"1"},
		"action":        {"query"},
		"list":          {"allpages"},
		"apprefix":      {title.Text},
		"apnamespace":   {strconv.Itoa(int(title.NamespaceID))},
		"aplimit":       {"max"},
		"apfilterredir": {wireRedirect(redirect)},
	}
	insertAssertion(params, assertion)

	titles, err := c.listAll(ctx, params, "allpages", true)
	if err != nil {
		return nil, err
	}
	return ir.NewTitleSet(titles...), nil
}

// EmbeddedIn implements WikiAPI.
func (c *HTTPClient) EmbeddedIn(ctx context.Context, title ir.Title, ns ir.NamespaceSet, redirect ir.RedirectStrategy, assertion string) (ir.TitleSet, error) {
	params := url.Values{
		"utf8":          {"1"},
		"action":        {"query"},
		"list":          {"embeddedin"},
		"eititle":       {c.fullPretty(title)},
		"eilimit":       {"max"},
		"eifilterredir": {wireRedirect(redirect)},
	}
	insertAssertion(params, assertion)
	if ns != nil {
		params.Set("einamespace", concatNS(ns))
	}

	titles, err := c.listAll(ctx, params, "embeddedin", true)
	if err != nil {
		return nil, err
	}
	return ir.NewTitleSet(titles...), nil
}

// ParseTitle implements WikiAPI against the installed namespace table.
func (c *HTTPClient) ParseTitle(text string) (ir.Title, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := strings.IndexByte(text, ':'); i > 0 {
		if id, ok := c.namespaces[text[:i]]; ok {
			return ir.Title{NamespaceID: id, Text: text[i+1:]}, nil
		}
	}
	return ir.Title{NamespaceID: ir.NSMain, Text: text}, nil
}

// ToggleTalk implements WikiAPI via the conventional even/odd pairing.
func (c *HTTPClient) ToggleTalk(t ir.Title) ir.Title {
	return t.ToggleTalk()
}

// fullPretty renders a title as the wiki's full "Namespace:Text" wire form.
// An empty namespace-name lookup (a namespace id with no configured name)
// falls back to the bare text, mirroring the original adapter's
// full_pretty returning None for an unresolvable namespace.
func (c *HTTPClient) fullPretty(t ir.Title) string {
	if t.NamespaceID == ir.NSMain {
		return t.Text
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, id := range c.namespaces {
		if id == t.NamespaceID {
			return fmt.Sprintf("%s:%s", name, t.Text)
		}
	}
	return t.Text
}

func wireRedirect(r ir.RedirectStrategy) string {
	switch r {
	case ir.RedirectNone:
		return "nonredirects"
	case ir.RedirectOnly:
		return "redirects"
	default:
		return "all"
	}
}
