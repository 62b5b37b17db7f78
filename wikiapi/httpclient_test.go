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

package wikiapi_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelistbot/core/ir"
	"github.com/pagelistbot/core/wikiapi"
)

// fakeTransport replays one canned JSON body per call, tracking the params
// each call was issued with.
type fakeTransport struct {
	responses [][]byte
	calls     []url.Values
}

func (f *fakeTransport) Do(_ context.Context, _ string, params url.Values) (json.RawMessage, error) {
	f.calls = append(f.calls, params)
	i := len(f.calls) - 1
	if i >= len(f.responses) {
		return json.RawMessage(`{"query":{}}`), nil
	}
	return json.RawMessage(f.responses[i]), nil
}

// backlinksNestedRedirectFixture mirrors the nested redirlinks shape from
// the original adapter's own test: one direct backlink, one redirect with
// a nested backlink through it.
const backlinksNestedRedirectFixture = `{
	"batchcomplete": "",
	"query": {
		"backlinks": [
			{"pageid": 1, "ns": 4, "title": "Wikipedia:Direct"},
			{
				"pageid": 2, "ns": 4, "title": "Wikipedia:KAGE", "redirect": "",
				"redirlinks": [
					{"pageid": 3, "ns": 4, "title": "Wikipedia:ThroughRedirect"}
				]
			}
		]
	}
}`

func TestBacklinksFlattensNestedRedirectsAndKeepsRedirectByDefault(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{[]byte(backlinksNestedRedirectFixture)}}
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", ft)

	result, err := c.Backlinks(context.Background(), ir.Title{NamespaceID: ir.NSMain, Text: "Target"}, nil, false, ir.RedirectAll, "")
	require.NoError(t, err)

	assert.Len(t, result, 3)
	assert.Contains(t, result, ir.Title{NamespaceID: 4, Text: "Direct"})
	assert.Contains(t, result, ir.Title{NamespaceID: 4, Text: "KAGE"})
	assert.Contains(t, result, ir.Title{NamespaceID: 4, Text: "ThroughRedirect"})
}

func TestBacklinksDropsRedirectItselfWhenRedirectStrategyExcludesIt(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{[]byte(backlinksNestedRedirectFixture)}}
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", ft)

	result, err := c.Backlinks(context.Background(), ir.Title{NamespaceID: ir.NSMain, Text: "Target"}, nil, false, ir.RedirectNone, "")
	require.NoError(t, err)

	assert.Len(t, result, 2)
	assert.NotContains(t, result, ir.Title{NamespaceID: 4, Text: "KAGE"})
}

func TestBacklinksLevel2SkipsServerNamespaceFilterAndFiltersLocally(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{[]byte(backlinksNestedRedirectFixture)}}
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", ft)

	ns := ir.NewNamespaceSet(4)
	result, err := c.Backlinks(context.Background(), ir.Title{NamespaceID: ir.NSMain, Text: "Target"}, ns, true, ir.RedirectAll, "")
	require.NoError(t, err)

	require.Len(t, ft.calls, 1)
	assert.Empty(t, ft.calls[0].Get("blnamespace"))
	assert.Equal(t, "1", ft.calls[0].Get("blredirect"))
	assert.Len(t, result, 3)
}

func TestPrefixIndexShortCircuitsOnNamespaceMismatch(t *testing.T) {
	ft := &fakeTransport{}
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", ft)

	ns := ir.NewNamespaceSet(ir.NSTalk)
	result, err := c.PrefixIndex(context.Background(), ir.Title{NamespaceID: ir.NSMain, Text: "Foo"}, ns, ir.RedirectAll, "")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Empty(t, ft.calls)
}

func TestCategoryMembersRequestsMiserModeCmtypes(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{
		[]byte(`{"query":{"categorymembers":[{"ns":6,"title":"File:A.png"}]}}`),
	}}
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", ft)

	ns := ir.NewNamespaceSet(ir.NSFile)
	result, err := c.CategoryMembers(context.Background(), ir.Title{NamespaceID: ir.NSCategory, Text: "Root"}, ns, 0, "")
	require.NoError(t, err)

	require.Len(t, ft.calls, 1)
	assert.Equal(t, "file", ft.calls[0].Get("cmtype"))
	assert.Equal(t, ir.NewTitleSet(ir.Title{NamespaceID: ir.NSFile, Text: "A.png"}), result)
}

func TestCategoryMembersNotCategoryError(t *testing.T) {
	ft := &fakeTransport{}
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", ft)

	// ParseTitle-level corruption is not reachable through the solver's
	// single-source guard, but CategoryMembers must still defend itself.
	_, err := c.CategoryMembers(context.Background(), ir.Title{NamespaceID: ir.NSMain, Text: "NotACategory"}, nil, 0, "")
	require.Error(t, err)
	assert.True(t, wikiapi.ErrNotCategory.Is(err))
}

func TestParseTitleUsesNamespaceTable(t *testing.T) {
	c := wikiapi.NewHTTPClient("https://example.wiki/w/api.php", &fakeTransport{})

	title, err := c.ParseTitle("Category:Foo")
	require.NoError(t, err)
	assert.Equal(t, ir.Title{NamespaceID: ir.NSCategory, Text: "Foo"}, title)

	title, err = c.ParseTitle("Foo")
	require.NoError(t, err)
	assert.Equal(t, ir.Title{NamespaceID: ir.NSMain, Text: "Foo"}, title)
}
