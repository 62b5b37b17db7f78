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

// Package config loads the narrow slice of adapter configuration the core
// needs to construct a wikiapi.HTTPClient: the bot's full multi-site
// login/profile system is explicitly out of scope (spec.md non-goals), but
// something has to supply a base URL, user agent and retry budget.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"

	"github.com/pagelistbot/core/wikiapi"
)

// Adapter is one wiki's connection profile.
type Adapter struct {
	// BaseURL is the site's api.php endpoint, e.g.
	// "https://en.wikipedia.org/w/api.php".
	BaseURL string `toml:"base_url"`

	// UserAgent identifies this client to the remote wiki, per its API
	// etiquette policy.
	UserAgent string `toml:"user_agent"`

	// Timeout and MaxRetries accept either a native TOML type or a loosely
	// typed one (e.g. the number of seconds, or retries, as a quoted numeric
	// string), since hand-edited TOML is not always strictly typed;
	// cast.ToXxxE coerces whichever the operator wrote. A duration string
	// such as "30s" is not accepted.
	Timeout    interface{} `toml:"timeout_seconds"`
	MaxRetries interface{} `toml:"max_retries"`

	// Assertion is the default caller-identity tag passed through to
	// every WikiAPI call (spec.md's opaque "assertion", e.g. "bot").
	Assertion string `toml:"assertion"`
}

// File is the root of one TOML configuration file: a named set of adapter
// profiles, so a single config file can describe more than one wiki.
type File struct {
	Adapters map[string]Adapter `toml:"adapter"`
}

// Load parses a TOML config file at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// TimeoutDuration coerces Timeout (seconds, in whatever representation the
// TOML author used) into a time.Duration, defaulting to 30s when unset.
func (a Adapter) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == nil {
		return 30 * time.Second, nil
	}
	secs, err := cast.ToInt64E(a.Timeout)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// RetryBudget coerces MaxRetries, defaulting to 3 when unset.
func (a Adapter) RetryBudget() (int, error) {
	if a.MaxRetries == nil {
		return 3, nil
	}
	return cast.ToIntE(a.MaxRetries)
}

// NewClient builds a wikiapi.HTTPClient wired with a RetryableTransport
// sized from this profile.
func (a Adapter) NewClient() (*wikiapi.HTTPClient, error) {
	timeout, err := a.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	retries, err := a.RetryBudget()
	if err != nil {
		return nil, err
	}

	transport := wikiapi.NewRetryableTransport(a.UserAgent, retries, timeout)
	return wikiapi.NewHTTPClient(a.BaseURL, transport), nil
}
