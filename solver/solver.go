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

// Package solver executes an optimized (or raw) ir.Query against a
// wikiapi.WikiAPI collaborator and produces a concrete set of titles.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pagelistbot/core/internal/reqid"
	"github.com/pagelistbot/core/ir"
	"github.com/pagelistbot/core/solvetrace"
	"github.com/pagelistbot/core/wikiapi"
)

// Options configures one Solve call. A nil *Options (or a zero-value one)
// is valid; Logger defaults to logrus' standard logger.
type Options struct {
	// Logger receives one Debug entry per instruction dispatched and one
	// Info entry per WikiAPI call made, tagged with a request id.
	Logger *logrus.Logger
}

func (o *Options) logger() *logrus.Logger {
	if o == nil || o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Solve interprets q's instructions in order, maintaining a register file of
// ir.RegID -> ir.TitleSet, and returns the set registered at q.Result.
// assertion is an opaque caller-identity tag (e.g. "bot", "user") passed
// through to every WikiAPI call.
//
// Solve aborts on the first error: no error is swallowed and no partial
// result is ever returned. It is cancellable at any WikiAPI call boundary
// via ctx.
func Solve(ctx context.Context, q ir.Query, api wikiapi.WikiAPI, assertion string, opts *Options) (ir.TitleSet, error) {
	id := reqid.New()
	log := opts.logger().WithFields(logrus.Fields{"request_id": id})

	span, ctx := solvetrace.StartSolve(ctx, id)
	defer span.Finish()

	reg := make(map[ir.RegID]ir.TitleSet, len(q.Instructions))

	for _, inst := range q.Instructions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		result, err := dispatch(ctx, inst, reg, api, assertion, log)
		if err != nil {
			return nil, err
		}
		reg[inst.DestReg()] = result

		log.WithFields(logrus.Fields{
			"dest":     inst.DestReg(),
			"size":     len(result),
			"duration": time.Since(start),
		}).Debug("instruction dispatched")
	}

	out, ok := reg[q.Result]
	if !ok {
		return nil, ErrMissingRegister.New(q.Result)
	}
	return out, nil
}

func dispatch(ctx context.Context, inst ir.Instruction, reg map[ir.RegID]ir.TitleSet, api wikiapi.WikiAPI, assertion string, log *logrus.Entry) (ir.TitleSet, error) {
	span, ctx := solvetrace.StartInstruction(ctx, opName(inst), uint32(inst.DestReg()))
	defer span.Finish()

	switch v := inst.(type) {
	case ir.Set:
		return evalSet(v, api)
	case ir.And:
		a, b, err := getSet2(reg, v.Op1, v.Op2)
		if err != nil {
			return nil, err
		}
		return a.Intersect(b), nil
	case ir.Or:
		a, b, err := getSet2(reg, v.Op1, v.Op2)
		if err != nil {
			return nil, err
		}
		return a.Union(b), nil
	case ir.Exclude:
		a, b, err := getSet2(reg, v.Op1, v.Op2)
		if err != nil {
			return nil, err
		}
		return a.Difference(b), nil
	case ir.Xor:
		a, b, err := getSet2(reg, v.Op1, v.Op2)
		if err != nil {
			return nil, err
		}
		return a.SymmetricDifference(b), nil
	case ir.LinkTo:
		return evalLinkTo(ctx, v, reg, api, assertion, log)
	case ir.InCat:
		return evalInCat(ctx, v, reg, api, assertion, log)
	case ir.Prefix:
		return evalPrefix(ctx, v, reg, api, assertion, log)
	case ir.Toggle:
		set, err := getSet1(reg, v.Op)
		if err != nil {
			return nil, err
		}
		out := make(ir.TitleSet, len(set))
		for t := range set {
			out[api.ToggleTalk(t)] = struct{}{}
		}
		return out, nil
	case ir.Nop:
		set, err := getSet1(reg, v.Op)
		if err != nil {
			return nil, err
		}
		return set.Clone(), nil
	default:
		return nil, fmt.Errorf("solver: unhandled instruction type %T", inst)
	}
}

// evalSet constructs Titles from the literal strings via the WikiAPI's
// title parser, then drops any whose namespace is not in cs.ns (when
// constrained). Instructions carry raw text rather than pre-parsed titles
// because the lowerer runs before any wiki connection exists to resolve
// namespace-prefix text against a namespace table.
func evalSet(s ir.Set, api wikiapi.WikiAPI) (ir.TitleSet, error) {
	out := make(ir.TitleSet, len(s.Titles))
	for _, raw := range s.Titles {
		t, err := api.ParseTitle(raw)
		if err != nil {
			return nil, ErrTransport.New(err.Error())
		}
		if s.CS.NS != nil && !s.CS.NS.Contains(t.NamespaceID) {
			continue
		}
		out[t] = struct{}{}
	}
	return out, nil
}

func evalLinkTo(ctx context.Context, v ir.LinkTo, reg map[ir.RegID]ir.TitleSet, api wikiapi.WikiAPI, assertion string, log *logrus.Entry) (ir.TitleSet, error) {
	set, err := getSet1(reg, v.Op)
	if err != nil {
		return nil, err
	}
	title, empty, err := singleSource(v, set)
	if err != nil {
		return nil, err
	}
	if empty {
		return ir.TitleSet{}, nil
	}

	span, ctx := solvetrace.StartAPICall(ctx, "backlinks")
	defer span.Finish()

	result, err := api.Backlinks(ctx, title, v.CS.NS, true, ir.RedirectAll, assertion)
	if err != nil {
		return nil, ErrTransport.New(err.Error())
	}
	log.WithFields(logrus.Fields{"primitive": "backlinks", "title": title, "size": len(result)}).Info("wiki API call")
	return result, nil
}

func evalInCat(ctx context.Context, v ir.InCat, reg map[ir.RegID]ir.TitleSet, api wikiapi.WikiAPI, assertion string, log *logrus.Entry) (ir.TitleSet, error) {
	set, err := getSet1(reg, v.Op)
	if err != nil {
		return nil, err
	}
	title, empty, err := singleSource(v, set)
	if err != nil {
		return nil, err
	}
	if empty {
		return ir.TitleSet{}, nil
	}

	depth := ir.DepthNum(0)
	if v.CS.Depth != nil {
		depth = *v.CS.Depth
	}

	span, ctx := solvetrace.StartAPICall(ctx, "category_members")
	defer span.Finish()

	result, err := api.CategoryMembers(ctx, title, v.CS.NS, depth, assertion)
	if err != nil {
		return nil, ErrTransport.New(err.Error())
	}
	log.WithFields(logrus.Fields{"primitive": "category_members", "title": title, "size": len(result)}).Info("wiki API call")
	return result, nil
}

func evalPrefix(ctx context.Context, v ir.Prefix, reg map[ir.RegID]ir.TitleSet, api wikiapi.WikiAPI, assertion string, log *logrus.Entry) (ir.TitleSet, error) {
	set, err := getSet1(reg, v.Op)
	if err != nil {
		return nil, err
	}
	title, empty, err := singleSource(v, set)
	if err != nil {
		return nil, err
	}
	if empty {
		return ir.TitleSet{}, nil
	}

	span, ctx := solvetrace.StartAPICall(ctx, "prefix_index")
	defer span.Finish()

	result, err := api.PrefixIndex(ctx, title, v.CS.NS, ir.RedirectAll, assertion)
	if err != nil {
		return nil, ErrTransport.New(err.Error())
	}
	log.WithFields(logrus.Fields{"primitive": "prefix_index", "title": title, "size": len(result)}).Info("wiki API call")
	return result, nil
}

// singleSource enforces the single-source restriction shared by
// LinkTo/InCat/Prefix: these operators are identity-based and the remote
// API accepts one title per request. An empty operand set short-circuits to
// an empty result with no API call; two or more is a QueryForMultiplePages
// error, also with no API call.
func singleSource(inst ir.Instruction, set ir.TitleSet) (title ir.Title, empty bool, err error) {
	switch len(set) {
	case 0:
		return ir.Title{}, true, nil
	case 1:
		for t := range set {
			return t, false, nil
		}
	}
	return ir.Title{}, false, ErrQueryForMultiplePages.New(inst, len(set))
}

func getSet1(reg map[ir.RegID]ir.TitleSet, op ir.RegID) (ir.TitleSet, error) {
	set, ok := reg[op]
	if !ok {
		return nil, ErrMissingRegister.New(op)
	}
	return set, nil
}

func getSet2(reg map[ir.RegID]ir.TitleSet, op1, op2 ir.RegID) (ir.TitleSet, ir.TitleSet, error) {
	a, err := getSet1(reg, op1)
	if err != nil {
		return nil, nil, err
	}
	b, err := getSet1(reg, op2)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func opName(inst ir.Instruction) string {
	switch inst.(type) {
	case ir.Set:
		return "Set"
	case ir.And:
		return "And"
	case ir.Or:
		return "Or"
	case ir.Exclude:
		return "Exclude"
	case ir.Xor:
		return "Xor"
	case ir.LinkTo:
		return "LinkTo"
	case ir.InCat:
		return "InCat"
	case ir.Prefix:
		return "Prefix"
	case ir.Toggle:
		return "Toggle"
	case ir.Nop:
		return "Nop"
	default:
		return "Unknown"
	}
}
