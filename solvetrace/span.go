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

// Package solvetrace instruments solve calls with opentracing spans, the
// way the teacher instruments query execution.
package solvetrace

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
)

// StartSolve opens the top-level span for one Solve call.
func StartSolve(ctx context.Context, reqID string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "solver.solve")
	span.SetTag("request_id", reqID)
	return span, ctx
}

// StartInstruction opens a child span for dispatching one instruction.
func StartInstruction(ctx context.Context, op string, dest uint32) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "solver.instruction")
	span.SetTag("op", op)
	span.SetTag("dest", dest)
	return span, ctx
}

// StartAPICall opens a child span for a single WikiAPI primitive call.
func StartAPICall(ctx context.Context, primitive string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "wikiapi."+primitive)
	return span, ctx
}
