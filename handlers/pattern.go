// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"tregram/merror"
	"tregram/rdb"
)

// BuildPattern derives a dependency pattern from a parsed sentence
// and a set of match token indices posted in the request body.
func (a *Actions) BuildPattern(ctx *gin.Context) {
	var args rdb.BuildPatternArgs
	if err := ctx.ShouldBindJSON(&args); err != nil {
		uniresp.RespondWithErrorJSON(
			ctx, merror.InputError{Msg: err.Error()}, http.StatusBadRequest)
		return
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	wait, err := a.radapter.PublishQuery(rdb.Query{
		Func: "buildPattern",
		Args: rawArgs,
	})
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	rawResult := <-wait
	result, err := rdb.DeserializePatternResult(rawResult)
	if err != nil {
		respondError(ctx, err, rawResult.HasUserError)
		return
	}
	if err := result.Err(); err != nil {
		respondError(ctx, err, rawResult.HasUserError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// PatternVariants enumerates node-level feature variants of a
// previously built pattern.
func (a *Actions) PatternVariants(ctx *gin.Context) {
	var args rdb.PatternVariantsArgs
	if err := ctx.ShouldBindJSON(&args); err != nil {
		uniresp.RespondWithErrorJSON(
			ctx, merror.InputError{Msg: err.Error()}, http.StatusBadRequest)
		return
	}
	if args.MaxItems <= 0 || args.MaxItems > a.maxItems {
		args.MaxItems = a.maxItems
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	wait, err := a.radapter.PublishQuery(rdb.Query{
		Func: "patternVariants",
		Args: rawArgs,
	})
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	rawResult := <-wait
	result, err := rdb.DeserializePatternVariantsResult(rawResult)
	if err != nil {
		respondError(ctx, err, rawResult.HasUserError)
		return
	}
	if err := result.Err(); err != nil {
		respondError(ctx, err, rawResult.HasUserError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// PatternPermutations enumerates variants driven by whole
// feature-key sets (see pattern.Permutations).
func (a *Actions) PatternPermutations(ctx *gin.Context) {
	var args rdb.PatternPermutationsArgs
	if err := ctx.ShouldBindJSON(&args); err != nil {
		uniresp.RespondWithErrorJSON(
			ctx, merror.InputError{Msg: err.Error()}, http.StatusBadRequest)
		return
	}
	if args.MaxItems <= 0 || args.MaxItems > a.maxItems {
		args.MaxItems = a.maxItems
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	wait, err := a.radapter.PublishQuery(rdb.Query{
		Func: "patternPermutations",
		Args: rawArgs,
	})
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	rawResult := <-wait
	result, err := rdb.DeserializePatternPermutationsResult(rawResult)
	if err != nil {
		respondError(ctx, err, rawResult.HasUserError)
		return
	}
	if err := result.Err(); err != nil {
		respondError(ctx, err, rawResult.HasUserError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}
