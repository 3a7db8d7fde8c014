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

// Package handlers exposes pattern building, variant generation,
// match extension and pattern matching as HTTP actions. The actual
// computation runs in workers; handlers only publish jobs to the
// broker and wait for answers.
package handlers

import (
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"tregram/merror"
	"tregram/rdb"
)

type Actions struct {
	radapter *rdb.Adapter
	maxItems int
}

func errStatus(err error) int {
	switch err.(type) {
	case merror.DuplicateTokensError, merror.TokensNotFullyConnectedError:
		return http.StatusUnprocessableEntity
	case merror.InputError:
		return http.StatusBadRequest
	case merror.TimeoutError:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes an error with a status based on the error
// type; results which lost their error type during serialization
// are classified by the broker's HasUserError flag.
func respondError(ctx *gin.Context, err error, hasUserError bool) {
	status := errStatus(err)
	if status == http.StatusInternalServerError && hasUserError {
		status = http.StatusUnprocessableEntity
	}
	uniresp.RespondWithErrorJSON(ctx, err, status)
}

func NewActions(radapter *rdb.Adapter, maxItems int) *Actions {
	return &Actions{
		radapter: radapter,
		maxItems: maxItems,
	}
}
