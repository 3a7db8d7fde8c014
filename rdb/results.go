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

package rdb

import (
	"encoding/json"
	"fmt"
	"time"

	"tregram/merror"
	"tregram/results"
)

// WorkerResult is the broker-level envelope of a worker answer.
// Value carries a serialized results.SerializableResult of the
// type announced by ResultType.
type WorkerResult struct {
	ID           string             `json:"id"`
	ResultType   results.ResultType `json:"resultType"`
	Value        json.RawMessage    `json:"value"`
	HasUserError bool               `json:"hasUserError"`
	ProcBegin    time.Time          `json:"procBegin"`
	ProcEnd      time.Time          `json:"procEnd"`
}

func CreateWorkerResult(value results.SerializableResult) (*WorkerResult, error) {
	rawValue, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize worker result: %w", err)
	}
	return &WorkerResult{
		ResultType:   value.Type(),
		Value:        rawValue,
		HasUserError: value.Err() != nil && merror.IsUserError(value.Err()),
	}, nil
}

// AttachError turns the result into an error result; used when the
// broker round-trip itself fails.
func (wr *WorkerResult) AttachError(err error) {
	wr.ResultType = results.ResultTypeError
	var errResult results.ErrorResult
	errResult.SetErr(err)
	wr.Value, _ = json.Marshal(&errResult)
}

func deserializeResult[T results.SerializableResult](w *WorkerResult, expected results.ResultType, value T) (T, error) {
	if w.ResultType == results.ResultTypeError {
		var errResult results.ErrorResult
		if err := json.Unmarshal(w.Value, &errResult); err != nil {
			return value, fmt.Errorf("failed to deserialize error result: %w", err)
		}
		return value, errResult.Err()
	}
	if w.ResultType != expected {
		return value, fmt.Errorf(
			"cannot deserialize %s as %s", w.ResultType, expected)
	}
	if err := json.Unmarshal(w.Value, value); err != nil {
		return value, fmt.Errorf("failed to deserialize %s result: %w", expected, err)
	}
	return value, nil
}

func DeserializePatternResult(w *WorkerResult) (*results.PatternResult, error) {
	return deserializeResult(w, results.ResultTypePattern, &results.PatternResult{})
}

func DeserializePatternVariantsResult(w *WorkerResult) (*results.PatternVariantsResult, error) {
	return deserializeResult(w, results.ResultTypePatternVariants, &results.PatternVariantsResult{})
}

func DeserializePatternPermutationsResult(w *WorkerResult) (*results.PatternPermutationsResult, error) {
	return deserializeResult(w, results.ResultTypePatternPermutations, &results.PatternPermutationsResult{})
}

func DeserializeMatchExtensionsResult(w *WorkerResult) (*results.MatchExtensionsResult, error) {
	return deserializeResult(w, results.ResultTypeMatchExtensions, &results.MatchExtensionsResult{})
}

func DeserializeMatchesResult(w *WorkerResult) (*results.MatchesResult, error) {
	return deserializeResult(w, results.ResultTypeMatches, &results.MatchesResult{})
}
