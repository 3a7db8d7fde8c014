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

package results

import (
	"encoding/json"
	"time"

	"tregram/pattern"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

const (
	ResultTypePattern             ResultType = "pattern"
	ResultTypePatternVariants     ResultType = "patternVariants"
	ResultTypePatternPermutations ResultType = "patternPermutations"
	ResultTypeMatchExtensions     ResultType = "matchExtensions"
	ResultTypeMatches             ResultType = "matches"
	ResultTypeError               ResultType = "error"
)

// SerializableResult is a worker-produced answer as stored to and
// read back from the result broker.
type SerializableResult interface {
	Type() ResultType
	Err() error
}

// failure carries the error of a failed job. The typed error is
// available only on the producing side; once the result goes through
// the broker, just the message survives.
type failure struct {
	Error string `json:"error,omitempty"`

	typedErr error
}

func (f *failure) SetErr(err error) {
	f.typedErr = err
	if err != nil {
		f.Error = err.Error()
	}
}

func (f *failure) Err() error {
	if f.typedErr != nil {
		return f.typedErr
	}
	if f.Error != "" {
		return DecodedError{Msg: f.Error}
	}
	return nil
}

// ----------------

type PatternResult struct {
	failure
	Pattern *pattern.Pattern `json:"pattern"`
}

func (res *PatternResult) Type() ResultType {
	return ResultTypePattern
}

// ----------------

type PatternVariantsResult struct {
	failure
	Variants []*pattern.Pattern `json:"variants"`

	// Truncated is set when the enumeration was cut
	// by the maxItems limit of the job
	Truncated bool `json:"truncated"`
}

func (res *PatternVariantsResult) Type() ResultType {
	return ResultTypePatternVariants
}

// ----------------

// PatternPermutationsResult mirrors PatternVariantsResult for the
// whole-feature-set variant API.
type PatternPermutationsResult struct {
	failure
	Variants  []*pattern.Pattern `json:"variants"`
	Truncated bool               `json:"truncated"`
}

func (res *PatternPermutationsResult) Type() ResultType {
	return ResultTypePatternPermutations
}

// ----------------

type MatchExtensionsResult struct {
	failure
	Extensions [][]int `json:"extensions"`
	Truncated  bool    `json:"truncated"`
}

func (res *MatchExtensionsResult) Type() ResultType {
	return ResultTypeMatchExtensions
}

// ----------------

type MatchesResult struct {
	failure
	Matches [][]int `json:"matches"`
}

func (res *MatchesResult) Type() ResultType {
	return ResultTypeMatches
}

// ----------------

type ErrorResult struct {
	failure
	Func string `json:"func"`
}

func (res *ErrorResult) Type() ResultType {
	return ResultTypeError
}

// ----------------

// DecodedError stands in for an error which went through
// serialization and lost its original type.
type DecodedError struct {
	Msg string
}

func (err DecodedError) Error() string {
	return err.Msg
}

func (err DecodedError) MarshalJSON() ([]byte, error) {
	return json.Marshal(err.Msg)
}

// ----------------

type JobLog struct {
	WorkerID string    `json:"workerId"`
	Func     string    `json:"func"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	Err      error     `json:"error"`
}

func (jl *JobLog) ToJSON() (string, error) {
	ans, err := json.Marshal(jl)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}
