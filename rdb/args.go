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
	"tregram/deptree"
	"tregram/pattern"
)

// BuildPatternArgs carries a job deriving a dependency pattern
// from one concrete match within a parsed sentence.
type BuildPatternArgs struct {
	Sentence *deptree.Sentence   `json:"sentence"`
	Match    []int               `json:"match"`
	Features pattern.FeatureSpec `json:"features"`
}

type PatternVariantsArgs struct {
	Sentence *deptree.Sentence     `json:"sentence"`
	Pattern  *pattern.Pattern      `json:"pattern"`
	Features []pattern.FeatureSpec `json:"features"`

	// MutableTokens restricts which pattern nodes may vary;
	// nil means all of them
	MutableTokens []int `json:"mutableTokens"`
	MaxItems      int   `json:"maxItems"`
}

type PatternPermutationsArgs struct {
	Sentence    *deptree.Sentence `json:"sentence"`
	Pattern     *pattern.Pattern  `json:"pattern"`
	FeatureSets [][]string        `json:"featureSets"`
	MaxItems    int               `json:"maxItems"`
}

type MatchExtensionsArgs struct {
	Sentence *deptree.Sentence `json:"sentence"`
	Match    []int             `json:"match"`
	MaxItems int               `json:"maxItems"`
}

type FindMatchesArgs struct {
	Sentence *deptree.Sentence `json:"sentence"`
	Pattern  *pattern.Pattern  `json:"pattern"`
}
