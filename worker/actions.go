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

package worker

import (
	"tregram/matcher"
	"tregram/pattern"
	"tregram/rdb"
	"tregram/results"
)

const (
	dfltMaxItems = 1000
	hardMaxItems = 100000
)

func normMaxItems(v int) int {
	if v <= 0 {
		return dfltMaxItems
	}
	if v > hardMaxItems {
		return hardMaxItems
	}
	return v
}

func (w *Worker) buildPattern(args rdb.BuildPatternArgs) *results.PatternResult {
	ans, err := pattern.Build(args.Sentence, args.Match, args.Features)
	if err != nil {
		res := new(results.PatternResult)
		res.SetErr(err)
		return res
	}
	return &results.PatternResult{Pattern: ans}
}

func (w *Worker) patternVariants(args rdb.PatternVariantsArgs) *results.PatternVariantsResult {
	seq, err := pattern.NodeLevelVariants(
		args.Sentence, args.Pattern, args.Features, args.MutableTokens)
	if err != nil {
		res := new(results.PatternVariantsResult)
		res.SetErr(err)
		return res
	}
	maxItems := normMaxItems(args.MaxItems)
	ans := &results.PatternVariantsResult{Variants: []*pattern.Pattern{}}
	for variant := range seq {
		if len(ans.Variants) == maxItems {
			ans.Truncated = true
			break
		}
		ans.Variants = append(ans.Variants, variant)
	}
	return ans
}

func (w *Worker) patternPermutations(args rdb.PatternPermutationsArgs) *results.PatternPermutationsResult {
	seq, err := pattern.Permutations(args.Sentence, args.Pattern, args.FeatureSets)
	if err != nil {
		res := new(results.PatternPermutationsResult)
		res.SetErr(err)
		return res
	}
	maxItems := normMaxItems(args.MaxItems)
	ans := &results.PatternPermutationsResult{Variants: []*pattern.Pattern{}}
	for variant := range seq {
		if len(ans.Variants) == maxItems {
			ans.Truncated = true
			break
		}
		ans.Variants = append(ans.Variants, variant)
	}
	return ans
}

func (w *Worker) matchExtensions(args rdb.MatchExtensionsArgs) *results.MatchExtensionsResult {
	seq, err := pattern.Extensions(args.Sentence, args.Match)
	if err != nil {
		res := new(results.MatchExtensionsResult)
		res.SetErr(err)
		return res
	}
	maxItems := normMaxItems(args.MaxItems)
	ans := &results.MatchExtensionsResult{Extensions: [][]int{}}
	for ext := range seq {
		if len(ans.Extensions) == maxItems {
			ans.Truncated = true
			break
		}
		ans.Extensions = append(ans.Extensions, ext)
	}
	return ans
}

func (w *Worker) findMatches(args rdb.FindMatchesArgs) *results.MatchesResult {
	ans := matcher.Find(args.Sentence, args.Pattern)
	if ans == nil {
		ans = [][]int{}
	}
	return &results.MatchesResult{Matches: ans}
}
