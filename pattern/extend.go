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

package pattern

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"tregram/deptree"
)

func matchKey(match []int) string {
	var sb strings.Builder
	for _, idx := range match {
		fmt.Fprintf(&sb, "%d,", idx)
	}
	return sb.String()
}

// frontier returns tokens structurally adjacent to the match but
// not part of it, in ascending index order.
func frontier(sent *deptree.Sentence, match []int) []int {
	inMatch := make(map[int]bool, len(match))
	for _, idx := range match {
		inMatch[idx] = true
	}
	seen := make(map[int]bool)
	var ans []int
	for _, idx := range match {
		for _, adj := range sent.Neighbours(idx) {
			if !inMatch[adj] && !seen[adj] {
				seen[adj] = true
				ans = append(ans, adj)
			}
		}
	}
	sort.Ints(ans)
	return ans
}

// Extensions enumerates every strictly larger connected match
// obtainable by repeatedly attaching frontier tokens to the
// original match, up to the full connected component. Matches are
// yielded as sorted index slices, in increasing size and within a
// size in frontier-index order, and the same token set is never
// yielded twice regardless of the growth order it was reached by.
// The visited set lives only for one call; the sequence is
// restartable.
func Extensions(sent *deptree.Sentence, match []int) (iter.Seq[[]int], error) {
	if err := Validate(sent, match); err != nil {
		return nil, err
	}
	base := make([]int, len(match))
	copy(base, match)
	sort.Ints(base)
	return func(yield func([]int) bool) {
		seen := map[string]bool{matchKey(base): true}
		level := [][]int{base}
		for len(level) > 0 {
			var next [][]int
			for _, curr := range level {
				for _, adj := range frontier(sent, curr) {
					grown := make([]int, 0, len(curr)+1)
					grown = append(grown, curr...)
					grown = append(grown, adj)
					sort.Ints(grown)
					key := matchKey(grown)
					if seen[key] {
						continue
					}
					seen[key] = true
					if !yield(grown) {
						return
					}
					next = append(next, grown)
				}
			}
			level = next
		}
	}, nil
}
