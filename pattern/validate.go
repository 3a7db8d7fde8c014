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

	"tregram/deptree"
	"tregram/merror"
)

// Validate checks that a candidate match is usable for pattern
// construction: token indices must be within the sentence, must not
// repeat and all of them must live in a single connected component
// of the dependency forest. Duplicates are reported before
// connectivity. The check is pure and has no side effects.
func Validate(sent *deptree.Sentence, match []int) error {
	if len(match) == 0 {
		return merror.InputError{Msg: "empty match"}
	}
	seen := make(map[int]bool, len(match))
	for _, idx := range match {
		if idx < 0 || idx >= sent.Len() {
			return merror.InputError{
				Msg: fmt.Sprintf("match token %d out of range", idx)}
		}
		if seen[idx] {
			return merror.DuplicateTokensError{
				Msg: fmt.Sprintf("match contains token %d more than once", idx)}
		}
		seen[idx] = true
	}
	// walk the component of the first token; every other match token
	// must be reachable through head/child links
	visited := map[int]bool{match[0]: true}
	queue := []int{match[0]}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range sent.Neighbours(curr) {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	for _, idx := range match {
		if !visited[idx] {
			return merror.TokensNotFullyConnectedError{
				Msg: fmt.Sprintf(
					"no path between match tokens %d and %d - try a match within a single subtree",
					match[0], idx)}
		}
	}
	return nil
}
