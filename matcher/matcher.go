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

// Package matcher searches a parsed sentence for token sets
// satisfying a dependency pattern. The pattern-building core does
// not depend on it; it backs the /matches endpoint and the
// verification flows of the test suite.
package matcher

import (
	"sort"
	"strconv"
	"strings"

	"tregram/deptree"
	"tregram/pattern"
)

func nodeMatches(sent *deptree.Sentence, node *pattern.Node, tokenIdx int) bool {
	for key, required := range node.Attrs {
		v, err := sent.Feature(tokenIdx, pattern.AccessorForKey(key))
		if err != nil || v != required {
			return false
		}
	}
	return true
}

func governs(sent *deptree.Sentence, governor, dependent int, relOp string) bool {
	if dependent == governor {
		return false
	}
	switch relOp {
	case pattern.RelOpImmediate:
		return !sent.Token(dependent).IsRoot() && sent.Head(dependent) == governor
	case pattern.RelOpChain:
		for curr := dependent; !sent.Token(curr).IsRoot(); {
			curr = sent.Head(curr)
			if curr == governor {
				return true
			}
		}
	}
	return false
}

type search struct {
	sent       *deptree.Sentence
	pat        *pattern.Pattern
	assignment []int
	used       map[int]bool
	found      map[string][]int
}

func (s *search) run(nodePos int) {
	if nodePos == s.pat.Len() {
		match := make([]int, 0, s.pat.Len())
		for i, node := range s.pat.Nodes {
			if node.IsMatch {
				match = append(match, s.assignment[i])
			}
		}
		sort.Ints(match)
		s.found[fmtKey(match)] = match
		return
	}
	node := &s.pat.Nodes[nodePos]
	for tokenIdx := 0; tokenIdx < s.sent.Len(); tokenIdx++ {
		if s.used[tokenIdx] || !nodeMatches(s.sent, node, tokenIdx) {
			continue
		}
		if node.Parent >= 0 &&
			!governs(s.sent, s.assignment[node.Parent], tokenIdx, node.RelOp) {
			continue
		}
		s.assignment[nodePos] = tokenIdx
		s.used[tokenIdx] = true
		s.run(nodePos + 1)
		s.used[tokenIdx] = false
	}
}

func fmtKey(match []int) string {
	var sb strings.Builder
	for _, idx := range match {
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteByte(',')
	}
	return sb.String()
}

// Find returns all token sets of the sentence satisfying the
// pattern. Only tokens bound to match nodes appear in the results;
// tokens bound to connector nodes merely have to exist. Results are
// sorted index slices in a deterministic order, each distinct set
// reported once.
func Find(sent *deptree.Sentence, pat *pattern.Pattern) [][]int {
	if pat.Len() == 0 {
		return nil
	}
	s := &search{
		sent:       sent,
		pat:        pat,
		assignment: make([]int, pat.Len()),
		used:       make(map[int]bool),
		found:      make(map[string][]int),
	}
	s.run(0)
	ans := make([][]int, 0, len(s.found))
	for _, match := range s.found {
		ans = append(ans, match)
	}
	sort.Slice(ans, func(i, j int) bool {
		a, b := ans[i], ans[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return ans
}

// Contains tells whether the given match (any order) is among
// the found matches.
func Contains(matches [][]int, match []int) bool {
	want := make([]int, len(match))
	copy(want, match)
	sort.Ints(want)
	for _, m := range matches {
		if len(m) != len(want) {
			continue
		}
		eq := true
		for i := range m {
			if m[i] != want[i] {
				eq = false
				break
			}
		}
		if eq {
			return true
		}
	}
	return false
}
