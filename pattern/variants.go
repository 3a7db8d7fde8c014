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
	"iter"

	"tregram/deptree"
	"tregram/merror"
)

// NodeLevelVariants enumerates feature-level variants of a pattern:
// every assignment of one of the supplied feature specs per pattern
// node (a Cartesian product, k^n assignments for k specs and n
// nodes). Tree topology never changes and every variant keeps
// matching the example the pattern was built from. If mutable is
// not nil, only nodes derived from the listed tokens vary; the
// remaining nodes keep their original constraints. Assignments
// producing identical patterns are suppressed, so the returned
// sequence is duplicate-free. The sequence is lazy and restartable;
// all feature lookups happen eagerly here so a misconfigured spec
// fails before anything is yielded.
func NodeLevelVariants(
	sent *deptree.Sentence,
	pat *Pattern,
	specs []FeatureSpec,
	mutable []int,
) (iter.Seq[*Pattern], error) {
	if len(specs) == 0 {
		return nil, merror.InputError{Msg: "no feature specs provided"}
	}
	var mutableSet map[int]bool
	if mutable != nil {
		mutableSet = make(map[int]bool, len(mutable))
		for _, idx := range mutable {
			mutableSet[idx] = true
		}
	}
	// candidate constraint maps per node; immutable nodes get
	// a single candidate (their current constraints)
	candidates := make([][]map[string]string, len(pat.Nodes))
	for i, node := range pat.Nodes {
		if mutableSet != nil && !mutableSet[node.TokenIndex] {
			candidates[i] = []map[string]string{node.Attrs}
			continue
		}
		candidates[i] = make([]map[string]string, len(specs))
		for j, spec := range specs {
			attrs, err := spec.Apply(sent, node.TokenIndex)
			if err != nil {
				return nil, err
			}
			candidates[i][j] = attrs
		}
	}
	return func(yield func(*Pattern) bool) {
		choice := make([]int, len(pat.Nodes))
		seen := make(map[string]bool)
		for {
			variant := &Pattern{Nodes: make([]Node, len(pat.Nodes))}
			copy(variant.Nodes, pat.Nodes)
			for i := range variant.Nodes {
				variant.Nodes[i].Attrs = candidates[i][choice[i]]
			}
			fp := variant.Fingerprint()
			if !seen[fp] {
				seen[fp] = true
				if !yield(variant) {
					return
				}
			}
			pos := len(choice) - 1
			for pos >= 0 {
				choice[pos]++
				if choice[pos] < len(candidates[pos]) {
					break
				}
				choice[pos] = 0
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}, nil
}

// Permutations enumerates variants driven by whole feature-key sets
// instead of per-node specs: for each node one of the supplied key
// sets is chosen and resolved through the canonical key-to-accessor
// mapping. This is the degenerate case of NodeLevelVariants and
// shares its enumeration contract.
func Permutations(
	sent *deptree.Sentence,
	pat *Pattern,
	featureSets [][]string,
) (iter.Seq[*Pattern], error) {
	specs := make([]FeatureSpec, len(featureSets))
	for i, keys := range featureSets {
		specs[i] = SpecFromKeys(keys)
	}
	return NodeLevelVariants(sent, pat, specs, nil)
}
