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
	"tregram/deptree"
)

// lowestCommonAncestor assumes both tokens belong to the same
// component (guaranteed by Validate).
func lowestCommonAncestor(sent *deptree.Sentence, a, b int) int {
	da, db := sent.Depth(a), sent.Depth(b)
	for da > db {
		a = sent.Head(a)
		da--
	}
	for db > da {
		b = sent.Head(b)
		db--
	}
	for a != b {
		a = sent.Head(a)
		b = sent.Head(b)
	}
	return a
}

// connectingSubtree computes the smallest token set containing all
// match tokens whose induced subtree is connected. It is rooted at
// the lowest common ancestor of the match; tokens added along the
// head paths are the connector nodes of the resulting pattern.
func connectingSubtree(sent *deptree.Sentence, match []int) (root int, members map[int]bool) {
	root = match[0]
	for _, idx := range match[1:] {
		root = lowestCommonAncestor(sent, root, idx)
	}
	members = make(map[int]bool, len(match))
	members[root] = true
	for _, idx := range match {
		for curr := idx; !members[curr]; curr = sent.Head(curr) {
			members[curr] = true
		}
	}
	return
}

// Build derives a dependency pattern from a concrete match. The
// pattern covers the minimal connecting subtree of the match; its
// nodes are emitted governors-first with sibling order following
// token positions, and each node's constraints are produced by
// applying featureSpec to the source token. Matching the result
// against the original sentence is guaranteed to include the
// original match.
func Build(
	sent *deptree.Sentence,
	match []int,
	featureSpec FeatureSpec,
) (*Pattern, error) {
	if err := Validate(sent, match); err != nil {
		return nil, err
	}
	root, members := connectingSubtree(sent, match)
	inMatch := make(map[int]bool, len(match))
	for _, idx := range match {
		inMatch[idx] = true
	}

	ans := &Pattern{Nodes: make([]Node, 0, len(members))}
	positions := make(map[int]int, len(members))
	stack := []int{root}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		attrs, err := featureSpec.Apply(sent, curr)
		if err != nil {
			return nil, err
		}
		node := Node{
			TokenIndex: curr,
			IsMatch:    inMatch[curr],
			Parent:     -1,
			Attrs:      attrs,
		}
		if curr != root {
			node.Parent = positions[sent.Head(curr)]
			node.RelOp = RelOpImmediate
		}
		positions[curr] = len(ans.Nodes)
		ans.Nodes = append(ans.Nodes, node)

		children := sent.Children(curr)
		for i := len(children) - 1; i >= 0; i-- {
			if members[children[i]] {
				stack = append(stack, children[i])
			}
		}
	}
	return ans, nil
}
