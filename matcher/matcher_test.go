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

package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tregram/deptree"
	"tregram/matcher"
	"tregram/pattern"
)

func tok(idx int, word, tag, deprel string, head int) deptree.Token {
	return deptree.Token{
		Index:  idx,
		Word:   word,
		Tag:    tag,
		Deprel: deprel,
		Head:   head,
	}
}

// testSentence parses as
// drank -> (we:nsubj, tea:dobj -> green:amod, .:punct)
func testSentence(t *testing.T) *deptree.Sentence {
	sent, err := deptree.NewSentence([]deptree.Token{
		tok(0, "we", "PRP", "nsubj", 1),
		tok(1, "drank", "VBD", "ROOT", 1),
		tok(2, "green", "JJ", "amod", 3),
		tok(3, "tea", "NN", "dobj", 1),
		tok(4, ".", ".", "punct", 1),
	})
	require.NoError(t, err)
	return sent
}

func TestFindSimple(t *testing.T) {
	sent := testSentence(t)
	pat := &pattern.Pattern{
		Nodes: []pattern.Node{
			{TokenIndex: 1, IsMatch: true, Parent: -1, Attrs: map[string]string{"TAG": "VBD"}},
			{TokenIndex: 3, IsMatch: true, Parent: 0, RelOp: pattern.RelOpImmediate,
				Attrs: map[string]string{"DEP": "dobj"}},
		},
	}
	matches := matcher.Find(sent, pat)
	assert.Equal(t, [][]int{{1, 3}}, matches)
}

func TestFindNoMatch(t *testing.T) {
	sent := testSentence(t)
	pat := &pattern.Pattern{
		Nodes: []pattern.Node{
			{TokenIndex: 1, IsMatch: true, Parent: -1, Attrs: map[string]string{"TAG": "VBZ"}},
		},
	}
	assert.Empty(t, matcher.Find(sent, pat))
}

func TestFindChainRelOp(t *testing.T) {
	sent := testSentence(t)
	// "green" is governed by "drank" only transitively
	pat := &pattern.Pattern{
		Nodes: []pattern.Node{
			{TokenIndex: 1, IsMatch: true, Parent: -1, Attrs: map[string]string{"TAG": "VBD"}},
			{TokenIndex: 2, IsMatch: true, Parent: 0, RelOp: pattern.RelOpChain,
				Attrs: map[string]string{"DEP": "amod"}},
		},
	}
	matches := matcher.Find(sent, pat)
	assert.Equal(t, [][]int{{1, 2}}, matches)

	pat.Nodes[1].RelOp = pattern.RelOpImmediate
	assert.Empty(t, matcher.Find(sent, pat))
}

func TestFindConnectorExcludedFromResult(t *testing.T) {
	sent := testSentence(t)
	pat := &pattern.Pattern{
		Nodes: []pattern.Node{
			{TokenIndex: 1, IsMatch: false, Parent: -1, Attrs: map[string]string{"TAG": "VBD"}},
			{TokenIndex: 0, IsMatch: true, Parent: 0, RelOp: pattern.RelOpImmediate,
				Attrs: map[string]string{"DEP": "nsubj"}},
			{TokenIndex: 3, IsMatch: true, Parent: 0, RelOp: pattern.RelOpImmediate,
				Attrs: map[string]string{"DEP": "dobj"}},
		},
	}
	matches := matcher.Find(sent, pat)
	assert.Equal(t, [][]int{{0, 3}}, matches)
}

func TestFindMultipleMatches(t *testing.T) {
	sent, err := deptree.NewSentence([]deptree.Token{
		tok(0, "old", "JJ", "amod", 1),
		tok(1, "men", "NNS", "nsubj", 2),
		tok(2, "like", "VBP", "ROOT", 2),
		tok(3, "old", "JJ", "amod", 4),
		tok(4, "books", "NNS", "dobj", 2),
	})
	require.NoError(t, err)
	pat := &pattern.Pattern{
		Nodes: []pattern.Node{
			{TokenIndex: 1, IsMatch: true, Parent: -1, Attrs: map[string]string{"TAG": "NNS"}},
			{TokenIndex: 0, IsMatch: true, Parent: 0, RelOp: pattern.RelOpImmediate,
				Attrs: map[string]string{"DEP": "amod"}},
		},
	}
	matches := matcher.Find(sent, pat)
	assert.Equal(t, [][]int{{0, 1}, {3, 4}}, matches)
}

func TestContains(t *testing.T) {
	matches := [][]int{{0, 1}, {3, 4}}
	assert.True(t, matcher.Contains(matches, []int{1, 0}))
	assert.False(t, matcher.Contains(matches, []int{0, 4}))
	assert.False(t, matcher.Contains(matches, []int{0, 1, 3}))
}
