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

package deptree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() []Token {
	return []Token{
		{Index: 0, Word: "We", Tag: "PRP", Deprel: "nsubj", Head: 1},
		{Index: 1, Word: "drank", Tag: "VBD", Deprel: "ROOT", Head: 1},
		{Index: 2, Word: "green", Tag: "JJ", Deprel: "amod", Head: 3},
		{Index: 3, Word: "tea", Tag: "NN", Deprel: "dobj", Head: 1,
			Attrs: map[string]string{"sem": "beverage"}},
	}
}

func TestNewSentence(t *testing.T) {
	sent, err := NewSentence(testTokens())
	require.NoError(t, err)
	assert.Equal(t, 4, sent.Len())
	assert.Equal(t, []int{0, 3}, sent.Children(1))
	assert.Empty(t, sent.Children(0))
	assert.Equal(t, 1, sent.Head(0))
}

func TestNewSentenceBrokenIndices(t *testing.T) {
	tokens := testTokens()
	tokens[2].Index = 10
	_, err := NewSentence(tokens)
	assert.Error(t, err)
}

func TestNewSentenceHeadOutOfRange(t *testing.T) {
	tokens := testTokens()
	tokens[2].Head = 11
	_, err := NewSentence(tokens)
	assert.Error(t, err)
}

func TestRootAndDepth(t *testing.T) {
	sent, err := NewSentence(testTokens())
	require.NoError(t, err)
	assert.True(t, sent.Token(1).IsRoot())
	assert.Equal(t, 1, sent.Root(2))
	assert.Equal(t, 2, sent.Depth(2))
	assert.Equal(t, 0, sent.Depth(1))
}

func TestNeighbours(t *testing.T) {
	sent, err := NewSentence(testTokens())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, sent.Neighbours(1))
	assert.Equal(t, []int{1, 2}, sent.Neighbours(3))
	assert.Equal(t, []int{1}, sent.Neighbours(0))
}

func TestFeatureLookup(t *testing.T) {
	sent, err := NewSentence(testTokens())
	require.NoError(t, err)

	v, err := sent.Feature(0, Accessor{Kind: FeatureDeprel})
	require.NoError(t, err)
	assert.Equal(t, "nsubj", v)

	v, err = sent.Feature(0, Accessor{Kind: FeatureLower})
	require.NoError(t, err)
	assert.Equal(t, "we", v)

	v, err = sent.Feature(3, CustomAccessor("sem"))
	require.NoError(t, err)
	assert.Equal(t, "beverage", v)

	_, err = sent.Feature(0, CustomAccessor("sem"))
	assert.Error(t, err)
}

func TestParseAccessor(t *testing.T) {
	acc := ParseAccessor("tag")
	assert.Equal(t, FeatureTag, acc.Kind)
	acc = ParseAccessor("sem")
	assert.Equal(t, FeatureCustom, acc.Kind)
	assert.Equal(t, "sem", acc.Name)
}

func TestAccessorTextRoundTrip(t *testing.T) {
	for _, v := range []string{"deprel", "tag", "pos", "lower", "orth", "lemma", "sem"} {
		acc := ParseAccessor(v)
		data, err := acc.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, v, string(data))
		var clone Accessor
		require.NoError(t, clone.UnmarshalText(data))
		assert.Equal(t, acc, clone)
	}
}

func TestSentenceJSONRoundTrip(t *testing.T) {
	sent, err := NewSentence(testTokens())
	require.NoError(t, err)
	data, err := json.Marshal(sent)
	require.NoError(t, err)

	var clone Sentence
	require.NoError(t, json.Unmarshal(data, &clone))
	assert.Equal(t, sent.Len(), clone.Len())
	assert.Equal(t, sent.Children(1), clone.Children(1))
	assert.Equal(t, "tea", clone.Token(3).Word)
}
