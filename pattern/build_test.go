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

package pattern_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tregram/deptree"
	"tregram/matcher"
	"tregram/merror"
	"tregram/pattern"
)

func TestValidateOK(t *testing.T) {
	sent := fixtureSentence(t)
	assert.NoError(t, pattern.Validate(sent, []int{0, 1, 3}))
	assert.NoError(t, pattern.Validate(sent, []int{13, 15, 16, 19}))
	// connectable through out-of-match ancestors
	assert.NoError(t, pattern.Validate(sent, []int{12, 15}))
}

func TestValidateDuplicateTokens(t *testing.T) {
	sent := fixtureSentence(t)
	err := pattern.Validate(sent, []int{0, 1, 1, 3})
	var tErr merror.DuplicateTokensError
	assert.ErrorAs(t, err, &tErr)
}

func TestValidateNotConnected(t *testing.T) {
	sent := fixtureSentence(t)
	err := pattern.Validate(sent, []int{19, 20, 21, 27})
	var tErr merror.TokensNotFullyConnectedError
	assert.ErrorAs(t, err, &tErr)
}

func TestValidateDuplicatesReportedBeforeConnectivity(t *testing.T) {
	sent := fixtureSentence(t)
	err := pattern.Validate(sent, []int{19, 19, 27})
	var tErr merror.DuplicateTokensError
	assert.ErrorAs(t, err, &tErr)
}

func TestValidateEmptyMatch(t *testing.T) {
	sent := fixtureSentence(t)
	err := pattern.Validate(sent, []int{})
	var tErr merror.InputError
	assert.ErrorAs(t, err, &tErr)
}

func TestBuildPattern(t *testing.T) {
	sent := fixtureSentence(t)
	match := []int{0, 1, 3}
	pat, err := pattern.Build(sent, match, pattern.SpecFromKeys([]string{"DEP", "TAG"}))
	require.NoError(t, err)
	require.Equal(t, 3, pat.Len())
	// governor first, then dependents by token position
	assert.Equal(t, 1, pat.Nodes[0].TokenIndex)
	assert.Equal(t, -1, pat.Nodes[0].Parent)
	assert.Equal(t, 0, pat.Nodes[1].TokenIndex)
	assert.Equal(t, 3, pat.Nodes[2].TokenIndex)
	assert.Equal(t, map[string]string{"DEP": "nsubj", "TAG": "PRP"}, pat.Nodes[1].Attrs)

	matches := matcher.Find(sent, pat)
	assert.True(t, matcher.Contains(matches, match), "built pattern does not match its example")
}

func TestBuildPatternDeeperChain(t *testing.T) {
	sent := fixtureSentence(t)
	match := []int{13, 15, 16, 19}
	pat, err := pattern.Build(sent, match, pattern.SpecFromKeys([]string{"DEP", "TAG"}))
	require.NoError(t, err)
	require.Equal(t, 4, pat.Len())
	for _, node := range pat.Nodes {
		assert.True(t, node.IsMatch)
	}
	matches := matcher.Find(sent, pat)
	assert.True(t, matcher.Contains(matches, match))
}

func TestBuildPatternConnectorNodes(t *testing.T) {
	sent := fixtureSentence(t)
	// 12 and 15 are linked only through their governor 13
	pat, err := pattern.Build(sent, []int{12, 15}, pattern.SpecFromKeys([]string{"DEP", "TAG"}))
	require.NoError(t, err)
	require.Equal(t, 3, pat.Len())
	assert.Equal(t, 13, pat.Nodes[0].TokenIndex)
	assert.False(t, pat.Nodes[0].IsMatch)
	assert.ElementsMatch(t, []int{12, 15}, pat.TokenIndexes())

	// connector tokens must not appear in reported matches
	matches := matcher.Find(sent, pat)
	assert.True(t, matcher.Contains(matches, []int{12, 15}))
	for _, m := range matches {
		assert.Len(t, m, 2)
	}
}

func TestBuildPatternNotConnected(t *testing.T) {
	sent := fixtureSentence(t)
	_, err := pattern.Build(sent, []int{19, 20, 21, 27}, pattern.SpecFromKeys([]string{"DEP", "TAG"}))
	var tErr merror.TokensNotFullyConnectedError
	assert.ErrorAs(t, err, &tErr)
}

func TestBuildPatternDuplicateTokens(t *testing.T) {
	sent := fixtureSentence(t)
	_, err := pattern.Build(sent, []int{0, 1, 1, 3}, pattern.SpecFromKeys([]string{"DEP", "TAG"}))
	var tErr merror.DuplicateTokensError
	assert.ErrorAs(t, err, &tErr)
}

func TestBuildPatternDeterministic(t *testing.T) {
	sent := fixtureSentence(t)
	spec := pattern.SpecFromKeys([]string{"DEP", "TAG", "LOWER"})
	p1, err := pattern.Build(sent, []int{3, 0, 1}, spec)
	require.NoError(t, err)
	p2, err := pattern.Build(sent, []int{0, 1, 3}, spec)
	require.NoError(t, err)
	assert.True(t, p1.Equals(p2))
}

func TestBuildPatternCustomAttr(t *testing.T) {
	tokens := fixtureTokens()
	for i := range tokens {
		tokens[i].Attrs = map[string]string{"sem": "my_attr"}
	}
	sent, err := deptree.NewSentence(tokens)
	require.NoError(t, err)

	spec := pattern.FeatureSpec{
		"DEP": deptree.Accessor{Kind: deptree.FeatureDeprel},
		"sem": deptree.CustomAccessor("sem"),
	}
	match := []int{0, 1, 3}
	pat, err := pattern.Build(sent, match, spec)
	require.NoError(t, err)
	assert.Equal(t, "my_attr", pat.Nodes[0].Attrs["sem"])

	matches := matcher.Find(sent, pat)
	assert.True(t, matcher.Contains(matches, match))
}

func TestBuildPatternMissingCustomAttr(t *testing.T) {
	sent := fixtureSentence(t)
	spec := pattern.FeatureSpec{
		"sem": deptree.CustomAccessor("sem"),
	}
	_, err := pattern.Build(sent, []int{0, 1, 3}, spec)
	assert.Error(t, err)
}

func TestPatternJSONRoundTrip(t *testing.T) {
	sent := fixtureSentence(t)
	pat, err := pattern.Build(sent, []int{12, 15}, pattern.SpecFromKeys([]string{"DEP", "TAG"}))
	require.NoError(t, err)

	data, err := json.Marshal(pat)
	require.NoError(t, err)
	var clone pattern.Pattern
	require.NoError(t, json.Unmarshal(data, &clone))
	assert.True(t, pat.Equals(&clone))
}

func TestPatternJSONShape(t *testing.T) {
	sent := fixtureSentence(t)
	pat, err := pattern.Build(sent, []int{0, 1}, pattern.SpecFromKeys([]string{"DEP"}))
	require.NoError(t, err)
	data, err := json.Marshal(pat)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "node1", rows[0]["RIGHT_ID"])
	assert.NotContains(t, rows[0], "LEFT_ID")
	assert.Equal(t, "node1", rows[1]["LEFT_ID"])
	assert.Equal(t, ">", rows[1]["REL_OP"])
	assert.Equal(t, map[string]any{"DEP": "nsubj"}, rows[1]["RIGHT_ATTRS"])
}
