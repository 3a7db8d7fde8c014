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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tregram/deptree"
)

func tok(idx int, word, tag, pos, deprel string, head int) deptree.Token {
	return deptree.Token{
		Index:  idx,
		Word:   word,
		Lemma:  strings.ToLower(word),
		Tag:    tag,
		Pos:    pos,
		Deprel: deprel,
		Head:   head,
	}
}

// fixtureTokens is a tagger output for the sentence
// "We introduce efficient methods for fitting Boolean models to
// molecular data, successfully demonstrating their application to
// synthetic time courses generated by a number of established clock
// models, as well as experimental expression levels measured using
// luciferase imaging."
// The parse is fragmented: the phrase "a number of established clock
// models" failed to attach and forms a second root (token 23), so
// matches mixing both fragments are not connectable.
func fixtureTokens() []deptree.Token {
	return []deptree.Token{
		tok(0, "We", "PRP", "PRON", "nsubj", 1),
		tok(1, "introduce", "VBP", "VERB", "ROOT", 1),
		tok(2, "efficient", "JJ", "ADJ", "amod", 3),
		tok(3, "methods", "NNS", "NOUN", "dobj", 1),
		tok(4, "for", "IN", "ADP", "prep", 3),
		tok(5, "fitting", "VBG", "VERB", "pcomp", 4),
		tok(6, "Boolean", "JJ", "ADJ", "amod", 7),
		tok(7, "models", "NNS", "NOUN", "dobj", 5),
		tok(8, "to", "IN", "ADP", "prep", 5),
		tok(9, "molecular", "JJ", "ADJ", "amod", 10),
		tok(10, "data", "NNS", "NOUN", "pobj", 8),
		tok(11, ",", ",", "PUNCT", "punct", 1),
		tok(12, "successfully", "RB", "ADV", "advmod", 13),
		tok(13, "demonstrating", "VBG", "VERB", "advcl", 1),
		tok(14, "their", "PRP$", "PRON", "poss", 15),
		tok(15, "application", "NN", "NOUN", "dobj", 13),
		tok(16, "to", "IN", "ADP", "prep", 15),
		tok(17, "synthetic", "JJ", "ADJ", "amod", 19),
		tok(18, "time", "NN", "NOUN", "compound", 19),
		tok(19, "courses", "NNS", "NOUN", "pobj", 16),
		tok(20, "generated", "VBN", "VERB", "acl", 19),
		tok(21, "by", "IN", "ADP", "agent", 20),
		tok(22, "a", "DT", "DET", "det", 23),
		tok(23, "number", "NN", "NOUN", "ROOT", 23),
		tok(24, "of", "IN", "ADP", "prep", 23),
		tok(25, "established", "JJ", "ADJ", "amod", 27),
		tok(26, "clock", "NN", "NOUN", "compound", 27),
		tok(27, "models", "NNS", "NOUN", "pobj", 24),
		tok(28, ",", ",", "PUNCT", "punct", 19),
		tok(29, "as", "IN", "ADP", "cc", 19),
		tok(30, "well", "RB", "ADV", "advmod", 29),
		tok(31, "as", "IN", "ADP", "cc", 29),
		tok(32, "experimental", "JJ", "ADJ", "amod", 34),
		tok(33, "expression", "NN", "NOUN", "compound", 34),
		tok(34, "levels", "NNS", "NOUN", "conj", 19),
		tok(35, "measured", "VBN", "VERB", "acl", 34),
		tok(36, "using", "VBG", "VERB", "advcl", 35),
		tok(37, "luciferase", "NN", "NOUN", "compound", 38),
		tok(38, "imaging", "NN", "NOUN", "dobj", 36),
		tok(39, ".", ".", "PUNCT", "punct", 1),
	}
}

func fixtureSentence(t *testing.T) *deptree.Sentence {
	sent, err := deptree.NewSentence(fixtureTokens())
	require.NoError(t, err)
	return sent
}

// tinySentence is a three token parse (root at 1 governing 0 and 2)
// small enough for exhaustive extension tests.
func tinySentence(t *testing.T) *deptree.Sentence {
	sent, err := deptree.NewSentence([]deptree.Token{
		tok(0, "green", "JJ", "ADJ", "amod", 1),
		tok(1, "tea", "NN", "NOUN", "ROOT", 1),
		tok(2, "please", "UH", "INTJ", "discourse", 1),
	})
	require.NoError(t, err)
	return sent
}
