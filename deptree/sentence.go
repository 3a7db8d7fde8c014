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
	"sort"

	"tregram/merror"
)

// Sentence is a dependency-parsed sentence as delivered by an
// external NLP pipeline. Tokens are stored in an index-addressed
// arena; head and children links are plain indices into it.
// A sentence may contain more than one root - taggers sometimes
// emit fragmented parses and we must be able to represent them
// (tokens of different fragments are then mutually unreachable).
type Sentence struct {
	tokens   []Token
	children [][]int
}

// NewSentence wraps externally produced tokens. It checks that
// token indices are contiguous and head references stay within
// the sentence; it does not reinterpret the parse in any way.
func NewSentence(tokens []Token) (*Sentence, error) {
	children := make([][]int, len(tokens))
	for i, tok := range tokens {
		if tok.Index != i {
			return nil, merror.InputError{
				Msg: "token indices must be contiguous and start at zero"}
		}
		if tok.Head < 0 || tok.Head >= len(tokens) {
			return nil, merror.InputError{Msg: "token head out of range"}
		}
	}
	for i, tok := range tokens {
		if tok.Head != i {
			children[tok.Head] = append(children[tok.Head], i)
		}
	}
	for i := range children {
		sort.Ints(children[i])
	}
	return &Sentence{tokens: tokens, children: children}, nil
}

func (s *Sentence) Len() int {
	return len(s.tokens)
}

// Token returns the token at the given position. The returned
// pointer aliases the sentence arena and must be treated as
// read-only.
func (s *Sentence) Token(i int) *Token {
	return &s.tokens[i]
}

// Children returns indices of tokens governed by token i,
// in ascending index order.
func (s *Sentence) Children(i int) []int {
	return s.children[i]
}

func (s *Sentence) Head(i int) int {
	return s.tokens[i].Head
}

// Root returns the index of the root governing token i
// (possibly i itself).
func (s *Sentence) Root(i int) int {
	for !s.tokens[i].IsRoot() {
		i = s.tokens[i].Head
	}
	return i
}

// Depth returns the number of head links between token i
// and its root.
func (s *Sentence) Depth(i int) int {
	var d int
	for !s.tokens[i].IsRoot() {
		i = s.tokens[i].Head
		d++
	}
	return d
}

// Neighbours returns all tokens structurally adjacent to token i,
// i.e. its head (unless i is a root) and its children,
// in ascending index order.
func (s *Sentence) Neighbours(i int) []int {
	ans := make([]int, 0, len(s.children[i])+1)
	ans = append(ans, s.children[i]...)
	if !s.tokens[i].IsRoot() {
		ans = append(ans, s.tokens[i].Head)
	}
	sort.Ints(ans)
	return ans
}

// Feature applies a feature accessor to the token at position i.
func (s *Sentence) Feature(i int, acc Accessor) (string, error) {
	return acc.Apply(&s.tokens[i])
}

func (s *Sentence) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.tokens)
}

func (s *Sentence) UnmarshalJSON(data []byte) error {
	var tokens []Token
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	ans, err := NewSentence(tokens)
	if err != nil {
		return err
	}
	*s = *ans
	return nil
}
