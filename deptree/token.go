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
	"fmt"
	"strings"
)

// Token is a single node of a dependency-parsed sentence.
// Tokens are produced by an external parsing pipeline and are
// treated as read-only here. Head refers to the governing token
// by its index; a root token has Head equal to its own Index.
type Token struct {
	Index  int               `json:"index"`
	Word   string            `json:"word"`
	Lemma  string            `json:"lemma,omitempty"`
	Tag    string            `json:"tag,omitempty"`
	Pos    string            `json:"pos,omitempty"`
	Deprel string            `json:"deprel"`
	Head   int               `json:"head"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

func (t *Token) IsRoot() bool {
	return t.Head == t.Index
}

// -----------------

// FeatureKind enumerates the built-in token attributes a pattern
// constraint can be derived from. FeatureCustom addresses a named
// entry of the token's Attrs map instead.
type FeatureKind int

const (
	FeatureDeprel FeatureKind = iota
	FeatureTag
	FeaturePos
	FeatureLower
	FeatureOrth
	FeatureLemma
	FeatureCustom
)

// Accessor identifies one feature of a token. For FeatureCustom,
// Name addresses the custom attribute; for built-in kinds Name
// is empty.
type Accessor struct {
	Kind FeatureKind
	Name string
}

var builtinAccessors = map[string]FeatureKind{
	"deprel": FeatureDeprel,
	"tag":    FeatureTag,
	"pos":    FeaturePos,
	"lower":  FeatureLower,
	"orth":   FeatureOrth,
	"lemma":  FeatureLemma,
}

// CustomAccessor creates an accessor for a named custom token attribute.
func CustomAccessor(name string) Accessor {
	return Accessor{Kind: FeatureCustom, Name: name}
}

// ParseAccessor resolves a feature identifier as used in configuration
// and job arguments. Identifiers matching a built-in feature name
// (deprel, tag, pos, lower, orth, lemma) resolve to the respective
// built-in accessor, anything else addresses a custom attribute.
func ParseAccessor(v string) Accessor {
	if kind, ok := builtinAccessors[strings.ToLower(v)]; ok {
		return Accessor{Kind: kind}
	}
	return CustomAccessor(v)
}

func (a Accessor) String() string {
	switch a.Kind {
	case FeatureDeprel:
		return "deprel"
	case FeatureTag:
		return "tag"
	case FeaturePos:
		return "pos"
	case FeatureLower:
		return "lower"
	case FeatureOrth:
		return "orth"
	case FeatureLemma:
		return "lemma"
	case FeatureCustom:
		return a.Name
	}
	return fmt.Sprintf("unknown(%d)", a.Kind)
}

func (a Accessor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Accessor) UnmarshalText(data []byte) error {
	*a = ParseAccessor(string(data))
	return nil
}

// Apply reads the addressed feature from a token. A missing custom
// attribute is a caller configuration problem and is reported as
// an error rather than an empty value.
func (a Accessor) Apply(t *Token) (string, error) {
	switch a.Kind {
	case FeatureDeprel:
		return t.Deprel, nil
	case FeatureTag:
		return t.Tag, nil
	case FeaturePos:
		return t.Pos, nil
	case FeatureLower:
		return strings.ToLower(t.Word), nil
	case FeatureOrth:
		return t.Word, nil
	case FeatureLemma:
		return t.Lemma, nil
	case FeatureCustom:
		if v, ok := t.Attrs[a.Name]; ok {
			return v, nil
		}
		return "", fmt.Errorf("token %d has no custom attribute `%s`", t.Index, a.Name)
	}
	return "", fmt.Errorf("unknown feature kind %d", a.Kind)
}
