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
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tregram/deptree"
	"tregram/merror"
)

const (
	// RelOpImmediate requires the governing node to be the direct
	// head of the dependent node.
	RelOpImmediate = ">"

	// RelOpChain requires the governing node to appear anywhere
	// on the dependent node's head chain.
	RelOpChain = ">>"
)

// FeatureSpec maps pattern constraint keys (e.g. DEP, TAG) to
// token feature accessors. One spec is applied per pattern node;
// variant generation may apply different specs to different nodes.
type FeatureSpec map[string]deptree.Accessor

// Apply derives the constraint values for a single token.
func (fs FeatureSpec) Apply(sent *deptree.Sentence, tokenIdx int) (map[string]string, error) {
	ans := make(map[string]string, len(fs))
	for key, acc := range fs {
		v, err := sent.Feature(tokenIdx, acc)
		if err != nil {
			return nil, fmt.Errorf("failed to apply feature spec: %w", err)
		}
		ans[key] = v
	}
	return ans, nil
}

// AccessorForKey returns the canonical accessor for a constraint
// key as used in serialized patterns and in whole-set variant
// generation. Unknown keys address custom token attributes.
func AccessorForKey(key string) deptree.Accessor {
	switch key {
	case "DEP":
		return deptree.Accessor{Kind: deptree.FeatureDeprel}
	case "TAG":
		return deptree.Accessor{Kind: deptree.FeatureTag}
	case "POS":
		return deptree.Accessor{Kind: deptree.FeaturePos}
	case "LOWER":
		return deptree.Accessor{Kind: deptree.FeatureLower}
	case "ORTH":
		return deptree.Accessor{Kind: deptree.FeatureOrth}
	case "LEMMA":
		return deptree.Accessor{Kind: deptree.FeatureLemma}
	}
	return deptree.CustomAccessor(key)
}

// SpecFromKeys creates a feature spec using the canonical
// key-to-accessor mapping.
func SpecFromKeys(keys []string) FeatureSpec {
	ans := make(FeatureSpec, len(keys))
	for _, k := range keys {
		ans[k] = AccessorForKey(k)
	}
	return ans
}

// ------------------------------------

// Node is a single constraint record of a pattern. It keeps the
// index of the token it was derived from so variant generators can
// re-derive its constraints and so edges can be reconstructed.
// Parent is a position within Pattern.Nodes (-1 for the root node).
// Connector nodes exist only to keep the pattern tree connected;
// the matched text they correspond to is not part of the match.
type Node struct {
	TokenIndex int
	IsMatch    bool
	Parent     int
	RelOp      string
	Attrs      map[string]string
}

func (n *Node) name() string {
	return fmt.Sprintf("node%d", n.TokenIndex)
}

// Pattern is an ordered tree of constraint nodes. The first node is
// the root; every following node refers to an earlier node as its
// governor. Node order is deterministic (governors first, siblings
// by token index), so patterns built from equal inputs are equal.
type Pattern struct {
	Nodes []Node
}

func (p *Pattern) Len() int {
	return len(p.Nodes)
}

// TokenIndexes returns source-token indices of the match nodes
// (connector nodes excluded), in ascending order.
func (p *Pattern) TokenIndexes() []int {
	ans := make([]int, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.IsMatch {
			ans = append(ans, n.TokenIndex)
		}
	}
	sort.Ints(ans)
	return ans
}

// Fingerprint produces a canonical textual form of the pattern
// used for equality tests and duplicate suppression.
func (p *Pattern) Fingerprint() string {
	var sb strings.Builder
	for _, n := range p.Nodes {
		fmt.Fprintf(&sb, "%d|%d|%s|%t|", n.TokenIndex, n.Parent, n.RelOp, n.IsMatch)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s=%s;", k, n.Attrs[k])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *Pattern) Equals(other *Pattern) bool {
	return p.Fingerprint() == other.Fingerprint()
}

// ------------------------------------

// patternRow is the serialized form of a node. The shape follows
// spaCy's DependencyMatcher patterns so exported patterns can be
// consumed by external matching engines; IS_CONNECTOR is our own
// extension marking nodes which only bridge match nodes.
type patternRow struct {
	LeftID      string            `json:"LEFT_ID,omitempty"`
	RelOp       string            `json:"REL_OP,omitempty"`
	RightID     string            `json:"RIGHT_ID"`
	RightAttrs  map[string]string `json:"RIGHT_ATTRS"`
	IsConnector bool              `json:"IS_CONNECTOR,omitempty"`
}

func (p *Pattern) MarshalJSON() ([]byte, error) {
	rows := make([]patternRow, len(p.Nodes))
	for i, n := range p.Nodes {
		rows[i] = patternRow{
			RightID:     n.name(),
			RightAttrs:  n.Attrs,
			IsConnector: !n.IsMatch,
		}
		if n.Parent >= 0 {
			rows[i].LeftID = p.Nodes[n.Parent].name()
			rows[i].RelOp = n.RelOp
		}
	}
	return json.Marshal(rows)
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	var rows []patternRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	nodes := make([]Node, len(rows))
	positions := make(map[string]int, len(rows))
	for i, row := range rows {
		tokenIdx, err := strconv.Atoi(strings.TrimPrefix(row.RightID, "node"))
		if err != nil {
			return merror.InputError{
				Msg: fmt.Sprintf("invalid pattern node id `%s`", row.RightID)}
		}
		nodes[i] = Node{
			TokenIndex: tokenIdx,
			IsMatch:    !row.IsConnector,
			Parent:     -1,
			RelOp:      row.RelOp,
			Attrs:      row.RightAttrs,
		}
		if i > 0 {
			parent, ok := positions[row.LeftID]
			if !ok {
				return merror.InputError{
					Msg: fmt.Sprintf("pattern node `%s` refers to unknown governor `%s`",
						row.RightID, row.LeftID)}
			}
			nodes[i].Parent = parent
		}
		positions[row.RightID] = i
	}
	p.Nodes = nodes
	return nil
}
