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

package merror

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalToMessage(t *testing.T) {
	for _, err := range []error{
		DuplicateTokensError{Msg: "dup"},
		TokensNotFullyConnectedError{Msg: "dup"},
		InputError{Msg: "dup"},
		InternalError{Msg: "dup"},
		RecoveredError{Msg: "dup"},
		TimeoutError{Msg: "dup"},
	} {
		ans, mErr := json.Marshal(err)
		require.NoError(t, mErr)
		assert.Equal(t, `"dup"`, string(ans))
	}
}

func TestMarshalEmpty(t *testing.T) {
	ans, err := json.Marshal(InputError{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(ans))
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(DuplicateTokensError{Msg: "x"}))
	assert.True(t, IsUserError(TokensNotFullyConnectedError{Msg: "x"}))
	assert.True(t, IsUserError(InputError{Msg: "x"}))
	assert.False(t, IsUserError(InternalError{Msg: "x"}))
	assert.False(t, IsUserError(RecoveredError{Msg: "x"}))
	assert.False(t, IsUserError(TimeoutError{Msg: "x"}))
	assert.False(t, IsUserError(errors.New("x")))
}

func TestPanicValueToErr(t *testing.T) {
	src := errors.New("boom")
	err := PanicValueToErr(src)
	assert.ErrorIs(t, err, src)

	err = PanicValueToErr("boom")
	assert.Equal(t, "recovered panic: boom", err.Error())

	err = PanicValueToErr(42)
	assert.Contains(t, err.Error(), "int")
}
