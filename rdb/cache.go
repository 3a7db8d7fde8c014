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

package rdb

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

// CacheResult wraps a query publisher with a local file cache.
// Jobs are pure functions of their arguments so the cache key is
// just a hash of the job function and its serialized args.
func (a *Adapter) CacheResult(fn func(Query) (<-chan *WorkerResult, error), query Query) (<-chan *WorkerResult, error) {
	if len(a.cachePath) == 0 {
		return fn(query)
	}

	hashKey := sha1.Sum(append([]byte(query.Func), query.Args...))
	path := filepath.Join(a.cachePath, query.Func+hex.EncodeToString(hashKey[:]))

	pe := fs.PathExists(path)
	isf, _ := fs.IsFile(path)
	ans := make(chan *WorkerResult)
	if pe && isf {
		go func() {
			result := new(WorkerResult)
			content, err := os.ReadFile(path)
			if err != nil {
				log.Err(err).Msgf("Error while reading cache file %s", path)
				result.AttachError(err)

			} else if err := json.Unmarshal(content, result); err != nil {
				log.Err(err).Msgf("Error while decoding cache file %s", path)
				result.AttachError(err)
			}
			ans <- result
			close(ans)
		}()
		return ans, nil
	}

	wr, err := fn(query)
	if err != nil {
		return nil, err
	}
	go func(wr <-chan *WorkerResult) {
		rawResult := <-wr
		data, err := json.Marshal(rawResult)
		if err != nil {
			log.Err(err).Msgf("Error while serializing result for cache file %s", path)

		} else if err := os.WriteFile(path, data, 0644); err != nil {
			log.Err(err).Msgf("Error while writing cache file %s", path)
		}
		ans <- rawResult
		close(ans)
	}(wr)
	return ans, nil
}
