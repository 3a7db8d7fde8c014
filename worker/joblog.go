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

package worker

import (
	"github.com/rs/zerolog/log"

	"tregram/results"
)

// ZerologJobLogger writes finished job records to the standard
// application log.
type ZerologJobLogger struct{}

func (jl *ZerologJobLogger) Log(rec results.JobLog) {
	evt := log.Info()
	if rec.Err != nil {
		evt = log.Warn().Err(rec.Err)
	}
	evt.
		Str("workerId", rec.WorkerID).
		Str("func", rec.Func).
		Dur("procTime", rec.End.Sub(rec.Begin)).
		Msg("finished job")
}

// NullJobLogger drops all job records.
type NullJobLogger struct{}

func (jl *NullJobLogger) Log(rec results.JobLog) {}
