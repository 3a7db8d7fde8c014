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

// Package worker runs pattern-building jobs dequeued from the
// Redis broker. Workers are stateless; any number of them may
// consume the same queue.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tregram/merror"
	"tregram/rdb"
	"tregram/results"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

type jobLogger interface {
	Log(rec results.JobLog)
}

type recoveredError struct {
	error
}

type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	radapter   *rdb.Adapter
	ticker     *time.Ticker
	jobLogger  jobLogger
	currJobLog *results.JobLog
	done       chan struct{}
}

func (w *Worker) publishResult(res results.SerializableResult, channel string) error {
	ans, err := rdb.CreateWorkerResult(res)
	if err != nil {
		return err
	}
	ans.ID = w.ID
	ans.ProcBegin = w.currJobLog.Begin
	ans.ProcEnd = time.Now()

	w.currJobLog.End = ans.ProcEnd
	w.currJobLog.Err = res.Err()
	w.jobLogger.Log(*w.currJobLog)
	w.currJobLog = nil
	return w.radapter.PublishResult(channel, ans)
}

func (w *Worker) sendPublishingErr(query rdb.Query, err error) {
	res := &results.ErrorResult{Func: query.Func}
	res.SetErr(err)
	if err := w.publishResult(res, query.Channel); err != nil {
		log.Error().Err(err).Msg("failed to publish general publishing error")
	}
}

func (w *Worker) runQueryProtected(query rdb.Query) (ansErr error) {
	defer func() {
		if r := recover(); r != nil {
			ansErr = recoveredError{fmt.Errorf("recovered error: %v", r)}
			return
		}
	}()
	var ans results.SerializableResult
	switch query.Func {
	case "buildPattern":
		var args rdb.BuildPatternArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.buildPattern(args)
	case "patternVariants":
		var args rdb.PatternVariantsArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.patternVariants(args)
	case "patternPermutations":
		var args rdb.PatternPermutationsArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.patternPermutations(args)
	case "matchExtensions":
		var args rdb.MatchExtensionsArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.matchExtensions(args)
	case "findMatches":
		var args rdb.FindMatchesArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans = w.findMatches(args)
	default:
		errAns := &results.ErrorResult{Func: query.Func}
		errAns.SetErr(merror.InputError{
			Msg: fmt.Sprintf("unknown query function: %s", query.Func)})
		ans = errAns
	}
	if err := w.publishResult(ans, query.Channel); err != nil {
		w.sendPublishingErr(query, err)
		return err
	}
	return nil
}

func (w *Worker) tryNextQuery() error {
	// a little desync so concurrent workers do not hit the queue at once
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.radapter.DequeueQuery()
	if errors.Is(err, rdb.ErrorEmptyQueue) {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("received query")

	isActive, err := w.radapter.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	w.currJobLog = &results.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}

	err = w.runQueryProtected(query)
	var rcvErr recoveredError
	if errors.As(err, &rcvErr) {
		ans := &results.ErrorResult{Func: query.Func}
		ans.SetErr(merror.RecoveredError{
			Msg: fmt.Sprintf("worker panicked: %s", rcvErr.Error())})
		w.currJobLog = &results.JobLog{
			WorkerID: w.ID,
			Func:     query.Func,
			Begin:    time.Now(),
		}
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("workerId", w.ID).Msg("worker exiting")
				return
			case <-w.ticker.C:
				if err := w.tryNextQuery(); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			case msg := <-w.messages:
				if msg.Payload == rdb.MsgNewQuery {
					if err := w.tryNextQuery(); err != nil {
						log.Error().Err(err).Msg("failed to process query")
					}
				}
			}
		}
	}()
}

func (w *Worker) Stop(ctx context.Context) error {
	w.ticker.Stop()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func NewWorker(
	workerID string,
	radapter *rdb.Adapter,
	messages <-chan *redis.Message,
	jobLogger jobLogger,
) *Worker {
	return &Worker{
		ID:        workerID,
		radapter:  radapter,
		messages:  messages,
		ticker:    time.NewTicker(DefaultTickerInterval),
		jobLogger: jobLogger,
		done:      make(chan struct{}),
	}
}
