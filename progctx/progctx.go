// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package progctx manages the lifetime of the program: cancellation, deferred cleanup and the goroutines
// that must finish before exit.
package progctx

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"
)

// ProgCtx is the context of the program during its lifetime.
type ProgCtx struct {
	context.Context
	wg           sync.WaitGroup
	cancel       context.CancelFunc
	routinesLock sync.Mutex
	routines     map[string]int
	deferred     []func()
	cancelOnce   sync.Once
	cause        interface{}
}

// New creates a new ProgCtx from the parent context.
func New(parent context.Context) *ProgCtx {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)
	return &ProgCtx{
		Context:  ctx,
		cancel:   cancel,
		routines: map[string]int{},
	}
}

// Cancel cancels the program context for the given reason, an error or a message. Only the first call has
// effect; it runs the deferred functions in reverse order of registration.
func (ctx *ProgCtx) Cancel(reason interface{}) {
	ctx.cancelOnce.Do(func() {
		ctx.routinesLock.Lock()
		ctx.cause = reason
		deferred := ctx.deferred
		ctx.deferred = nil
		ctx.routinesLock.Unlock()

		ctx.cancel()

		if e, ok := reason.(error); ok {
			simplelogger.Errorf("program exit: %v", e)
		} else {
			simplelogger.Infof("program exit: %v", reason)
		}

		for i := len(deferred) - 1; i >= 0; i-- {
			deferred[i]()
		}
	})
}

// Cause returns the reason given to the first Cancel call, or nil.
func (ctx *ProgCtx) Cause() interface{} {
	ctx.routinesLock.Lock()
	defer ctx.routinesLock.Unlock()
	return ctx.cause
}

// Defer registers a function to be called when the program context is cancelled.
func (ctx *ProgCtx) Defer(f func()) {
	if ctx.Err() != nil {
		panic(errors.Errorf("can not Defer after context is done"))
	}

	ctx.routinesLock.Lock()
	ctx.deferred = append(ctx.deferred, f)
	ctx.routinesLock.Unlock()
}

// WaitAdd adds delta goroutines named name to wait for.
func (ctx *ProgCtx) WaitAdd(name string, delta int) {
	ctx.routinesLock.Lock()
	ctx.routines[name] += delta
	ctx.routinesLock.Unlock()

	ctx.wg.Add(delta)
}

// WaitDone notifies that a goroutine has finished.
func (ctx *ProgCtx) WaitDone(name string) {
	ctx.routinesLock.Lock()
	defer ctx.routinesLock.Unlock()

	if ctx.routines[name] <= 0 {
		simplelogger.Panicf("routine %s is not running, should not call WaitDone", name)
	}
	ctx.routines[name] -= 1
	ctx.wg.Done()
}

// WaitCount returns the number of goroutines to wait for.
func (ctx *ProgCtx) WaitCount() int {
	ctx.routinesLock.Lock()
	defer ctx.routinesLock.Unlock()

	total := 0
	for _, c := range ctx.routines {
		total += c
	}
	return total
}

// Wait waits for all goroutines to finish.
func (ctx *ProgCtx) Wait() {
	simplelogger.Debugf("program context waiting for %d routines", ctx.WaitCount())
	ctx.wg.Wait()
}

// Go runs f in a goroutine that Wait waits for. A panic in f cancels the program context.
func (ctx *ProgCtx) Go(name string, f func()) {
	ctx.WaitAdd(name, 1)
	go func() {
		defer ctx.WaitDone(name)
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					ctx.Cancel(errors.Wrapf(err, "routine %s", name))
				} else {
					ctx.Cancel(errors.Errorf("routine %s: %v", name, r))
				}
			}
		}()
		f()
	}()
}
