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

package errmodel

import "fmt"

// ChunkResult is the outcome of a chunk success-rate query. It is either a modeled success probability in
// [0,1], or Unmodeled when the error model does not cover the mode. An Unmodeled result must not be read as
// certain failure.
type ChunkResult struct {
	modeled     bool
	probability float64
}

// Modeled returns a result carrying success probability p.
func Modeled(p float64) ChunkResult {
	return ChunkResult{modeled: true, probability: p}
}

// Unmodeled returns the result for modes outside the model.
func Unmodeled() ChunkResult {
	return ChunkResult{}
}

func (r ChunkResult) IsModeled() bool {
	return r.modeled
}

// SuccessProbability returns the probability that the chunk is received without error. The bool is false
// for Unmodeled results, in which case the probability is meaningless.
func (r ChunkResult) SuccessProbability() (float64, bool) {
	return r.probability, r.modeled
}

func (r ChunkResult) String() string {
	if !r.modeled {
		return "unmodeled"
	}
	return fmt.Sprintf("%g", r.probability)
}
