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

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/openthread/ot-wifi-per/logger"
	"github.com/openthread/ot-wifi-per/prng"
	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

// ChunkReceiver decides, by random draw, whether chunks are received correctly. Unlike the error rate
// models it has state (its PRNG) and must not be shared between goroutines.
type ChunkReceiver struct {
	model ErrorRateModel
	rnd   *rand.Rand
}

// NewChunkReceiver creates a receiver drawing from a PRNG with the given seed.
func NewChunkReceiver(model ErrorRateModel, seed prng.RandomSeed) *ChunkReceiver {
	return &ChunkReceiver{
		model: model,
		rnd:   rand.New(rand.NewSource(int64(seed))),
	}
}

// Receive evaluates the chunk with the model and draws the outcome. It returns whether the chunk was
// received and the success probability used for the draw.
func (r *ChunkReceiver) Receive(mode wifiphy.WifiMode, txVector *wifiphy.TxVector, snr float64, nbits uint64,
	field PpduField, staId StaId) (bool, float64, error) {
	res, err := r.model.ChunkSuccessRate(mode, txVector, snr, nbits, field, staId)
	if err != nil {
		return false, 0, err
	}
	pSuccess, ok := res.SuccessProbability()
	if !ok {
		return false, 0, errors.Wrapf(ErrUnmodeledScheme, "model %s, mode %s", r.model.GetName(), mode)
	}

	// no draw needed for certain outcomes
	if pSuccess >= 1.0 {
		return true, pSuccess, nil
	}
	if pSuccess <= 0.0 {
		return false, pSuccess, nil
	}
	if r.rnd.Float64() >= pSuccess {
		logger.Debugf("chunk lost: mode=%s field=%v sta=%d snr=%v nbits=%d psuc=%f", mode, field, staId, snr,
			nbits, pSuccess)
		return false, pSuccess, nil
	}
	return true, pSuccess, nil
}
