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

// Package percache memoizes chunk success rates of an error rate model in a bounded LRU cache.
package percache

import (
	"math"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/openthread/ot-wifi-per/errmodel"
	"github.com/openthread/ot-wifi-per/logger"
	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

const DefaultSize = 4096

type cacheKey struct {
	model   string
	mode    wifiphy.WifiMode
	payload wifiphy.WifiMode
	width   MHz
	mu      bool
	field   PpduField
	sta     StaId
	nbits   uint64
	snr     float64 // exact SNR, or the representative SNR of its bucket
}

// CachedModel wraps an ErrorRateModel and caches its results. It is safe for concurrent use if the wrapped
// model is.
type CachedModel struct {
	hits, misses, bypasses uint64 // accessed atomically, kept first for 64-bit alignment

	model           errmodel.ErrorRateModel
	cache           *lru.Cache
	snrResolutionDb DbValue
	metrics         *Metrics
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits     uint64 `yaml:"hits"`
	Misses   uint64 `yaml:"misses"`
	Bypasses uint64 `yaml:"bypasses"`
	Entries  int    `yaml:"entries"`
}

// NewCachedModel creates a cache of the given size in front of model. With snrResolutionDb > 0, SNRs are
// rounded to a grid of that many dB and the grid point is evaluated instead of the given SNR. metrics may
// be nil.
func NewCachedModel(model errmodel.ErrorRateModel, size int, snrResolutionDb DbValue, metrics *Metrics) (*CachedModel, error) {
	if snrResolutionDb < 0 || math.IsNaN(snrResolutionDb) || math.IsInf(snrResolutionDb, 0) {
		return nil, errors.Errorf("invalid SNR resolution: %v dB", snrResolutionDb)
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "create cache of size %d", size)
	}
	return &CachedModel{
		model:           model,
		cache:           cache,
		snrResolutionDb: snrResolutionDb,
		metrics:         metrics,
	}, nil
}

func (c *CachedModel) GetName() string {
	return c.model.GetName()
}

func (c *CachedModel) ChunkSuccessRate(mode wifiphy.WifiMode, txVector *wifiphy.TxVector, snr float64,
	nbits uint64, field PpduField, staId StaId) (errmodel.ChunkResult, error) {
	if txVector == nil || !(snr > 0) || math.IsInf(snr, 1) {
		c.record(resultBypass)
		return c.model.ChunkSuccessRate(mode, txVector, snr, nbits, field, staId)
	}

	snr = c.quantize(snr)
	key := cacheKey{
		model:   c.model.GetName(),
		mode:    mode,
		payload: txVector.GetMode(staId),
		width:   txVector.GetChannelWidth(),
		mu:      txVector.IsMu(),
		field:   field,
		sta:     staId,
		nbits:   nbits,
		snr:     snr,
	}
	if v, ok := c.cache.Get(key); ok {
		c.record(resultHit)
		return v.(errmodel.ChunkResult), nil
	}

	res, err := c.model.ChunkSuccessRate(mode, txVector, snr, nbits, field, staId)
	if err != nil {
		c.record(resultMiss)
		return res, err
	}
	if c.cache.Add(key, res) {
		logger.Tracef("percache: evicted oldest entry")
	}
	c.record(resultMiss)
	return res, nil
}

func (c *CachedModel) record(result string) {
	switch result {
	case resultHit:
		atomic.AddUint64(&c.hits, 1)
	case resultMiss:
		atomic.AddUint64(&c.misses, 1)
	case resultBypass:
		atomic.AddUint64(&c.bypasses, 1)
	}
	c.metrics.observe(result, c.cache.Len())
}

// quantize returns the representative SNR of the bucket that snr falls into.
func (c *CachedModel) quantize(snr float64) float64 {
	if c.snrResolutionDb == 0 {
		return snr
	}
	bucket := math.Round(RatioToDb(snr) / c.snrResolutionDb)
	return DbToRatio(bucket * c.snrResolutionDb)
}

// Stats returns the counters since the cache was created.
func (c *CachedModel) Stats() Stats {
	return Stats{
		Hits:     atomic.LoadUint64(&c.hits),
		Misses:   atomic.LoadUint64(&c.misses),
		Bypasses: atomic.LoadUint64(&c.bypasses),
		Entries:  c.cache.Len(),
	}
}

// SnrResolutionDb returns the SNR grid of the cache, 0 if SNRs are not rounded.
func (c *CachedModel) SnrResolutionDb() DbValue {
	return c.snrResolutionDb
}

// Len returns the number of cached results.
func (c *CachedModel) Len() int {
	return c.cache.Len()
}

// Purge removes all cached results.
func (c *CachedModel) Purge() {
	c.cache.Purge()
	if c.metrics != nil {
		c.metrics.Entries.Set(0)
	}
}
