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
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/openthread/ot-wifi-per/logger"
)

// up to this n, the integer product in combin.Binomial cannot overflow int64.
const maxIntBinomialN = 60

// Binomial returns the probability of exactly k successes in n Bernoulli trials with success probability p:
// C(n,k) * p^k * (1-p)^(n-k).
func Binomial(k uint32, p float64, n uint32) float64 {
	logger.AssertTrue(k <= n)
	logger.AssertTrue(p >= 0 && p <= 1)

	switch p {
	case 0:
		if k == 0 {
			return 1
		}
		return 0
	case 1:
		if k == n {
			return 1
		}
		return 0
	}

	if n <= maxIntBinomialN {
		coeff := float64(combin.Binomial(int(n), int(k)))
		return coeff * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
	}
	logCoeff := combin.LogGeneralizedBinomial(float64(n), float64(k))
	return math.Exp(logCoeff + float64(k)*math.Log(p) + float64(n-k)*math.Log1p(-p))
}

func calculatePdOdd(ber float64, d uint32) float64 {
	logger.AssertTrue(d%2 == 1)
	pd := 0.0
	for i := (d + 1) / 2; i < d; i++ {
		pd += Binomial(i, ber, d)
	}
	return pd
}

func calculatePdEven(ber float64, d uint32) float64 {
	logger.AssertTrue(d%2 == 0)
	pd := 0.0
	for i := d/2 + 1; i < d; i++ {
		pd += Binomial(i, ber, d)
	}
	pd += 0.5 * Binomial(d/2, ber, d)
	return pd
}

// CalculatePd returns the pairwise error probability of a Viterbi decoder choosing an incorrect path at
// Hamming distance d, for raw bit error rate ber.
func CalculatePd(ber float64, d uint32) float64 {
	logger.AssertTrue(d > 0)
	if d%2 == 0 {
		return calculatePdEven(ber, d)
	}
	return calculatePdOdd(ber, d)
}

// ChunkSuccessFromBer returns the probability that nbits decoded bits are all correct, given the raw ber
// and the distance spectrum coefficients of the code. A ber of exactly 0 always yields 1.
func ChunkSuccessFromBer(ber float64, nbits uint64, c Coefficients) float64 {
	if ber == 0 || nbits == 0 {
		return 1
	}
	pmu := float64(c.AdFree) * CalculatePd(ber, c.DFree)
	if c.TwoTerm {
		pmu += float64(c.AdFreePlusOne) * CalculatePd(ber, c.DFree+1)
	}
	pmu = math.Min(pmu, 1.0)
	pms := math.Exp(float64(nbits) * math.Log1p(-pmu))
	logger.Tracef("fec ber=%v dfree=%d pmu=%v nbits=%d pms=%v", ber, c.DFree, pmu, nbits, pms)
	return pms
}
