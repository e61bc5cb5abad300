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

	"github.com/openthread/ot-wifi-per/logger"
	. "github.com/openthread/ot-wifi-per/types"
)

// ebNo converts an SNR to Eb/No, spreading the signal over signalSpread for a bit rate of phyRate.
func ebNo(snr float64, signalSpread MHz, phyRate uint64) float64 {
	return snr * float64(signalSpread) * 1e6 / float64(phyRate)
}

// BpskBer returns the raw bit error rate of BPSK for a linear snr >= 0.
func BpskBer(snr float64, signalSpread MHz, phyRate uint64) float64 {
	logger.AssertTrue(snr >= 0 && phyRate > 0)
	z := math.Sqrt(ebNo(snr, signalSpread, phyRate))
	ber := 0.5 * math.Erfc(z)
	logger.Tracef("bpsk snr=%v ber=%v", snr, ber)
	return ber
}

// QamBer returns the raw bit error rate of square M-QAM (M >= 4) for a linear snr >= 0.
func QamBer(snr float64, m uint16, signalSpread MHz, phyRate uint64) float64 {
	logger.AssertTrue(snr >= 0 && phyRate > 0 && m >= 4)
	fm := float64(m)
	log2m := math.Log2(fm)
	z := math.Sqrt((1.5 * log2m * ebNo(snr, signalSpread, phyRate)) / (fm - 1.0))
	z1 := (1.0 - 1.0/math.Sqrt(fm)) * math.Erfc(z)
	z2 := 1 - math.Pow(1-z1, 2)
	ber := z2 / log2m
	logger.Tracef("qam m=%d rate=%d snr=%v ber=%v", m, phyRate, snr, ber)
	return ber
}
