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
	"github.com/openthread/ot-wifi-per/logger"
	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

// YansErrorRateModel estimates chunk success from the BPSK/QAM bit error rate and a union bound on the
// error probability of the Viterbi-decoded convolutional code. Only coded OFDM modes are modeled.
type YansErrorRateModel struct {
	Name   string
	params ErrorModelParams
}

// NewYansErrorRateModel creates the model; params are copied.
func NewYansErrorRateModel(params *ErrorModelParams) *YansErrorRateModel {
	return &YansErrorRateModel{
		Name:   ModelNameYans,
		params: *params,
	}
}

func (m *YansErrorRateModel) GetName() string {
	return m.Name
}

func (m *YansErrorRateModel) ChunkSuccessRate(mode wifiphy.WifiMode, txVector *wifiphy.TxVector, snr float64,
	nbits uint64, field PpduField, staId StaId) (ChunkResult, error) {
	snr, err := validateCommon(&m.params, txVector, snr, field)
	if err != nil {
		return ChunkResult{}, err
	}
	if !mode.IsCodedOfdm() {
		logger.Tracef("yans: mode %s (%v) unmodeled", mode, mode.Class)
		return Unmodeled(), nil
	}
	coeffs, err := LookupCoefficients(mode.ConstellationSize, mode.CodeRate)
	if err != nil {
		return ChunkResult{}, err
	}
	if nbits == 0 {
		return Modeled(1), nil
	}

	phyRate := m.getPhyRate(mode, txVector, staId)
	if phyRate == 0 {
		return ChunkResult{}, invalidInputf("mode %s has no PHY rate at %d MHz", mode, txVector.GetChannelWidth())
	}

	var ber float64
	signalSpread := txVector.GetChannelWidth()
	if mode.ConstellationSize == 2 {
		ber = BpskBer(snr, signalSpread, phyRate)
	} else {
		ber = QamBer(snr, mode.ConstellationSize, signalSpread, phyRate)
	}
	if ber == 0 {
		return Modeled(1), nil
	}

	pms := ChunkSuccessFromBer(ber, nbits, coeffs)
	logger.Tracef("yans: mode=%s field=%v header=%v sta=%d snr=%v nbits=%d rate=%d ber=%v psuc=%v",
		mode, field, field.IsHeader(), staId, snr, nbits, phyRate, ber, pms)
	return Modeled(pms), nil
}

// getPhyRate returns the bit rate at which the chunk is sent. Fields not sent with the payload mode of the
// station (PHY headers, fields common to all users of a MU PPDU) use the narrow header channel width.
func (m *YansErrorRateModel) getPhyRate(mode wifiphy.WifiMode, txVector *wifiphy.TxVector, staId StaId) uint64 {
	if (txVector.IsMu() && staId == SuStaId) || mode != txVector.GetMode(staId) {
		width := txVector.GetChannelWidth()
		if width >= m.params.HeaderClampWidth {
			width = m.params.HeaderWidth
		}
		return mode.GetPhyRate(width)
	}
	return txVector.GetPhyRate(staId)
}
