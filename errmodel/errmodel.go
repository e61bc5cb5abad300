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

// Package errmodel implements Wi-Fi PHY error rate models: given a mode, transmission parameters, the SNR
// and the size of a chunk, they estimate the probability that the chunk is received without error.
package errmodel

import (
	"strings"

	"github.com/pkg/errors"

	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

// ErrorRateModel is implemented by all error rate models. Implementations in this package are stateless
// and safe for concurrent use.
type ErrorRateModel interface {
	// GetName returns the model name.
	GetName() string

	// ChunkSuccessRate returns the probability that nbits bits of the given PPDU field, sent with mode, are
	// received without error at the linear snr. staId selects the user of a MU PPDU (SuStaId otherwise).
	ChunkSuccessRate(mode wifiphy.WifiMode, txVector *wifiphy.TxVector, snr float64, nbits uint64,
		field PpduField, staId StaId) (ChunkResult, error)
}

const (
	ModelNameYans      = "Yans"
	ModelNameThreshold = "Threshold"
)

// Create creates the error rate model with the given name. A nil params uses the defaults.
func Create(modelName string, params *ErrorModelParams) (ErrorRateModel, error) {
	if params == nil {
		params = NewErrorModelParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(modelName) {
	case "yans", "default", "1":
		return NewYansErrorRateModel(params), nil
	case "threshold", "2":
		return NewThresholdErrorRateModel(params), nil
	default:
		return nil, errors.Errorf("unknown error rate model: %s", modelName)
	}
}

// validateCommon checks the inputs every model needs and applies the negative SNR policy.
func validateCommon(params *ErrorModelParams, txVector *wifiphy.TxVector, snr float64, field PpduField) (float64, error) {
	if !field.IsValid() {
		return 0, invalidInputf("PPDU field %d", field)
	}
	if txVector == nil {
		return 0, invalidInputf("nil TxVector")
	}
	if err := txVector.Validate(); err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "TxVector: %v", err)
	}
	return params.checkSnr(snr)
}
