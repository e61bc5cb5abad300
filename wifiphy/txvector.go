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

package wifiphy

import (
	"github.com/pkg/errors"

	. "github.com/openthread/ot-wifi-per/types"
)

// TxVector holds the transmission parameters of a PPDU, as far as the error models need them.
type TxVector struct {
	// Mode is the SU payload mode, or for MU PPDUs the mode of the fields common to all users.
	Mode WifiMode

	// ChannelWidth is the width of the whole PPDU; it is also the signal spread used for Eb/No.
	ChannelWidth MHz

	// MuUsers holds the per-user payload modes of a MU PPDU; nil for SU.
	MuUsers map[StaId]WifiMode
}

// NewSuTxVector creates a single-user TxVector.
func NewSuTxVector(mode WifiMode, width MHz) *TxVector {
	return &TxVector{
		Mode:         mode,
		ChannelWidth: width,
	}
}

// NewMuTxVector creates a multi-user TxVector. The users map is copied.
func NewMuTxVector(commonMode WifiMode, width MHz, users map[StaId]WifiMode) *TxVector {
	tx := &TxVector{
		Mode:         commonMode,
		ChannelWidth: width,
		MuUsers:      make(map[StaId]WifiMode, len(users)),
	}
	for sta, m := range users {
		tx.MuUsers[sta] = m
	}
	return tx
}

// IsMu returns true for multi-user PPDUs.
func (tx *TxVector) IsMu() bool {
	return len(tx.MuUsers) > 0
}

// GetMode returns the payload mode used for the given station. Stations not addressed by a MU PPDU, and
// SuStaId, get the common mode.
func (tx *TxVector) GetMode(staId StaId) WifiMode {
	if tx.IsMu() {
		if m, ok := tx.MuUsers[staId]; ok {
			return m
		}
	}
	return tx.Mode
}

// GetChannelWidth returns the PPDU channel width.
func (tx *TxVector) GetChannelWidth() MHz {
	return tx.ChannelWidth
}

// GetPhyRate returns the payload PHY rate of the given station.
func (tx *TxVector) GetPhyRate(staId StaId) uint64 {
	return tx.GetMode(staId).GetPhyRate(tx.ChannelWidth)
}

// Validate checks the TxVector for structural errors.
func (tx *TxVector) Validate() error {
	if tx.ChannelWidth == 0 {
		return errors.Errorf("channel width must be > 0")
	}
	if _, ok := tx.MuUsers[SuStaId]; ok {
		return errors.Errorf("station id %d is reserved for SU", SuStaId)
	}
	return nil
}
