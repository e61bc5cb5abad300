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

package types

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DbValue is a value in dB or dBm.
type DbValue = float64

// MHz is a channel width or signal spread in MHz.
type MHz = uint16

// StaId identifies a station (user) inside a multi-user PPDU.
type StaId = uint16

const (
	// SuStaId is the station id used for single-user transmissions and for fields common to all users.
	SuStaId StaId = 65535
)

// RatioToDb converts a linear power ratio to dB. A ratio <= 0 maps to -Inf.
func RatioToDb(ratio float64) DbValue {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 10.0 * math.Log10(ratio)
}

// DbToRatio converts dB to a linear power ratio.
func DbToRatio(db DbValue) float64 {
	return math.Pow(10, db/10.0)
}

// PpduField identifies the portion of a PPDU that a chunk belongs to.
type PpduField byte

const (
	PpduFieldPreamble    PpduField = 0 // training fields and L-SIG/RL-SIG
	PpduFieldNonHtHeader PpduField = 1 // non-HT (legacy) PHY header
	PpduFieldHtSig       PpduField = 2
	PpduFieldTraining    PpduField = 3
	PpduFieldSigA        PpduField = 4
	PpduFieldSigB        PpduField = 5
	PpduFieldUSig        PpduField = 6
	PpduFieldEhtSig      PpduField = 7
	PpduFieldData        PpduField = 8
)

var ppduFieldNames = []string{"preamble", "header", "ht_sig", "training", "sig_a", "sig_b", "u_sig", "eht_sig", "data"}

func (f PpduField) String() string {
	if f.IsValid() {
		return ppduFieldNames[f]
	}
	return "invalid(" + strconv.Itoa(int(f)) + ")"
}

func (f PpduField) IsValid() bool {
	return int(f) < len(ppduFieldNames)
}

// IsHeader returns true for every field that is not the data (payload) field.
func (f PpduField) IsHeader() bool {
	return f != PpduFieldData
}

// ParsePpduField parses a field name as produced by PpduField.String().
func ParsePpduField(s string) (PpduField, error) {
	s = strings.ToLower(s)
	for i, name := range ppduFieldNames {
		if name == s {
			return PpduField(i), nil
		}
	}
	return PpduFieldData, errors.Errorf("invalid PPDU field: %s", s)
}
