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

package cli

import (
	"strconv"

	"github.com/alecthomas/participle"
	"github.com/pkg/errors"
)

// noinspection GoStructTag
type Command struct {
	Ber      *BerCmd      `  @@` //nolint
	Cache    *CacheCmd    `| @@` //nolint
	Chunk    *ChunkCmd    `| @@` //nolint
	Exit     *ExitCmd     `| @@` //nolint
	Help     *HelpCmd     `| @@` //nolint
	LogLevel *LogLevelCmd `| @@` //nolint
	Model    *ModelCmd    `| @@` //nolint
	Modes    *ModesCmd    `| @@` //nolint
	Pd       *PdCmd       `| @@` //nolint
	Receive  *ReceiveCmd  `| @@` //nolint
	Sweep    *SweepCmd    `| @@` //nolint
	Table    *TableCmd    `| @@` //nolint
}

// Number is a signed integer or floating point literal.
// noinspection GoStructTag
type Number struct {
	Val string `@("-"? (Int|Float))` //nolint
}

func (n *Number) Float() (float64, error) {
	f, err := strconv.ParseFloat(n.Val, 64)
	if err != nil {
		return 0, errors.Errorf("invalid number: %s", n.Val)
	}
	return f, nil
}

// noinspection GoStructTag
type ModeSelector struct {
	Name string `@Ident` //nolint
}

// noinspection GoStructTag
type SnrFlag struct {
	Dummy  struct{} `"snr"`      //nolint
	Value  Number   `@@`         //nolint
	Linear *string  `[ @"lin" ]` //nolint
}

// noinspection GoStructTag
type BitsFlag struct {
	Val int `("bits"|"nbits") @Int` //nolint
}

// noinspection GoStructTag
type WidthFlag struct {
	Val int `("width"|"bw") @Int` //nolint
}

// noinspection GoStructTag
type FieldFlag struct {
	Val string `"field" @Ident` //nolint
}

// noinspection GoStructTag
type PayloadFlag struct {
	Mode ModeSelector `"payload" @@` //nolint
}

// noinspection GoStructTag
type StaFlag struct {
	Val int `"sta" @Int` //nolint
}

// noinspection GoStructTag
type CountFlag struct {
	Val int `("count" | "c") @Int` //nolint
}

// noinspection GoStructTag
type BerCmd struct {
	Cmd   struct{}     `"ber"`  //nolint
	Mode  ModeSelector `@@`     //nolint
	Snr   SnrFlag      `@@`     //nolint
	Width *WidthFlag   `[ @@ ]` //nolint
}

// noinspection GoStructTag
type PdCmd struct {
	Cmd      struct{} `"pd"` //nolint
	Ber      Number   `@@`   //nolint
	Distance int      `@Int` //nolint
}

// noinspection GoStructTag
type TableCmd struct {
	Cmd struct{} `"table"` //nolint
}

// noinspection GoStructTag
type ModesCmd struct {
	Cmd   struct{}   `"modes"` //nolint
	Class *ClassFlag `( @@`    //nolint
	Width *WidthFlag `| @@ )*` //nolint
}

// noinspection GoStructTag
type ClassFlag struct {
	Val string `@("dsss"|"hrdsss"|"erp"|"ofdm"|"ht"|"vht"|"he"|"eht")` //nolint
}

// noinspection GoStructTag
type ChunkCmd struct {
	Cmd     struct{}     `"chunk"` //nolint
	Mode    ModeSelector `@@`      //nolint
	Snr     *SnrFlag     `( @@`    //nolint
	Bits    *BitsFlag    `| @@`    //nolint
	Width   *WidthFlag   `| @@`    //nolint
	Field   *FieldFlag   `| @@`    //nolint
	Payload *PayloadFlag `| @@`    //nolint
	Sta     *StaFlag     `| @@ )*` //nolint
}

// noinspection GoStructTag
type SweepCmd struct {
	Cmd   struct{}     `"sweep"`       //nolint
	Mode  ModeSelector `@@`            //nolint
	From  Number       `"from" @@`     //nolint
	To    Number       `"to" @@`       //nolint
	Step  *Number      `[ "step" @@ ]` //nolint
	Bits  *BitsFlag    `( @@`          //nolint
	Width *WidthFlag   `| @@ )*`       //nolint
}

// noinspection GoStructTag
type ReceiveCmd struct {
	Cmd   struct{}     `"receive"` //nolint
	Mode  ModeSelector `@@`        //nolint
	Snr   *SnrFlag     `( @@`      //nolint
	Bits  *BitsFlag    `| @@`      //nolint
	Width *WidthFlag   `| @@`      //nolint
	Count *CountFlag   `| @@ )*`   //nolint
}

// noinspection GoStructTag
type ModelCmd struct {
	Cmd   struct{} `"model"`         //nolint
	Model string   `[(@Ident|@Int)]` //nolint
}

// noinspection GoStructTag
type CacheCmd struct {
	Cmd   struct{}   `"cache"` //nolint
	Purge *PurgeFlag `[ @@ ]`  //nolint
}

// noinspection GoStructTag
type PurgeFlag struct {
	Dummy struct{} `"purge"` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                                                                //nolint
	Level string   `[@( "trace"|"debug"|"info"|"note"|"warn"|"error"|"crit"|"off"|"none"|"T"|"D"|"I"|"N"|"W"|"E"|"C" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}
