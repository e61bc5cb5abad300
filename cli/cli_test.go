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
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-wifi-per/config"
	"github.com/openthread/ot-wifi-per/errmodel"
	"github.com/openthread/ot-wifi-per/logger"
	"github.com/openthread/ot-wifi-per/percache"
	"github.com/openthread/ot-wifi-per/progctx"
	. "github.com/openthread/ot-wifi-per/types"
	"github.com/openthread/ot-wifi-per/wifiphy"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("ber HtMcs7 snr 20"), &cmd))
	assert.True(t, cmd.Ber != nil && cmd.Ber.Mode.Name == "HtMcs7" && cmd.Ber.Snr.Value.Val == "20")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("ber OfdmRate6Mbps snr 0.5 lin width 10"), &cmd))
	assert.True(t, cmd.Ber.Snr.Linear != nil && cmd.Ber.Width.Val == 10)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("pd 0.1 5"), &cmd))
	assert.True(t, cmd.Pd != nil && cmd.Pd.Ber.Val == "0.1" && cmd.Pd.Distance == 5)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("pd 1e-3 10"), &cmd))
	assert.Equal(t, "1e-3", cmd.Pd.Ber.Val)

	assert.True(t, parseBytes([]byte("table"), &cmd) == nil && cmd.Table != nil)
	assert.True(t, parseBytes([]byte("modes"), &cmd) == nil && cmd.Modes != nil)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("modes he width 160"), &cmd))
	assert.True(t, cmd.Modes.Class.Val == "he" && cmd.Modes.Width.Val == 160)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("modes width 40"), &cmd))
	assert.True(t, cmd.Modes.Class == nil && cmd.Modes.Width.Val == 40)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("chunk HtMcs7 snr -3 bits 1000"), &cmd))
	assert.Equal(t, "-3", cmd.Chunk.Snr.Value.Val)
	assert.Equal(t, 1000, cmd.Chunk.Bits.Val)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("chunk HtMcs0 bits 24 field ht_sig payload HtMcs7 width 40 snr 5 sta 3"), &cmd))
	assert.Equal(t, "ht_sig", cmd.Chunk.Field.Val)
	assert.Equal(t, "HtMcs7", cmd.Chunk.Payload.Mode.Name)
	assert.Equal(t, 3, cmd.Chunk.Sta.Val)
	assert.Equal(t, "5", cmd.Chunk.Snr.Value.Val)
	assert.NotNil(t, parseBytes([]byte("chunk snr 5"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("sweep VhtMcs9 from -5 to 30.5 step 0.5 bits 8000 width 80"), &cmd))
	assert.True(t, cmd.Sweep.From.Val == "-5" && cmd.Sweep.To.Val == "30.5" && cmd.Sweep.Step.Val == "0.5")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("sweep HeMcs0 from 0 to 10"), &cmd))
	assert.Nil(t, cmd.Sweep.Step)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("receive HtMcs5 snr 17 bits 8000 count 1000"), &cmd))
	assert.Equal(t, 1000, cmd.Receive.Count.Val)

	cmd = Command{}
	assert.True(t, parseBytes([]byte("model"), &cmd) == nil && cmd.Model != nil && cmd.Model.Model == "")
	assert.True(t, parseBytes([]byte("model threshold"), &cmd) == nil && cmd.Model.Model == "threshold")
	cmd = Command{}
	assert.True(t, parseBytes([]byte("model 2"), &cmd) == nil && cmd.Model.Model == "2")

	cmd = Command{}
	assert.True(t, parseBytes([]byte("cache"), &cmd) == nil && cmd.Cache != nil && cmd.Cache.Purge == nil)
	assert.True(t, parseBytes([]byte("cache purge"), &cmd) == nil && cmd.Cache.Purge != nil)

	assert.True(t, parseBytes([]byte("log"), &cmd) == nil && cmd.LogLevel != nil)
	assert.True(t, parseBytes([]byte("log debug"), &cmd) == nil && cmd.LogLevel != nil)
	assert.True(t, parseBytes([]byte("log W"), &cmd) == nil && cmd.LogLevel != nil)
	assert.NotNil(t, parseBytes([]byte("log loud"), &cmd))

	assert.True(t, parseBytes([]byte("help"), &cmd) == nil && cmd.Help != nil)
	assert.True(t, parseBytes([]byte("help chunk"), &cmd) == nil && cmd.Help.HelpTopic == "chunk")
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)
}

func newTestRunner(t *testing.T, cfg *config.Config) *CmdRunner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	metrics, err := percache.NewMetrics(prometheus.NewRegistry())
	assert.Nil(t, err)
	rt, err := NewCmdRunner(progctx.New(context.Background()), cfg, metrics)
	assert.Nil(t, err)
	return rt
}

func run(t *testing.T, rt *CmdRunner, cmdline string) string {
	var out bytes.Buffer
	assert.Nil(t, rt.RunCommand(cmdline, &out))
	return out.String()
}

func firstFloat(t *testing.T, output string) float64 {
	f, err := strconv.ParseFloat(strings.SplitN(output, "\n", 2)[0], 64)
	assert.Nil(t, err, output)
	return f
}

func TestBerAndPdCommands(t *testing.T) {
	rt := newTestRunner(t, nil)

	assert.Equal(t, "0.5\nDone\n", run(t, rt, "ber OfdmRate6Mbps snr 0 lin"))
	assert.Equal(t, "0.1640625\nDone\n", run(t, rt, "ber HtMcs7 snr 0 lin"))
	assert.InDelta(t, errmodel.BpskBer(DbToRatio(3), 20, 12000000), firstFloat(t, run(t, rt, "ber OfdmRate6Mbps snr 3")), 1e-15)

	assert.True(t, strings.HasPrefix(run(t, rt, "ber HtMcs7 snr -1 lin"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "ber HtMcs7 snr 10 width 320"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "ber NoSuchMode snr 10"), "Error: "))

	out := run(t, rt, "pd 0.1 5")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
	assert.InDelta(t, 0.00855, firstFloat(t, out), 1e-15)
	assert.True(t, strings.HasPrefix(run(t, rt, "pd 1.5 5"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "pd 0.1 0"), "Error: "))
}

func TestTableAndModesCommands(t *testing.T) {
	rt := newTestRunner(t, nil)

	out := run(t, rt, "table")
	lines := strings.Split(strings.TrimSuffix(out, "Done\n"), "\n")
	lines = lines[:len(lines)-1] // trailing newline of the YAML
	assert.Len(t, lines, 15)
	assert.Contains(t, lines[0], "m: 2")
	assert.Contains(t, lines[0], "dfree: 10, ad-free: 11}")
	assert.Contains(t, out, "dfree: 4, ad-free: 14, ad-free-plus-one: 69}")
	assert.Contains(t, out, "rate: other")

	out = run(t, rt, "modes vht width 80")
	assert.Equal(t, 10, strings.Count(out, "name: VhtMcs"))
	assert.Contains(t, out, "name: VhtMcs0")
	assert.Contains(t, out, "phy-rate: 58500000")
	assert.NotContains(t, out, "HtMcs")
}

func TestChunkCommand(t *testing.T) {
	rt := newTestRunner(t, nil)

	assert.Equal(t, "unmodeled\nDone\n", run(t, rt, "chunk DsssRate11Mbps snr 10 bits 1000"))
	assert.Equal(t, "1\nDone\n", run(t, rt, "chunk HtMcs0 snr 10 bits 0"))
	assert.Equal(t, "Error: snr is required\n", run(t, rt, "chunk HtMcs7 bits 100"))
	assert.Equal(t, "Error: bits is required\n", run(t, rt, "chunk HtMcs7 snr 25"))
	assert.True(t, strings.HasPrefix(run(t, rt, "chunk HtMcs7 snr -1 lin bits 10"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "chunk HtMcs7 snr 10 bits 10 field payload"), "Error: "))

	yans := errmodel.NewYansErrorRateModel(errmodel.NewErrorModelParams())
	header, _ := wifiphy.LookupMode("HtMcs0")
	payload, _ := wifiphy.LookupMode("HtMcs7")
	expected, err := yans.ChunkSuccessRate(header, wifiphy.NewSuTxVector(payload, 40), DbToRatio(5), 24,
		PpduFieldHtSig, SuStaId)
	assert.Nil(t, err)
	assert.Equal(t, expected.String()+"\nDone\n",
		run(t, rt, "chunk HtMcs0 snr 5 bits 24 field ht_sig payload HtMcs7 width 40"))

	he5, _ := wifiphy.LookupMode("HeMcs5")
	he0, _ := wifiphy.LookupMode("HeMcs0")
	mu := wifiphy.NewMuTxVector(he0, 80, map[StaId]wifiphy.WifiMode{4: he5})
	expected, err = yans.ChunkSuccessRate(he0, mu, DbToRatio(20), 52, PpduFieldSigA, 4)
	assert.Nil(t, err)
	assert.Equal(t, expected.String()+"\nDone\n",
		run(t, rt, "chunk HeMcs0 snr 20 bits 52 field sig_a payload HeMcs5 width 80 sta 4"))
}

func TestSweepCommand(t *testing.T) {
	rt := newTestRunner(t, nil)

	out := run(t, rt, "sweep HtMcs0 from 0 to 10 step 2")
	assert.Equal(t, 6+1, strings.Count(out, "\n"))
	assert.Contains(t, out, "- {snr: 0, p: ")
	assert.Contains(t, out, "- {snr: 10, p: 1}")

	out = run(t, rt, "sweep DsssRate1Mbps from 0 to 1")
	assert.Contains(t, out, "p: unmodeled")

	assert.True(t, strings.HasPrefix(run(t, rt, "sweep HtMcs0 from 10 to 0"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "sweep HtMcs0 from 0 to 10 step 0"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "sweep HtMcs0 from 0 to 100000 step 0.001"), "Error: "))
}

func TestReceiveCommand(t *testing.T) {
	rt := newTestRunner(t, nil)

	assert.Equal(t, "{received: 10, count: 10, ratio: 1, probability: 1}\nDone\n",
		run(t, rt, "receive HtMcs0 snr 40 bits 100 count 10"))
	assert.Equal(t, "{received: 0, count: 3, ratio: 0, probability: 0}\nDone\n",
		run(t, rt, "receive HtMcs7 snr 0 lin bits 100 count 3"))
	assert.True(t, strings.HasPrefix(run(t, rt, "receive DsssRate1Mbps snr 10 bits 100"), "Error: "))
	assert.True(t, strings.HasPrefix(run(t, rt, "receive HtMcs0 snr 10 bits 100 count 0"), "Error: "))
}

func TestModelAndCacheCommands(t *testing.T) {
	rt := newTestRunner(t, nil)

	assert.Equal(t, "Yans\nDone\n", run(t, rt, "model"))
	run(t, rt, "chunk HtMcs3 snr 12 bits 1000")
	run(t, rt, "chunk HtMcs3 snr 12 bits 1000")
	assert.Equal(t, "{hits: 1, misses: 1, bypasses: 0, entries: 1}\nDone\n", run(t, rt, "cache"))
	assert.Equal(t, "Done\n", run(t, rt, "cache purge"))
	assert.Equal(t, 0, rt.cache.Len())

	assert.Equal(t, "Threshold\nDone\n", run(t, rt, "model threshold"))
	assert.Equal(t, errmodel.ModelNameThreshold, rt.Model().GetName())
	assert.Equal(t, "1\nDone\n", run(t, rt, "chunk DsssRate1Mbps snr 10 bits 1000"))
	assert.True(t, strings.HasPrefix(run(t, rt, "model nist"), "Error: "))
	assert.Equal(t, "Threshold\nDone\n", run(t, rt, "model"))

	cfg := config.DefaultConfig()
	cfg.Cache.Enabled = false
	rt = newTestRunner(t, cfg)
	assert.Equal(t, "Error: cache is disabled\n", run(t, rt, "cache"))
}

func TestLogAndHelpCommands(t *testing.T) {
	old := logger.GetLevel()
	defer logger.SetLevel(old)

	rt := newTestRunner(t, nil)
	assert.Equal(t, "Done\n", run(t, rt, "log debug"))
	assert.Equal(t, logger.DebugLevel, logger.GetLevel())
	assert.Equal(t, "debug\nDone\n", run(t, rt, "log"))

	out := run(t, rt, "help")
	for _, c := range []string{"ber", "cache", "chunk", "exit", "help", "log", "model", "modes", "pd", "receive",
		"sweep", "table"} {
		assert.Contains(t, out, c+" ")
	}
	out = run(t, rt, "help chunk")
	assert.True(t, strings.HasPrefix(out, "chunk\n"))
	assert.Contains(t, out, "Definition:")
	assert.Contains(t, run(t, rt, "help nothing"), "Non-existent command")
}

func TestExitCommand(t *testing.T) {
	rt := newTestRunner(t, nil)
	assert.True(t, strings.HasPrefix(run(t, rt, "wrongcmd"), "Error: "))

	var out bytes.Buffer
	err := rt.RunCommand("exit", &out)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, "Done\n", out.String())

	out.Reset()
	err = rt.RunCommand("table", &out)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, "", out.String())
}
