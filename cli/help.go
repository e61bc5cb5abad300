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
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/openthread/ot-wifi-per/logger"
)

const (
	defaultTermWidth = 80
	helpIndent       = "  "
)

// Help renders the CLI reference embedded from README.md.
type Help struct {
	termWidth     uint
	commands      map[string]string
	commandsShort map[string]string
}

var (
	cmdHeaderPattern  = regexp.MustCompile("^### .+")
	linkTargetPattern = regexp.MustCompile(`\(#[a-z]+\)`)
)

//go:embed README.md
var cliHelpFile string

func newHelp() Help {
	h := Help{
		termWidth:     defaultTermWidth,
		commands:      make(map[string]string),
		commandsShort: make(map[string]string),
	}
	h.parseHelpFile()
	h.update()
	return h
}

// update takes the current terminal width into account, if stdout is a terminal.
func (help *Help) update() {
	fdTerm := int(os.Stdout.Fd()) // Windows platform requires cast to int.
	if !term.IsTerminal(fdTerm) {
		return
	}
	width, _, err := term.GetSize(fdTerm)
	if err != nil {
		logger.Warnf("could not get terminal size: %v", err)
		return
	}
	help.termWidth = uint(width)
}

// outputGeneralHelp returns the short help of all commands.
func (help *Help) outputGeneralHelp() string {
	cmds := make([]string, 0, len(help.commandsShort))
	for k := range help.commandsShort {
		cmds = append(cmds, k)
	}
	sort.Strings(cmds)

	var sb strings.Builder
	for _, c := range cmds {
		sb.WriteString(fmt.Sprintf("%-10s %s\n", c, help.commandsShort[c]))
	}
	sb.WriteString(wordwrap.WrapString("\nFor detailed help per command, use: 'help <command>'\n", help.termWidth))
	return sb.String()
}

// outputCommandHelp returns the full help of one command.
func (help *Help) outputCommandHelp(command string) string {
	help.update()
	explanation, ok := help.commands[command]
	if !ok {
		return fmt.Sprintf("%s\n%s(Non-existent command.)\n", command, helpIndent)
	}

	var sb strings.Builder
	w := help.termWidth - uint(len(helpIndent))
	for _, line := range strings.Split(wordwrap.WrapString(explanation, w), "\n") {
		if line == command {
			sb.WriteString(line + "\n")
		} else {
			sb.WriteString(helpIndent + line + "\n")
		}
	}
	return sb.String()
}

func (help *Help) parseHelpFile() {
	indentString := "    "
	activeCmd := ""
	indent := 0
	for _, line := range strings.Split(cliHelpFile, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case line == "```bash":
			line = "\nExample:"
			indent = 2
		case line == "```shell":
			line = "\nDefinition:"
			indent = 2
		case line == "```":
			line = ""
			indent = 0
		case cmdHeaderPattern.MatchString(line):
			activeCmd = strings.TrimSpace(line[strings.Index(line, " ")+1:])
			help.commands[activeCmd] = ""
			help.commandsShort[activeCmd] = ""
			line = activeCmd
			indent = 0
		}

		if len(activeCmd) == 0 {
			continue
		}
		help.commands[activeCmd] += indentString[0:indent] + markdownUnquote(line) + "\n"
		if line != activeCmd && len(help.commandsShort[activeCmd]) == 0 {
			firstSentence := line
			if idx := strings.Index(line, "."); idx > 0 {
				firstSentence = line[:idx+1]
			}
			help.commandsShort[activeCmd] = markdownUnquote(firstSentence)
		}
	}
}

func markdownUnquote(md string) string {
	md = strings.ReplaceAll(md, "\\", "")
	md = strings.ReplaceAll(md, "`", "")
	md = linkTargetPattern.ReplaceAllString(md, "")
	return md
}
