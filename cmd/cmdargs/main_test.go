package main

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func runTest(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Once(t *testing.T) {
	tests := map[string]struct {
		args   []string
		code   int
		stdout string
		stderr string
	}{
		"Roll one-sided dice": {
			args:   []string{"roll", "d1", "3"},
			stdout: "3\n",
		},
		"Roll defaults": {
			args:   []string{"dice", "-sides:ignored", "d1"},
			stdout: "1\n",
		},
		"Bad die": {
			args:   []string{"roll", "d0"},
			code:   1,
			stderr: "Error: failed to coerce value: invalid die 'd0'\n",
		},
		"Quoted flag": {
			args:   []string{"say", "-msg:'hello", "there'", "-upper", "x"},
			stdout: "HELLO THERE X\n",
		},
		"Custom prefix": {
			args:   []string{"--lexer-prefix", "+", "flags", "+name:'a b'", "+v", "rest"},
			stdout: "name=\"a b\"\nv=true\nextra: rest\n",
		},
		"Unclaimed tokens": {
			args:   []string{"repeat", "hi", "3", "junk"},
			stdout: "hi hi hi\n",
			stderr: "extra arguments ignored: junk\n",
		},
		"Unclaimed tokens not reported": {
			args:   []string{"--report-extra=false", "repeat", "hi", "3", "junk"},
			stdout: "hi hi hi\n",
		},
		"Too many dice": {
			args:   []string{"roll", "9999999999999"},
			code:   1,
			stderr: "Error: count must be between 1 and 1000, got 9999999999999\n",
		},
		"Most dice": {
			args:   []string{"roll", "1000", "d1"},
			stdout: "1000\n",
		},
		"Too many repeats": {
			args:   []string{"repeat", "9999999999999", "x"},
			code:   1,
			stderr: "Error: times must be between 0 and 1000, got 9999999999999\n",
		},
		"Unknown command": {
			args:   []string{"rol", "2"},
			code:   1,
			stderr: "Error: unknown command: rol (did you mean 'roll'?)\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			code, stdout, stderr := runTest(t, "", tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.stdout, stdout)
			assert.Equal(t, tc.stderr, stderr)
		})
	}
}

func TestRun_VerboseRoll(t *testing.T) {
	code, stdout, _ := runTest(t, "", "roll", "2", "-seed:7", "-v")
	assert.Equal(t, 0, code)
	assert.Regexp(t, `^[1-6] \+ [1-6] = \d+\n$`, stdout)

	_, again, _ := runTest(t, "", "roll", "-v", "2", "-seed:7")
	assert.Equal(t, stdout, again, "The same seed gives the same rolls")
}

func TestRun_Strict(t *testing.T) {
	code, stdout, stderr := runTest(t, "", "echo", "-msg:'open")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\n", stdout, "Lenient lexing absorbs the unterminated value")
	assert.Empty(t, stderr)

	code, _, stderr = runTest(t, "", "--strict", "echo", "-msg:'open")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unterminated quote")
}

func TestRun_Shell(t *testing.T) {
	input := "roll 2 d1\nrepeat\nfoo -x\nbye\nroll\n"
	code, stdout, stderr := runTest(t, input, "--quit", "bye")
	assert.Equal(t, 0, code)
	assert.Equal(t, "2\n", stdout)
	assert.Contains(t, stderr, "Error: missing argument: 'word'")
	assert.Contains(t, stderr, "unknown command: foo")
}

func TestRun_Options(t *testing.T) {
	code, _, stderr := runTest(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Usage: cmdargs [options] [command [args...]]")
	assert.Contains(t, stderr, "--lexer-prefix")

	code, _, _ = runTest(t, "", "--unknown-option")
	assert.Equal(t, 2, code)

	code, _, stderr = runTest(t, "", "--lexer-prefix", ":")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error loading configuration")
	assert.Contains(t, stderr, "lexer prefix and delimiter are both ':'")

	code, _, stderr = runTest(t, "", "--log-level", "loud")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown log level 'loud'")
}
