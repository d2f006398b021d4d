package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-op", "clamp_magnitude", "-args", "5, 2"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "(-2)\n", stdout.String())
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-op", "to_vec3", "-args", "7", "-json"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.JSONEq(t, `{"op":"to_vec3","kind":"vec3","values":[7,0,0],"text":"(7, 0, 0)"}`, stdout.String())
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run([]string{"-op", "div", "-args", "4,0"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "division by zero")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"-args", "1"}, &stdout, &stderr))

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"-op", "new", "-args", "x"}, &stdout, &stderr))
}

func TestRunList(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"-list"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "clamp_magnitude")
	assert.Contains(t, stdout.String(), "back")
}

func TestParseArgs(t *testing.T) {
	numbers, err := parseArgs("1, -Inf,NaN")
	require.NoError(t, err)
	require.Len(t, numbers, 3)
	assert.Equal(t, 1.0, numbers[0].Float64())
	assert.True(t, math.IsInf(numbers[1].Float64(), -1))
	assert.True(t, math.IsNaN(numbers[2].Float64()))

	numbers, err = parseArgs("")
	require.NoError(t, err)
	assert.Empty(t, numbers)
}
