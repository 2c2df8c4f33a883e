package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioA = `{"name":"Ravi Kumar","gender":"male","bloodGroup":"B+","location":"Chennai",
"role":"donor","phone":"98765 43210","email":"ravi@example.in"}`

func TestCheck_Accepted(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, check(strings.NewReader(scenarioA), &out, "registration"))
	assert.Contains(t, out.String(), `"phone": "9876543210"`)
	assert.Contains(t, out.String(), `"bloodGroup": "B+"`)
}

func TestCheck_Rejected(t *testing.T) {
	var out bytes.Buffer
	err := check(strings.NewReader(`{"name":"Ravi","gender":""}`), &out, "registration")
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "rejected: gender (missing selection): Please select your gender\n", out.String())
}

func TestCheck_Subscription(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, check(strings.NewReader(`{"email":"a@b.co"}`), &out, "subscription"))
	assert.Contains(t, out.String(), `"email": "a@b.co"`)

	out.Reset()
	assert.ErrorIs(t, check(strings.NewReader(`{"email":"a@b"}`), &out, "subscription"), errRejected)
}

func TestCheck_BadInput(t *testing.T) {
	assert.ErrorContains(t, check(strings.NewReader(`[1]`), &bytes.Buffer{}, "registration"), "decode input")
	assert.ErrorContains(t, check(strings.NewReader(`{}`), &bytes.Buffer{}, "feedback"), "unknown form")
}

func TestCheckCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg.json")
	require.NoError(t, os.WriteFile(path, []byte(scenarioA), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"check", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"name": "Ravi Kumar"`)
}

func TestCheckCmd_Stdin(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`{"email":"x"}`))
	cmd.SetArgs([]string{"check", "--form", "subscription"})
	assert.ErrorIs(t, cmd.Execute(), errRejected)
	assert.Contains(t, out.String(), "Please enter a valid email address")
}
