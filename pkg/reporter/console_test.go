package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel(t *testing.T) {
	got := panel("Step 1", "Get Org ID")
	want := strings.Join([]string{
		"╭── Step 1 ──╮",
		"│ Get Org ID │",
		"╰────────────╯",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestPanelWithoutTitle(t *testing.T) {
	got := panel("", "Meraki VPN Exclusion Tool")
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "│ Meraki VPN Exclusion Tool │", lines[1])
	assert.Equal(t, len([]rune(lines[0])), len([]rune(lines[1])))
}

func TestConsoleNonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Step(2, "Get Appliance Networks")
	c.Successf("Successfully added %d exclusion rules!", 3)
	c.Errorf("Error: %s", "boom")
	c.NetworkStarted("Branch 1", 1, 2)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "Step 2")
	assert.Contains(t, out, "Successfully added 3 exclusion rules!\n")
	assert.Contains(t, out, "Error: boom\n")
	assert.Contains(t, out, "Processing Network: Branch 1 (1 of 2)\n")
}

func TestProgressCounter(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	assert.Equal(t, -1, c.Completed())
	c.StartProgress(2)
	c.Advance()
	c.Advance()
	c.Advance()
	assert.Equal(t, 2, c.Completed())
	c.StopProgress()
	assert.Equal(t, -1, c.Completed())

	// nothing is drawn when the output is not a terminal
	assert.Empty(t, buf.String())
}

func TestProgressRender(t *testing.T) {
	p := &progress{total: 4, done: 1}
	assert.Equal(t, "Overall Progress [#######-----------------------] 1/4", p.render())

	p = &progress{total: 0}
	assert.Equal(t, "Overall Progress [##############################] 0/0", p.render())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	err := c.Table(
		[]string{"ID", "Name"},
		[][]string{{"N_1", "Branch 1"}, {"N_2", "Branch 2"}},
	)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "NAME")
	assert.Contains(t, out, "N_1")
	assert.Contains(t, out, "Branch 2")
}
