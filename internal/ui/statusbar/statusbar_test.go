package statusbar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdrift/taskdrift/internal/ui/styles"
)

func TestRenderCounts(t *testing.T) {
	s := styles.New()
	out := Render(State{Total: 12, Done: 3, CompletionPct: 25}, 120, s)

	assert.Contains(t, out, "12 tasks")
	assert.Contains(t, out, "3 done (25%)")
	assert.Contains(t, out, "q quit")
	assert.NotContains(t, out, "⚠")
}

func TestRenderWarnings(t *testing.T) {
	s := styles.New()
	out := Render(State{Total: 5, ParseFailed: 1, Findings: 2}, 120, s)

	assert.Contains(t, out, "1 failed / 2 findings")
}
