package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerArguments(t *testing.T) {
	assert.Equal(t, []string{"-autoexit", "-loglevel", "warning", "-"}, playerArguments(nil))

	assert.Equal(t,
		[]string{"-autoexit", "-loglevel", "warning", "-nodisp", "-window_title", "Hello", "-"},
		playerArguments(&PlayerOptions{NoDisplay: true, Title: "Hello"}),
	)
}
