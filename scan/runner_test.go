package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binpat/memory"
)

func TestRun_EndToEnd(t *testing.T) {
	space := memory.NewBuffer(0x1000, []byte{0x48, 0x8B, 0x05, 0x00, 0x01, 0x02, 0x03})
	p := mustParse(t, "48 8B ?? ?? ?? 02 03")

	res := Run(NewTask("e2e"), space, p, Options{})
	require.NotNil(t, res)

	assert.Equal(t, []uint64{0x1000}, res.Addresses)
	assert.False(t, res.Truncated)
	assert.Equal(t, 7, res.PatternLen)
	assert.Equal(t, 1, res.Runs)
	assert.Equal(t, "48 8B ?? ?? ?? 02 03", res.PatternText)
}

func TestRun_Idempotent(t *testing.T) {
	im := memory.NewImage()
	im.Add(0x1000, []byte{0xAA, 0xAA, 0x00, 0xAA})
	im.Add(0x2000, []byte{0xAA})
	p := mustParse(t, "AA")

	first := Run(NewTask("a"), im, p, Options{})
	second := Run(NewTask("b"), im, p, Options{})
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, first.Addresses, second.Addresses)
	assert.Equal(t, []uint64{0x1000, 0x1001, 0x1003, 0x2000}, first.Addresses)
}

func TestRun_Truncation(t *testing.T) {
	im := memory.NewImage()
	im.Add(0x1000, make([]byte, 50)) // 50 zero bytes: 50 matches
	p := mustParse(t, "00")

	res := Run(NewTask("trunc"), im, p, Options{MaxResults: 10})
	require.NotNil(t, res)

	assert.True(t, res.Truncated)
	require.Len(t, res.Addresses, 10)
	// The retained set is the sorted prefix of the full match set.
	for i, addr := range res.Addresses {
		assert.Equal(t, uint64(0x1000+i), addr)
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	space := memory.NewBuffer(0x1000, []byte{0xAA})
	p := mustParse(t, "AA")

	task := NewTask("cancel")
	task.Cancel()

	res := Run(task, space, p, Options{})
	assert.Nil(t, res, "cancelled scan must not produce a result")
	assert.Equal(t, StateCancelled, task.State())
}

func TestRun_StateMachine(t *testing.T) {
	space := memory.NewBuffer(0x1000, []byte{0xAA})
	p := mustParse(t, "AA")

	task := NewTask("states")
	assert.Equal(t, StateCreated, task.State())

	res := Run(task, space, p, Options{})
	require.NotNil(t, res)
	assert.Equal(t, StateCompleted, task.State())
	assert.False(t, task.Started().IsZero())
}

func TestRun_MultipleRuns(t *testing.T) {
	space := memory.NewBuffer(0x1000, []byte{0xAA, 0x00, 0xAA})
	p := mustParse(t, "AA")

	res := Run(NewTask("bench"), space, p, Options{Runs: 3})
	require.NotNil(t, res)

	assert.Equal(t, 3, res.Runs)
	assert.Equal(t, []uint64{0x1000, 0x1002}, res.Addresses)
}

func TestCompile(t *testing.T) {
	t.Run("token form", func(t *testing.T) {
		p, display, err := Compile("48 8B ?? 05", "")
		require.NoError(t, err)
		assert.Equal(t, "48 8B ?? 05", display)
		assert.Equal(t, 4, p.Len())
	})

	t.Run("byte+mask form", func(t *testing.T) {
		p, display, err := Compile(`\x48\x8B\x00\x05`, "xx?x")
		require.NoError(t, err)
		assert.Equal(t, `\x48\x8B\x00\x05, xx?x`, display)
		assert.Equal(t, 4, p.Len())
		assert.True(t, p.Wildcard(2))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, _, err := Compile(`\x48\x8B`, "xx?x")
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, _, err := Compile("zz top", "")
		require.Error(t, err)
	})
}
