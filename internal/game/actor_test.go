package game

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanKadrios/SMTLite/internal/logging"
)

func TestDerivedStats(t *testing.T) {
	hp, mp, atk, def := Template{Level: 3, Str: 4, Mag: 2, Vit: 6}.DerivedStats()
	assert.Equal(t, 104, hp)
	assert.Equal(t, 25, mp)
	assert.Equal(t, 9, atk)
	assert.Equal(t, 4, def)

	hp, _, atk, _ = Template{Level: 3, HitPoints: 40, Attack: 7}.DerivedStats()
	assert.Equal(t, 40, hp)
	assert.Equal(t, 7, atk)
}

func TestNewActor_TruncatesLongSkillListWithWarning(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	skills := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	a := NewActor(Template{Key: "hoarder", Name: "Hoarder", HitPoints: 10, Skills: skills})

	require.Len(t, a.Skills, MaxKnownMoves)
	assert.Equal(t, "h", a.Skills[MaxKnownMoves-1])
	assert.Contains(t, buf.String(), "skill list truncated")
	assert.Contains(t, buf.String(), `"template":"hoarder"`)
}

func TestNewActor_ShortSkillListIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	a := NewActor(Template{Key: "hero", HitPoints: 10, Skills: []string{"slash"}})
	assert.Equal(t, []string{"slash"}, a.Skills)
	assert.True(t, a.Alive)
	assert.Empty(t, buf.String())
}
