package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerTables(t *testing.T) {
	t.Run("majors and minors are disjoint", func(t *testing.T) {
		for _, m := range MajorPowers {
			assert.True(t, IsMajor(m))
			assert.False(t, IsMinor(m))
		}
		for _, m := range MinorPowers {
			assert.True(t, IsMinor(m))
			assert.False(t, IsMajor(m))
		}
	})

	t.Run("secondary unit kind", func(t *testing.T) {
		assert.Equal(t, UnitCavalry, SecondaryUnit(Ottoman))
		assert.Equal(t, UnitMercenaries, SecondaryUnit(France))
		assert.Equal(t, UnitMercenaries, SecondaryUnit(Venice))
	})

	t.Run("corsair power", func(t *testing.T) {
		assert.Equal(t, Ottoman, CorsairPower)
	})

	t.Run("unknown power", func(t *testing.T) {
		assert.False(t, Known(Power("burgundy")))
		assert.True(t, Known(Hapsburg))
	})
}

func TestDiplomacyTables(t *testing.T) {
	t.Run("majors may ally freely", func(t *testing.T) {
		assert.True(t, CanAlly(France, Ottoman))
		assert.True(t, CanAlly(England, Hapsburg))
	})

	t.Run("minor alliance table", func(t *testing.T) {
		assert.True(t, CanAlly(Genoa, Hapsburg))
		assert.True(t, CanAlly(France, Genoa))
		assert.False(t, CanAlly(Genoa, England))
		assert.True(t, CanAlly(Scotland, France))
		assert.False(t, CanAlly(Scotland, Ottoman))
		assert.True(t, CanAlly(Hungary, Hapsburg))
		assert.False(t, CanAlly(Hungary, France))
	})

	t.Run("minors never ally each other", func(t *testing.T) {
		assert.False(t, CanAlly(Genoa, Venice))
		assert.False(t, CanAlly(Hungary, Scotland))
	})

	t.Run("hungary alliance is binding", func(t *testing.T) {
		assert.False(t, CanBreakAlliance(Hungary, Hapsburg))
		assert.False(t, CanBreakAlliance(Hapsburg, Hungary))
		assert.True(t, CanBreakAlliance(Genoa, Hapsburg))
		assert.True(t, CanBreakAlliance(France, Ottoman))
	})
}

func TestExcommunicationTables(t *testing.T) {
	assert.True(t, Excommunicable("henry_viii"))
	assert.True(t, Excommunicable("francis_i"))
	assert.True(t, Excommunicable("charles_v"))
	assert.False(t, Excommunicable("suleiman"))
	assert.False(t, Excommunicable("leo_x"))

	assert.Equal(t, "henry_viii", ReligionExceptionRuler)
	assert.Equal(t, Protestant, ProtectorPower)
	assert.Equal(t, Papacy, AntagonistPower)
}

func TestSuccessor(t *testing.T) {
	t.Run("english line", func(t *testing.T) {
		next, ok := Successor(England, "henry_viii")
		require.True(t, ok)
		assert.Equal(t, "edward_vi", next)

		next, ok = Successor(England, "edward_vi")
		require.True(t, ok)
		assert.Equal(t, "mary_i", next)

		next, ok = Successor(England, "mary_i")
		require.True(t, ok)
		assert.Equal(t, "elizabeth_i", next)
	})

	t.Run("end of the line", func(t *testing.T) {
		_, ok := Successor(England, "elizabeth_i")
		assert.False(t, ok)
	})

	t.Run("ruler keyed to the wrong faction", func(t *testing.T) {
		_, ok := Successor(France, "henry_viii")
		assert.False(t, ok)
	})
}

func TestEvaluator(t *testing.T) {
	eval, err := NewEvaluator()
	require.NoError(t, err)

	t.Run("turn comparison", func(t *testing.T) {
		out, err := eval.EvalBool("turn >= 4", map[string]any{
			"turn": int64(5), "flags": []string{}, "metadata": map[string]any{},
		})
		require.NoError(t, err)
		assert.True(t, out)
	})

	t.Run("flag membership", func(t *testing.T) {
		out, err := eval.EvalBool("'augsburg_confession' in flags", map[string]any{
			"turn": int64(3), "flags": []string{"augsburg_confession"}, "metadata": map[string]any{},
		})
		require.NoError(t, err)
		assert.True(t, out)

		out, err = eval.EvalBool("'augsburg_confession' in flags", map[string]any{
			"turn": int64(3), "flags": []string{}, "metadata": map[string]any{},
		})
		require.NoError(t, err)
		assert.False(t, out)
	})

	t.Run("faction context", func(t *testing.T) {
		out, err := eval.EvalBool("faction.victory_points > 10", map[string]any{
			"faction": map[string]any{"victory_points": int64(12)},
			"turn":    int64(1), "flags": []string{}, "metadata": map[string]any{},
		})
		require.NoError(t, err)
		assert.True(t, out)
	})

	t.Run("malformed expression", func(t *testing.T) {
		_, err := eval.EvalBool("turn >>", map[string]any{
			"turn": int64(1), "flags": []string{}, "metadata": map[string]any{},
		})
		assert.Error(t, err)
	})
}
