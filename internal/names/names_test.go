package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ruleforge/internal/names"
)

func TestMangleReplacesDotsAndDollarsAndWraps(t *testing.T) {
	assert.Equal(t, "_foo_bar_", names.Mangle("foo.bar"))
	assert.Equal(t, "_foo_S__", names.Mangle("foo$"))
}

func TestMangleAppliesSnakeCasing(t *testing.T) {
	assert.Equal(t, "_succ_", names.Mangle("Succ"))
	assert.Equal(t, "_list_cons_", names.Mangle("ListCons"))
}

func TestBuildIDTableMangleEachName(t *testing.T) {
	table := names.BuildIDTable(map[string]uint64{"Succ": 1, "Zero": 2})
	assert.Equal(t, uint64(1), table[names.Mangle("Succ")])
	assert.Equal(t, uint64(2), table[names.Mangle("Zero")])
	assert.Len(t, table, 2)
}

func TestBuildIDTableCollisionPicksDeterministicWinner(t *testing.T) {
	// "Foo.Bar" and "Foo_Bar" both mangle to "_foo_bar_"; sorted source
	// order makes "Foo_Bar" the later (and winning) name every run.
	table := names.BuildIDTable(map[string]uint64{"Foo.Bar": 1, "Foo_Bar": 2})
	assert.Equal(t, uint64(2), table[names.Mangle("Foo_Bar")])
	assert.Len(t, table, 1)
}
