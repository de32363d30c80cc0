package conversation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireSlotInvariant checks the slot rules: never empty, the last
// slot blank, and no second trailing blank behind it.
func requireSlotInvariant(t *testing.T, l *slotList) {
	t.Helper()

	require.NotEmpty(t, l.items)
	require.True(t, isBlank(l.items[len(l.items)-1]), "last slot must be blank")

	if len(l.items) >= 2 {
		require.False(t, isBlank(l.items[len(l.items)-2]), "only one trailing blank allowed")
	}
}

func TestSlotList_NamingTheBlankAppendsAFreshOne(t *testing.T) {
	l := newSlotList()
	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 1)

	require.True(t, l.edit(l.items[0].ID, "glass jar"))
	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 2)

	require.True(t, l.edit(l.items[1].ID, "old t-shirt"))
	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 3)

	require.Equal(t, []string{"glass jar", "old t-shirt"}, namesOf(l.named()))
}

func TestSlotList_ClearingTheLastNamedSlotCollapsesBlanks(t *testing.T) {
	l := newSlotList()
	require.True(t, l.edit(l.items[0].ID, "glass jar"))
	require.True(t, l.edit(l.items[1].ID, "old t-shirt"))

	require.True(t, l.edit(l.items[1].ID, "   "))

	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 2)
	require.Equal(t, []string{"glass jar"}, namesOf(l.named()))
}

func TestSlotList_MiddleBlankSurvivesUntilTrailing(t *testing.T) {
	l := newSlotList()
	require.True(t, l.edit(l.items[0].ID, "a"))
	require.True(t, l.edit(l.items[1].ID, "b"))
	require.True(t, l.edit(l.items[2].ID, "c"))

	// clearing b leaves a gap in the middle, the tail stays intact
	require.True(t, l.edit(l.items[1].ID, ""))

	requireSlotInvariant(t, &l)
	require.Equal(t, []string{"a", "c"}, namesOf(l.named()))

	// clearing c makes the gap trailing, both collapse
	require.True(t, l.edit(l.items[2].ID, ""))

	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 2)
	require.Equal(t, []string{"a"}, namesOf(l.named()))
}

func TestSlotList_LongEditScriptKeepsInvariant(t *testing.T) {
	l := newSlotList()

	for i := 0; i < 20; i++ {
		last := l.items[len(l.items)-1]
		require.True(t, l.edit(last.ID, "item "+strconv.Itoa(i)))
		requireSlotInvariant(t, &l)
	}

	require.Len(t, l.items, 21)
	require.Len(t, l.named(), 20)
}

func TestSlotList_DeleteRespectsTheFloor(t *testing.T) {
	l := newSlotList()
	require.True(t, l.edit(l.items[0].ID, "bottle"))

	require.True(t, l.delete(l.items[0].ID))
	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 1)
	require.Empty(t, l.named())

	// deleting the only remaining slot still leaves one blank slot
	require.True(t, l.delete(l.items[0].ID))
	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 1)

	require.False(t, l.delete("missing"))
}

func TestSlotList_DeleteMiddle(t *testing.T) {
	l := newSlotList()
	require.True(t, l.edit(l.items[0].ID, "a"))
	require.True(t, l.edit(l.items[1].ID, "b"))
	require.True(t, l.edit(l.items[2].ID, "c"))

	require.True(t, l.delete(l.items[1].ID))

	requireSlotInvariant(t, &l)
	require.Equal(t, []string{"a", "c"}, namesOf(l.named()))
}

func TestSlotListFrom_AppendsTrailingBlank(t *testing.T) {
	l := slotListFrom([]Item{{ID: "1", Name: "jar"}, {ID: "2", Name: "cork"}})

	requireSlotInvariant(t, &l)
	require.Len(t, l.items, 3)
	require.Equal(t, []string{"jar", "cork"}, namesOf(l.named()))
}

func namesOf(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	return names
}
