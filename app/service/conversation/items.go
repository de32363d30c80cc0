package conversation

import (
	"strings"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
)

// slotList keeps the item slots shown while collecting. The last slot
// is always blank, naming it makes room for the next item.
type slotList struct {
	items []Item
}

func newSlotList() slotList {
	return slotList{
		items: []Item{blankItem()},
	}
}

func slotListFrom(items []Item) slotList {
	l := slotList{items: make([]Item, len(items))}
	copy(l.items, items)
	l.normalize()

	return l
}

func blankItem() Item {
	return Item{ID: uuid.NewString()}
}

func isBlank(item Item) bool {
	return strings.TrimSpace(item.Name) == ""
}

func (l *slotList) edit(id, name string) bool {
	index := pie.FindFirstUsing(l.items, func(item Item) bool {
		return item.ID == id
	})
	if index < 0 {
		return false
	}

	l.items[index].Name = name
	l.normalize()

	return true
}

func (l *slotList) delete(id string) bool {
	index := pie.FindFirstUsing(l.items, func(item Item) bool {
		return item.ID == id
	})
	if index < 0 {
		return false
	}

	l.items = append(l.items[:index], l.items[index+1:]...)
	l.normalize()

	return true
}

// named returns the slots the user actually filled in, in order.
func (l *slotList) named() []Item {
	return pie.Filter(l.items, func(item Item) bool {
		return !isBlank(item)
	})
}

func (l *slotList) all() []Item {
	result := make([]Item, len(l.items))
	copy(result, l.items)

	return result
}

// normalize restores the invariant: at least one slot, exactly one
// trailing blank.
func (l *slotList) normalize() {
	for len(l.items) >= 2 && isBlank(l.items[len(l.items)-1]) && isBlank(l.items[len(l.items)-2]) {
		l.items = l.items[:len(l.items)-1]
	}

	if len(l.items) == 0 || !isBlank(l.items[len(l.items)-1]) {
		l.items = append(l.items, blankItem())
	}
}
