package orderbook

import (
	"github.com/google/btree"
	orderbookv1 "github.com/muhammadchandra19/book-replay/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

const btreeDegree = 16

// level is a mutable price level held by the index. The price never changes
// once the level is in the tree, so the quantity can be updated in place.
type level struct {
	price    decimal.Decimal
	quantity int64
}

func levelLess(a, b *level) bool {
	return a.price.Cmp(b.price) < 0
}

// levelIndex keeps the aggregated quantity per price of one side, ordered by price.
type levelIndex struct {
	tree *btree.BTreeG[*level]
}

func newLevelIndex() *levelIndex {
	return &levelIndex{tree: btree.NewG(btreeDegree, levelLess)}
}

func (x *levelIndex) add(price decimal.Decimal, quantity int64) {
	if lvl, ok := x.tree.Get(&level{price: price}); ok {
		lvl.quantity += quantity
		return
	}
	x.tree.ReplaceOrInsert(&level{price: price, quantity: quantity})
}

// sub removes quantity from the level and drops the level once it is empty.
func (x *levelIndex) sub(price decimal.Decimal, quantity int64) {
	lvl, ok := x.tree.Get(&level{price: price})
	if !ok {
		return
	}
	lvl.quantity -= quantity
	if lvl.quantity <= 0 {
		x.tree.Delete(lvl)
	}
}

func (x *levelIndex) min() (decimal.Decimal, bool) {
	lvl, ok := x.tree.Min()
	if !ok {
		return decimal.Zero, false
	}
	return lvl.price, true
}

func (x *levelIndex) max() (decimal.Decimal, bool) {
	lvl, ok := x.tree.Max()
	if !ok {
		return decimal.Zero, false
	}
	return lvl.price, true
}

func (x *levelIndex) len() int {
	return x.tree.Len()
}

// walk returns up to depth levels starting from the lowest price when
// ascending, otherwise from the highest.
func (x *levelIndex) walk(ascending bool, depth int) []orderbookv1.PriceLevel {
	if depth <= 0 {
		return []orderbookv1.PriceLevel{}
	}

	out := make([]orderbookv1.PriceLevel, 0, min(depth, x.tree.Len()))
	visit := func(lvl *level) bool {
		out = append(out, orderbookv1.PriceLevel{Price: lvl.price, Quantity: lvl.quantity})
		return len(out) < depth
	}

	if ascending {
		x.tree.Ascend(visit)
	} else {
		x.tree.Descend(visit)
	}
	return out
}
