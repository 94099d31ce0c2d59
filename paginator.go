package memberkit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// Page size bounds applied when an Order does not configure its own.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Keyed is implemented by entities that can be listed with keyset
// pagination. The returned pair must be unique per entity: the id breaks
// ties on the order key, giving every row exactly one position.
type Keyed interface {
	PaginationKey() (time.Time, string)
}

// Order fixes the ordering of a paginated listing: a monotonic-enough
// timestamp column plus the id column as tie-break. An Order must stay
// identical for every page of a traversal; cursors minted under one Order
// are undefined under another.
type Order struct {
	Column string // qualified order column, e.g. "pm.created"
	ID     string // qualified tie-break column, e.g. "pm.id"

	// Optional page size bounds. Zero values fall back to the package
	// defaults.
	DefaultLimit int
	MaxLimit     int
}

func (o Order) clamp(limit int) int {
	def, max := o.DefaultLimit, o.MaxLimit
	if def <= 0 {
		def = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// Paginate runs one page of a keyset (seek) listing.
//
// Offset pagination degrades on large tables and produces duplicate or
// missing rows under concurrent inserts and deletes. Paginate instead
// anchors each page to the last-seen (order key, id) pair: rows strictly
// past the anchor are fetched with limit+1 to learn whether a further page
// exists without a count query, and the probe row is trimmed before
// returning. Backward paging selects strictly-less rows descending and
// reverses them back into presentation order.
//
// apply shapes the base query (filters, joins); it must stay identical for
// every page of a traversal, or the cursor positions are undefined.
//
// Example:
//
//	page, err := memberkit.Paginate[Membership](ctx, db, order, cur, 20,
//	    func(q *bun.SelectQuery) *bun.SelectQuery {
//	        return q.Where("pm.project_id = ?", projectID)
//	    })
func Paginate[T Keyed](ctx context.Context, db Database, order Order, cur *Cursor, limit int, apply func(*bun.SelectQuery) *bun.SelectQuery) (*Page[T], error) {
	limit = order.clamp(limit)
	backward := cur != nil && cur.Direction == DirectionBefore

	var items []T
	q := db.NewSelect().Model(&items)
	if apply != nil {
		q = apply(q)
	}

	if cur != nil {
		if backward {
			q = q.Where("("+order.Column+", "+order.ID+") < (?, ?)", cur.KeyTime(), cur.ID)
		} else {
			q = q.Where("("+order.Column+", "+order.ID+") > (?, ?)", cur.KeyTime(), cur.ID)
		}
	}
	if backward {
		q = q.OrderExpr(order.Column + " DESC, " + order.ID + " DESC")
	} else {
		q = q.OrderExpr(order.Column + " ASC, " + order.ID + " ASC")
	}

	err := dbkit.WithErr1(q.Limit(limit+1).Scan(ctx), "Paginate").Err()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	more := len(items) > limit
	if more {
		items = items[:limit]
	}
	if backward {
		reverseItems(items)
	}

	page := &Page[T]{Data: items}
	if len(items) == 0 {
		return page, nil
	}

	first, last := items[0], items[len(items)-1]
	if backward {
		// The caller arrived here from a later page, so rows past the
		// end of this page are known to exist.
		page.Next = cursorFor(last, DirectionAfter)
		if more {
			page.Previous = cursorFor(first, DirectionBefore)
		}
	} else {
		if more {
			page.Next = cursorFor(last, DirectionAfter)
		}
		if cur != nil {
			page.Previous = cursorFor(first, DirectionBefore)
		}
	}

	return page, nil
}

func reverseItems[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
