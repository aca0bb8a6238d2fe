// Package pos decides what happens at the register when a search settles:
// whether an item is taken into the cart automatically, blocked by a guard,
// or left for the cashier to pick manually.
package pos

import (
	"sync"
	"time"

	catalogEntity "meezy.GO/model/entity/catalog"
	cartEntity "meezy.GO/model/entity/cart"
	"meezy.GO/service/cart"
	"meezy.GO/service/catalog"
)

// Action is the outcome of feeding a settled resolution to the controller.
type Action int

const (
	// ActionNone means nothing happened: stale result or an ambiguous
	// result set that needs a manual pick.
	ActionNone Action = iota
	// ActionAdded means the item went into the cart.
	ActionAdded
	// ActionAlreadyInCart means the scanned item is in the cart already and
	// the automatic path refused to touch it again.
	ActionAlreadyInCart
	// ActionBlockedPrice means the item has no sellable price.
	ActionBlockedPrice
	// ActionBlockedStock means the item is out of stock.
	ActionBlockedStock
	// ActionNotFound means the query produced nothing to act on.
	ActionNotFound
)

func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "added"
	case ActionAlreadyInCart:
		return "already_in_cart"
	case ActionBlockedPrice:
		return "blocked_price"
	case ActionBlockedStock:
		return "blocked_stock"
	case ActionNotFound:
		return "not_found"
	default:
		return "none"
	}
}

// Decision reports what the controller did with a resolution.
type Decision struct {
	Action Action
	Item   catalogEntity.Item
	Line   cartEntity.Line
}

// Arbiter is the staleness gate a resolution must pass before the
// controller acts on it.
type Arbiter interface {
	Deliver(catalog.Resolution) bool
}

// DefaultResetDelay is how long an auto-added item stays on screen before
// the search resets for the next scan.
const DefaultResetDelay = 500 * time.Millisecond

// Controller drives the automatic add flow of the register. Barcode
// scanners type fast and press nothing, so a settled query that resolves
// to exactly one sellable item is added without a keypress and the search
// is cleared shortly after.
type Controller struct {
	cart    *cart.Store
	arbiter Arbiter

	resetDelay time.Duration
	onReset    func()

	mu         sync.Mutex
	resetTimer *time.Timer
	resetGen   uint64
}

// NewController wires the controller to a cart and the staleness gate.
// onReset is invoked when the search input should be cleared; it may be nil.
func NewController(cartStore *cart.Store, arbiter Arbiter, onReset func()) *Controller {
	return &Controller{
		cart:       cartStore,
		arbiter:    arbiter,
		resetDelay: DefaultResetDelay,
		onReset:    onReset,
	}
}

// SetResetDelay overrides the delay before the search resets after an
// automatic add.
func (c *Controller) SetResetDelay(d time.Duration) {
	c.resetDelay = d
}

// HandleSettled takes a settled resolution and applies the automatic add
// rules. Stale resolutions are dropped. Only a query that resolved cleanly
// to exactly one item triggers an add; the item must not be in the cart
// already, must carry a price and must be in stock.
func (c *Controller) HandleSettled(res catalog.Resolution) Decision {
	if c.arbiter != nil && !c.arbiter.Deliver(res) {
		return Decision{Action: ActionNone}
	}
	if res.Outcome != catalog.OutcomeOK {
		return Decision{Action: ActionNone}
	}
	if len(res.Items) != 1 {
		return Decision{Action: ActionNone}
	}
	item := res.Items[0]
	if c.cart.Contains(item.ID) {
		return Decision{Action: ActionAlreadyInCart, Item: item}
	}
	if blocked, ok := guard(item); !ok {
		return Decision{Action: blocked, Item: item}
	}
	line := c.cart.Add(item)
	c.scheduleReset()
	return Decision{Action: ActionAdded, Item: item, Line: line}
}

// HandleCommit handles an explicit Enter on the current result set. The
// first listed item is taken, guards still apply, and unlike the automatic
// path a repeated commit merges into the existing line instead of being
// refused. The search resets immediately.
func (c *Controller) HandleCommit(res catalog.Resolution) Decision {
	if len(res.Items) == 0 {
		return Decision{Action: ActionNotFound}
	}
	item := res.Items[0]
	if blocked, ok := guard(item); !ok {
		return Decision{Action: blocked, Item: item}
	}
	line := c.cart.Add(item)
	c.resetNow()
	return Decision{Action: ActionAdded, Item: item, Line: line}
}

// KeystrokeSeen cancels a pending delayed reset. A cashier who starts the
// next query before the timer fires must not have it wiped from under them.
func (c *Controller) KeystrokeSeen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelResetLocked()
}

func guard(item catalogEntity.Item) (Action, bool) {
	if item.Price <= 0 {
		return ActionBlockedPrice, false
	}
	if item.InventoryQuantity <= 0 {
		return ActionBlockedStock, false
	}
	return ActionNone, true
}

func (c *Controller) scheduleReset() {
	if c.onReset == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelResetLocked()
	gen := c.resetGen
	c.resetTimer = time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		live := c.resetGen == gen
		c.mu.Unlock()
		if live {
			c.onReset()
		}
	})
}

func (c *Controller) resetNow() {
	c.mu.Lock()
	c.cancelResetLocked()
	c.mu.Unlock()
	if c.onReset != nil {
		c.onReset()
	}
}

func (c *Controller) cancelResetLocked() {
	c.resetGen++
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}
