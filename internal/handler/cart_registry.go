package handler

import (
	"sync"

	"github.com/gofiber/fiber/v2/utils"

	"quicksell-pos/internal/cart"
)

type terminalCart struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// CartRegistry keeps one cart per terminal id. A cart is only touched while
// its terminal lock is held.
type CartRegistry struct {
	mu    sync.Mutex
	carts map[string]*terminalCart
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[string]*terminalCart)}
}

func (r *CartRegistry) get(terminal string) *terminalCart {
	r.mu.Lock()
	defer r.mu.Unlock()

	tc, ok := r.carts[terminal]
	if !ok {
		tc = &terminalCart{cart: cart.New()}
		// Route params alias fiber's request buffer.
		r.carts[utils.CopyString(terminal)] = tc
	}
	return tc
}

// With runs fn with exclusive access to the terminal's cart.
func (r *CartRegistry) With(terminal string, fn func(c *cart.Cart) error) error {
	tc := r.get(terminal)
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return fn(tc.cart)
}
