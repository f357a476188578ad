package register

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/domain/cart"
	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type ItemLookup interface {
	Get(id int64) (catalog.Item, error)
}

// Register is the single till session: one cart and one tender. All
// mutations are serialised, and none are accepted while a checkout is being
// submitted.
type Register struct {
	mu         sync.Mutex
	cart       *cart.Cart
	tender     cart.Tender
	submitting bool

	items ItemLookup
	log   *logger.Logger
}

func New(items ItemLookup, log *logger.Logger) *Register {
	return &Register{
		cart:  cart.New(),
		items: items,
		log:   log,
	}
}

type LineView struct {
	cart.Line
	Subtotal  decimal.Decimal `json:"subtotal"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type View struct {
	Lines       []LineView `json:"lines"`
	Quote       cart.Quote `json:"quote"`
	Submitting  bool       `json:"submitting"`
	CanCheckout bool       `json:"can_checkout"`
}

// Submission is the frozen cart handed to the checkout protocol.
type Submission struct {
	Lines  []cart.Line
	Tender cart.Tender
	Quote  cart.Quote
}

func (r *Register) AddItem(itemID int64) (cart.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitting {
		return cart.Line{}, domainErrors.ErrCheckoutInProgress
	}

	item, err := r.items.Get(itemID)
	if err != nil {
		return cart.Line{}, err
	}

	line, err := r.cart.Add(item)
	if err != nil {
		r.reject(err, "item_id", itemID)
		return line, err
	}

	monitoring.UpdateCartLines(r.cart.Len())
	return line, nil
}

func (r *Register) SetQuantity(itemID int64, quantity int) (cart.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitting {
		return cart.Line{}, domainErrors.ErrCheckoutInProgress
	}

	if _, ok := r.cart.Line(itemID); !ok {
		return cart.Line{}, domainErrors.ErrLineNotFound
	}

	item, err := r.items.Get(itemID)
	if err != nil {
		return cart.Line{}, err
	}

	line, err := r.cart.SetQuantity(item, quantity)
	if err != nil {
		r.reject(err, "item_id", itemID, "quantity", quantity)
		return line, err
	}
	return line, nil
}

func (r *Register) SetDiscount(itemID int64, raw string) (cart.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitting {
		return cart.Line{}, domainErrors.ErrCheckoutInProgress
	}

	return r.cart.SetDiscount(itemID, raw)
}

func (r *Register) RemoveItem(itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitting {
		return domainErrors.ErrCheckoutInProgress
	}

	r.cart.Remove(itemID)
	monitoring.UpdateCartLines(r.cart.Len())
	return nil
}

func (r *Register) SetTender(raw string) (cart.Tender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitting {
		return r.tender, domainErrors.ErrCheckoutInProgress
	}

	r.tender = cart.ParseTender(raw)
	return r.tender, nil
}

func (r *Register) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.cart.Lines()
	views := make([]LineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, LineView{
			Line:      l,
			Subtotal:  l.Subtotal(),
			LineTotal: cart.LineTotal(l),
		})
	}

	quote := cart.NewQuote(lines, r.tender)
	return View{
		Lines:       views,
		Quote:       quote,
		Submitting:  r.submitting,
		CanCheckout: r.readyLocked(quote) == nil,
	}
}

// BeginCheckout checks the checkout gate and, when open, freezes the cart
// until FinishCheckout is called. Lines submitted for the first time get an
// idempotency key from newKey; lines left over from a failed run keep theirs.
func (r *Register) BeginCheckout(newKey func() string) (Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote := cart.NewQuote(r.cart.Lines(), r.tender)
	if err := r.readyLocked(quote); err != nil {
		return Submission{}, err
	}

	r.cart.AssignIdempotencyKeys(newKey)
	lines := r.cart.Lines()
	r.submitting = true
	return Submission{
		Lines:  lines,
		Tender: r.tender,
		Quote:  quote,
	}, nil
}

// FinishCheckout unfreezes the cart. On success the cart and tender are
// cleared; otherwise only the lines already committed remotely are dropped,
// so the failed line and everything after it stay for another attempt.
func (r *Register) FinishCheckout(result *cart.CheckoutResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.submitting = false

	if result.Success() {
		r.cart.Clear()
		r.tender = cart.Tender{}
	} else {
		for _, id := range result.CommittedItemIDs() {
			r.cart.Remove(id)
		}
	}

	monitoring.UpdateCartLines(r.cart.Len())
}

func (r *Register) readyLocked(quote cart.Quote) error {
	switch {
	case r.submitting:
		return domainErrors.ErrCheckoutInProgress
	case r.cart.IsEmpty():
		return domainErrors.ErrEmptyCart
	case !quote.Covered:
		return domainErrors.ErrInvalidTender
	}
	return nil
}

func (r *Register) reject(err error, fields ...interface{}) {
	reason := "other"
	switch {
	case errors.Is(err, domainErrors.ErrStockExceeded):
		reason = "stock_exceeded"
	case errors.Is(err, domainErrors.ErrInvalidQuantity):
		reason = "invalid_quantity"
	}
	monitoring.RecordCartRejection(reason)
	r.log.Warn("Cart mutation rejected", append([]interface{}{"error", err.Error()}, fields...)...)
}
