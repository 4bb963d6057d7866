package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sokolink/sokolink-app/pkg/config"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
)

type cartReader interface {
	Len() int
}

// Service runs the simulated payment flow. A started payment waits out the
// configured delay, then either completes or fails according to the
// configured failure rate. Navigating away cancels it: a cancelled payment
// creates no order and clears nothing.
type Service struct {
	mu         sync.Mutex
	cfg        config.CheckoutConfig
	cart       cartReader
	onComplete func(paymentCode string)
	onFail     func(err error)
	randFloat  func() float64
	pending    *Pending
}

// Pending is a payment in flight.
type Pending struct {
	PaymentCode string
	cancel      context.CancelFunc
	done        chan struct{}
}

// Done closes when the payment settles, whatever the outcome.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

func NewService(cfg config.CheckoutConfig, cart cartReader, onComplete func(paymentCode string), onFail func(err error)) (*Service, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if onComplete == nil {
		return nil, fmt.Errorf("completion callback required")
	}
	if onFail == nil {
		return nil, fmt.Errorf("failure callback required")
	}
	return &Service{
		cfg:        cfg,
		cart:       cart,
		onComplete: onComplete,
		onFail:     onFail,
		randFloat:  rand.Float64,
	}, nil
}

// Start begins a simulated payment for the current cart. It refuses empty
// carts and overlapping payments.
func (s *Service) Start(ctx context.Context) (*Pending, error) {
	if s.cart.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already in progress")
	}

	// The payment outlives the request that started it; only explicit
	// cancellation stops the timer.
	payCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pending := &Pending{
		PaymentCode: fmt.Sprintf("SOKO-%04d", rand.Intn(10000)),
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	s.pending = pending

	go s.run(payCtx, pending)
	return pending, nil
}

// Cancel aborts the in-flight payment, if any.
func (s *Service) Cancel() {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending != nil {
		pending.cancel()
	}
}

// InFlight reports whether a payment is pending.
func (s *Service) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Service) run(ctx context.Context, pending *Pending) {
	timer := time.NewTimer(s.cfg.PaymentDelay)
	defer timer.Stop()

	completed := false
	failed := false

	select {
	case <-ctx.Done():
		// Cancelled: no order, cart untouched.
	case <-timer.C:
		if s.cfg.PaymentFailureRate > 0 && s.randFloat() < s.cfg.PaymentFailureRate {
			failed = true
		} else {
			completed = true
		}
	}

	s.mu.Lock()
	if s.pending == pending {
		s.pending = nil
	}
	s.mu.Unlock()

	switch {
	case completed:
		s.onComplete(pending.PaymentCode)
	case failed:
		s.onFail(pkgerrors.New(pkgerrors.CodePayment, "payment was declined"))
	}
	close(pending.done)
}
