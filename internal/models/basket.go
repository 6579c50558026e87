package models

import (
	"errors"
	"fmt"
	"time"
)

// BasketActionState tracks one basket mutation from request to DOM update
type BasketActionState string

// Basket action states
const (
	BasketIdle     BasketActionState = "idle"
	BasketWaiting  BasketActionState = "waiting"
	BasketUpdated  BasketActionState = "updated"
	BasketTimedOut BasketActionState = "timed_out"
)

// ErrInvalidBasketTransition is returned when a basket action is driven out of order
var ErrInvalidBasketTransition = errors.New("invalid basket action transition")

// BasketAction is the explicit state of the latest basket mutation
type BasketAction struct {
	Name  string
	State BasketActionState
}

// NewBasketAction returns an idle action
func NewBasketAction() *BasketAction {
	return &BasketAction{State: BasketIdle}
}

// Send marks a mutation as requested. A settled action may be re-sent.
func (a *BasketAction) Send(name string) error {
	if a.State == BasketWaiting {
		return fmt.Errorf("%w: %q still waiting, cannot send %q", ErrInvalidBasketTransition, a.Name, name)
	}
	a.Name = name
	a.State = BasketWaiting
	return nil
}

// Complete marks the pending mutation as reflected in the DOM
func (a *BasketAction) Complete() error {
	if a.State != BasketWaiting {
		return fmt.Errorf("%w: cannot complete from %s", ErrInvalidBasketTransition, a.State)
	}
	a.State = BasketUpdated
	return nil
}

// TimeOut marks the pending mutation as never observed
func (a *BasketAction) TimeOut() error {
	if a.State != BasketWaiting {
		return fmt.Errorf("%w: cannot time out from %s", ErrInvalidBasketTransition, a.State)
	}
	a.State = BasketTimedOut
	return nil
}

// Reset returns the action to idle
func (a *BasketAction) Reset() {
	a.Name = ""
	a.State = BasketIdle
}

// IsSettled returns true once the action has either updated or timed out
func (a *BasketAction) IsSettled() bool {
	return a.State == BasketUpdated || a.State == BasketTimedOut
}

// BasketLine is one product line in a fixture storefront basket
type BasketLine struct {
	ID        string
	ProductID int64
	Size      string
	Quantity  int
	AddedAt   time.Time
}
