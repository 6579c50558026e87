package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/themizzi/shopflow/internal/driver"
	"github.com/themizzi/shopflow/internal/models"
)

// MinQuantity is the lowest quantity a basket line can be decreased to
const MinQuantity = 1

// BasketPage drives the basket. Every mutation is tracked through a
// models.BasketAction and is complete only once the DOM reflects it.
type BasketPage struct {
	*Navigator
	session *Session
	page    driver.Page
	action  *models.BasketAction

	PlusButton        driver.Locator
	MinusButton       driver.Locator
	DeleteButton      driver.Locator
	Items             driver.Locator
	FirstProduct      driver.Locator
	SecondProduct     driver.Locator
	QuantityInput     driver.Locator
	BasketLink        driver.Locator
	EmptyBasketButton driver.Locator
}

// NewBasketPage binds the basket locators to session
func NewBasketPage(session *Session) *BasketPage {
	page := session.page
	items := page.Locator(".list-item__wrap")
	return &BasketPage{
		Navigator:         NewNavigator(session),
		session:           session,
		page:              page,
		action:            models.NewBasketAction(),
		PlusButton:        page.Locator(".count__plus").First(),
		MinusButton:       page.Locator(".count__minus").First(),
		DeleteButton:      page.Locator(".btn__del"),
		Items:             items,
		FirstProduct:      items.First(),
		SecondProduct:     items.Last(),
		QuantityInput:     items.First().Locator(".count__input"),
		BasketLink:        page.Locator(".navbar-pc__item.j-item-basket .navbar-pc__link"),
		EmptyBasketButton: page.Locator(".basket-empty__btn"),
	}
}

// State returns the state of the latest basket mutation
func (b *BasketPage) State() models.BasketActionState {
	return b.action.State
}

// OpenBasket follows the header basket link
func (b *BasketPage) OpenBasket(ctx context.Context) error {
	before := b.page.URL()
	if err := b.BasketLink.Click(); err != nil {
		return fmt.Errorf("failed to open basket: %w", err)
	}
	if err := b.session.waitURLChange(ctx, before); err != nil {
		return err
	}
	if err := b.session.networkIdle(ctx); err != nil {
		return err
	}
	b.action.Reset()
	return b.syncView()
}

// ItemCount returns the number of lines in the basket
func (b *BasketPage) ItemCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := b.Items.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count basket items: %w", err)
	}
	return count, nil
}

// DeleteSecondProduct removes the last line
func (b *BasketPage) DeleteSecondProduct(ctx context.Context) error {
	return b.mutate(ctx, "delete second product", b.DeleteButton.Last(), b.lineCount, itemRemoved)
}

// DeleteFirstProduct removes the first line
func (b *BasketPage) DeleteFirstProduct(ctx context.Context) error {
	return b.mutate(ctx, "delete first product", b.DeleteButton.First(), b.lineCount, itemRemoved)
}

// IncreaseFirstProductQuantity adds one to the first line
func (b *BasketPage) IncreaseFirstProductQuantity(ctx context.Context) error {
	return b.mutate(ctx, "increase first product quantity", b.PlusButton, b.FirstQuantity, quantityIncreased)
}

// DecreaseFirstProductQuantity removes one from the first line
func (b *BasketPage) DecreaseFirstProductQuantity(ctx context.Context) error {
	return b.mutate(ctx, "decrease first product quantity", b.MinusButton, b.FirstQuantity, quantityDecreased)
}

// FirstQuantity reads the quantity input of the first line
func (b *BasketPage) FirstQuantity() (int, error) {
	raw, err := b.QuantityInput.InputValue()
	if err != nil {
		return 0, fmt.Errorf("failed to read quantity: %w", err)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", raw, err)
	}
	return quantity, nil
}

func (b *BasketPage) lineCount() (int, error) {
	count, err := b.Items.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count basket items: %w", err)
	}
	return count, nil
}

// ReturnToMain leaves an empty basket through its "back to shopping" button.
// A non-empty basket never shows the button, so the wait times out.
func (b *BasketPage) ReturnToMain(ctx context.Context) error {
	if err := b.session.waitFor(ctx, b.EmptyBasketButton, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("empty basket button did not appear: %w", err)
	}
	before := b.page.URL()
	if err := b.EmptyBasketButton.Click(); err != nil {
		return fmt.Errorf("failed to return to main page: %w", err)
	}
	return b.session.followNavigation(ctx, before)
}

func itemRemoved(before, now int) bool {
	return now < before
}

func quantityIncreased(before, now int) bool {
	return now > before
}

// quantityDecreased holds at once on a line already at the minimum
// quantity, since the site never goes below it.
func quantityDecreased(before, now int) bool {
	return before <= MinQuantity || now < before
}

// mutate reads the value the action should change, clicks target, waits
// for network idle and then polls read until condition holds.
func (b *BasketPage) mutate(ctx context.Context, name string, target driver.Locator, read func() (int, error), condition func(before, now int) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	before, err := read()
	if err != nil {
		return err
	}
	if err := b.action.Send(name); err != nil {
		return err
	}

	if err := b.await(ctx, target, read, before, condition); err != nil {
		if errors.Is(err, driver.ErrTimeout) {
			_ = b.action.TimeOut()
		} else {
			b.action.Reset()
		}
		return fmt.Errorf("failed to %s: %w", name, err)
	}

	if err := b.action.Complete(); err != nil {
		return err
	}
	return b.syncView()
}

func (b *BasketPage) await(ctx context.Context, target driver.Locator, read func() (int, error), before int, condition func(before, now int) bool) error {
	if err := target.Click(); err != nil {
		return err
	}
	if err := b.session.networkIdle(ctx); err != nil {
		return err
	}
	return b.session.poll(ctx, "basket update", func() (bool, error) {
		now, err := read()
		if err != nil {
			return false, err
		}
		return condition(before, now), nil
	})
}

// syncView records whether the basket still has lines
func (b *BasketPage) syncView() error {
	count, err := b.Items.Count()
	if err != nil {
		return fmt.Errorf("failed to count basket items: %w", err)
	}
	if count == 0 {
		return b.session.enter(models.ViewEmptyBasket)
	}
	return b.session.enter(models.ViewBasket)
}
