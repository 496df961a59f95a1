package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopper/internal/apperr"
	"shopper/internal/models"
	"shopper/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetOrCreateCart is idempotent: concurrent calls for one user settle on a
// single cart row via the store's uniqueness constraint.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if _, err := s.Repo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart %s: %w", cartID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.ListCartItems(ctx, cartID)
}

func (s *CartService) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", apperr.ErrInvalidArgument)
	}
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product id must not be nil: %w", apperr.ErrInvalidArgument)
	}

	if _, err := s.Repo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart %s: %w", cartID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
		}
		return nil, err
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddCartItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes the line item; removing an absent product is a no-op
// success. Only a missing cart is an error.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	if _, err := s.Repo.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart %s: %w", cartID, apperr.ErrNotFound)
		}
		return err
	}
	return s.Repo.RemoveCartItem(ctx, cartID, productID)
}

// SetQuantity updates the line item in place; zero removes it and returns a
// nil item.
func (s *CartService) SetQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		if err := s.RemoveItem(ctx, cartID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	item, err := s.Repo.SetCartItemQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s/%s: %w", cartID, productID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("set quantity: %w", err)
	}
	return item, nil
}
