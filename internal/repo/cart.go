package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopper/internal/models"
)

// GetOrCreateCart returns the user's cart, inserting it on first access.
// The insert goes through ON CONFLICT DO NOTHING on the user_id unique index,
// so a concurrent creator loses the race silently and the re-read below
// returns the winning row for both callers.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error; err != nil {
		return nil, err
	}

	var out models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepo) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("id = ?", cartID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListCartItems is a single snapshot read in insertion order.
func (r *GormRepo) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem inserts the line item or increments the quantity of the
// existing (cart, product) row, as one upsert statement on the composite
// unique index. Two concurrent first adds race to the same ON CONFLICT arm,
// so neither can lose with an error or a second row.
func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) error {
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("quantity + ?", item.Quantity),
			}),
		}).
		Create(item).Error; err != nil {
		return err
	}

	// the conflict arm keeps the existing row's id and accumulated quantity
	var out models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).
		First(&out).Error; err != nil {
		return err
	}
	*item = out
	return nil
}

// RemoveCartItem deletes the matching line item. Deleting an absent item is a
// no-op success.
func (r *GormRepo) RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// SetCartItemQuantity updates the quantity in place. quantity must be > 0;
// zero is handled by RemoveCartItem at the service level. Returns
// gorm.ErrRecordNotFound when the line item does not exist.
func (r *GormRepo) SetCartItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	}); err != nil {
		return nil, err
	}
	return &item, nil
}
