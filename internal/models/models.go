package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID `gorm:"primaryKey"       json:"id"`
	Email              string    `gorm:"unique;not null"  json:"email"`
	PasswordHash       string    `gorm:"not null"         json:"-"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	MailingAddress     string    `json:"mailing_address"`
	PhoneNumber        string    `json:"phone_number"`
	BillingInformation string    `json:"billing_information"`
	IsAdmin            bool      `gorm:"default:false"    json:"is_admin"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"      json:"id"`
	Name        string    `gorm:"not null"        json:"name"`
	Description string    `gorm:"not null"        json:"description"`
	Price       float64   `gorm:"not null"        json:"price"`
	Inventory   uint      `json:"inventory"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cart is one per user, enforced by the unique index on user_id.
type Cart struct {
	ID     uuid.UUID  `gorm:"primaryKey"               json:"id"`
	UserID uuid.UUID  `gorm:"uniqueIndex;not null"     json:"user_id"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// CartItem holds one (product, quantity) entry of a cart. The composite
// unique index makes adding an already-present product an update, never a
// second row.
type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                              json:"id"`
	CartID    uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null"   json:"cart_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null"   json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"              json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"primaryKey"            json:"id"`
	Token     string    `gorm:"unique;not null"       json:"token"`
	UserID    uuid.UUID `gorm:"index;not null"        json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;not null"  json:"jti"`
	ExpiresAt int64     `gorm:"not null"              json:"expires_at"`
	Revoked   bool      `gorm:"default:false"         json:"revoked"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
