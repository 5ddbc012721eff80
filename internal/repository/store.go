package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned by every lookup that matches no row.
var ErrNotFound = errors.New("record not found")

// Store hands out repositories bound to one *gorm.DB. Inside InTx that handle
// is the transaction, so every repository call shares it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn in a single transaction. Any error returned by fn, or a panic,
// rolls everything back.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{db: s.db} }
func (s *Store) Carts() *CartRepo      { return &CartRepo{db: s.db} }
func (s *Store) Ads() *AdRepo          { return &AdRepo{db: s.db} }
func (s *Store) Library() *LibraryRepo { return &LibraryRepo{db: s.db} }
func (s *Store) Users() *UserRepo      { return &UserRepo{db: s.db} }
func (s *Store) OTPs() *OtpRepo        { return &OtpRepo{db: s.db} }
func (s *Store) Tokens() *TokenRepo    { return &TokenRepo{db: s.db} }

// Available restricts a query to rows that are active and not soft-deleted.
func Available(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".active = ? AND "+table+".deleted = ?", true, false)
	}
}

// ForUser restricts a query to rows owned by userID.
func ForUser(table string, userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ?", userID)
	}
}

// FlagFilter narrows admin listings by the active/deleted flags. Nil fields
// are not filtered.
type FlagFilter struct {
	Active  *bool
	Deleted *bool
}

func (f FlagFilter) scope(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Active != nil {
			db = db.Where(table+".active = ?", *f.Active)
		}
		if f.Deleted != nil {
			db = db.Where(table+".deleted = ?", *f.Deleted)
		}
		return db
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
