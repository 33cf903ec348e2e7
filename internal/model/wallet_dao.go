package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = gorm.ErrRecordNotFound

// EmbeddedWalletsDao defines the interface for database operations on the
// embedded_wallets table.
type EmbeddedWalletsDao interface {
	Insert(ctx context.Context, data *EmbeddedWallet) error
	FindOneByUserChain(ctx context.Context, userId, chainType string) (*EmbeddedWallet, error)
	FindOneByAddress(ctx context.Context, address string) (*EmbeddedWallet, error)
	FindByUser(ctx context.Context, userId string) ([]*EmbeddedWallet, error)
}

type embeddedWalletsDao struct {
	db *gorm.DB
}

// NewEmbeddedWalletsDao creates a new instance of EmbeddedWalletsDao.
func NewEmbeddedWalletsDao(db *gorm.DB) EmbeddedWalletsDao {
	return &embeddedWalletsDao{
		db: db,
	}
}

// Insert adds a new record to the embedded_wallets table.
func (d *embeddedWalletsDao) Insert(ctx context.Context, data *EmbeddedWallet) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// FindOneByUserChain retrieves the wallet a user holds on a given chain.
func (d *embeddedWalletsDao) FindOneByUserChain(ctx context.Context, userId, chainType string) (*EmbeddedWallet, error) {
	var resp EmbeddedWallet
	err := d.db.WithContext(ctx).Where("user_id = ? AND chain_type = ?", userId, chainType).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindOneByAddress retrieves a single wallet record by its address.
func (d *embeddedWalletsDao) FindOneByAddress(ctx context.Context, address string) (*EmbeddedWallet, error) {
	var resp EmbeddedWallet
	err := d.db.WithContext(ctx).Where("address = ?", address).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindByUser retrieves all wallet records owned by a user.
func (d *embeddedWalletsDao) FindByUser(ctx context.Context, userId string) ([]*EmbeddedWallet, error) {
	var wallets []*EmbeddedWallet
	err := d.db.WithContext(ctx).Where("user_id = ?", userId).Find(&wallets).Error
	if err != nil {
		return nil, err
	}
	return wallets, nil
}
