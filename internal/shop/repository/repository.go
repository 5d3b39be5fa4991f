package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Shop      *ShopRepository
	JobCard   *JobCardRepository
	Inventory *InventoryRepository
	Mechanic  *MechanicRepository
	Supplier  *SupplierRepository
	PartOrder *PartOrderRepository
	Estimate  *EstimateRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Shop:      NewShopRepository(db),
		JobCard:   NewJobCardRepository(db),
		Inventory: NewInventoryRepository(db),
		Mechanic:  NewMechanicRepository(db),
		Supplier:  NewSupplierRepository(db),
		PartOrder: NewPartOrderRepository(db),
		Estimate:  NewEstimateRepository(db),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
