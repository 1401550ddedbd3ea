package models

import (
	"github.com/google/uuid"
	"github.com/kitchencloud/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// RestaurantModel is the persistence model for restaurants
type RestaurantModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(200);not null;index"`
	OwnerName   string `gorm:"type:varchar(100)"`
	Email       string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(30)"`
	CuisineType string `gorm:"type:varchar(50)"`
	Address     string `gorm:"type:text"`
	Approved    bool   `gorm:"not null;default:false"`
	IsHouse     bool   `gorm:"column:is_house;not null;default:false"`
}

// TableName returns the table name for GORM
func (RestaurantModel) TableName() string {
	return "restaurants"
}

// ToDomain converts the model to a domain Restaurant
func (m *RestaurantModel) ToDomain() *catalog.Restaurant {
	return &catalog.Restaurant{
		BaseAggregateRoot: m.AggregateRoot(),
		Name:              m.Name,
		OwnerName:         m.OwnerName,
		Email:             m.Email,
		Phone:             m.Phone,
		CuisineType:       m.CuisineType,
		Address:           m.Address,
		Approved:          m.Approved,
		House:             m.IsHouse,
	}
}

// RestaurantModelFromDomain maps a domain Restaurant
func RestaurantModelFromDomain(r *catalog.Restaurant) *RestaurantModel {
	m := &RestaurantModel{
		Name:        r.Name,
		OwnerName:   r.OwnerName,
		Email:       r.Email,
		Phone:       r.Phone,
		CuisineType: r.CuisineType,
		Address:     r.Address,
		Approved:    r.Approved,
		IsHouse:     r.House,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}

// MenuItemModel is the persistence model for dishes.
// Deleted is a plain flag: soft-deleted rows stay visible to FindByID.
type MenuItemModel struct {
	AggregateModel
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(50)"`
	ImageURL     string          `gorm:"type:varchar(500)"`
	Veg          bool            `gorm:"not null;default:false"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_menu_items_price,price >= 0"`
	Available    bool            `gorm:"not null;default:true"`
	Deleted      bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the model to a domain MenuItem
func (m *MenuItemModel) ToDomain() *catalog.MenuItem {
	return &catalog.MenuItem{
		BaseAggregateRoot: m.AggregateRoot(),
		RestaurantID:      m.RestaurantID,
		Name:              m.Name,
		Description:       m.Description,
		Category:          m.Category,
		ImageURL:          m.ImageURL,
		Veg:               m.Veg,
		Price:             m.Price,
		Available:         m.Available,
		Deleted:           m.Deleted,
	}
}

// MenuItemModelFromDomain maps a domain MenuItem
func MenuItemModelFromDomain(i *catalog.MenuItem) *MenuItemModel {
	m := &MenuItemModel{
		RestaurantID: i.RestaurantID,
		Name:         i.Name,
		Description:  i.Description,
		Category:     i.Category,
		ImageURL:     i.ImageURL,
		Veg:          i.Veg,
		Price:        i.Price,
		Available:    i.Available,
		Deleted:      i.Deleted,
	}
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	return m
}
