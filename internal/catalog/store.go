package catalog

import (
	"errors"

	"catalog-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store owns all reads and writes against the two catalog entities.
// Every operation goes straight to the backing store; there is no
// in-memory caching.
type Store struct {
	db                *gorm.DB
	defaultCategoryID uint
}

func NewStore(db *gorm.DB, defaultCategoryID uint) *Store {
	return &Store{db: db, defaultCategoryID: defaultCategoryID}
}

func (s *Store) DefaultCategoryID() uint {
	return s.defaultCategoryID
}

func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) GetCategory(id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Store) GetCategoryByName(name string) (*models.Category, error) {
	var cat models.Category
	if err := s.db.Where("name = ?", name).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Store) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) ListProductsByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("category_id = ?", categoryID).Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *Store) CountProductsInCategory(categoryID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CreateCategory(name, description string) (*models.Category, error) {
	cat := models.Category{Name: name, Description: description}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkNameFree(tx, &models.Category{}, name, 0); err != nil {
			return err
		}
		return tx.Create(&cat).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return &cat, nil
}

func (s *Store) UpdateCategory(id uint, name, description string) (*models.Category, error) {
	if id == s.defaultCategoryID {
		return nil, ErrProtected
	}

	var cat models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := checkNameFree(tx, &models.Category{}, name, id); err != nil {
			return err
		}
		cat.Name = name
		cat.Description = description
		return tx.Save(&cat).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return &cat, nil
}

// DeleteCategory reassigns every product in the category to the default
// category, then deletes the row, in one transaction. Concurrent readers
// never observe a product pointing at a deleted category. The returned
// count is the number of products that were moved.
func (s *Store) DeleteCategory(id uint) (int64, error) {
	if id == s.defaultCategoryID {
		return 0, ErrProtected
	}

	var reassigned int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", s.defaultCategoryID)
		if res.Error != nil {
			return res.Error
		}
		reassigned = res.RowsAffected

		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return 0, err
	}
	return reassigned, nil
}

func (s *Store) CreateProduct(name, description string, price decimal.Decimal, stock int, categoryID uint) (*models.Product, error) {
	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkCategoryExists(tx, categoryID); err != nil {
			return err
		}
		if err := checkNameFree(tx, &models.Product{}, name, 0); err != nil {
			return err
		}
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return &product, nil
}

func (s *Store) UpdateProduct(id uint, name, description string, price decimal.Decimal, stock int, categoryID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := checkCategoryExists(tx, categoryID); err != nil {
			return err
		}
		if err := checkNameFree(tx, &models.Product{}, name, id); err != nil {
			return err
		}
		product.Name = name
		product.Description = description
		product.Price = price
		product.Stock = stock
		product.CategoryID = categoryID
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return &product, nil
}

func (s *Store) DeleteProduct(id uint) error {
	res := s.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func checkNameFree(tx *gorm.DB, model any, name string, excludeID uint) error {
	var count int64
	q := tx.Model(model).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return nil
}

func checkCategoryExists(tx *gorm.DB, categoryID uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidReference
	}
	return nil
}

// translateWriteError maps gorm's translated unique-constraint error onto
// ErrDuplicateName. The pre-checks above catch duplicates first under the
// expected single-operator load; the constraint is the backstop.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}
