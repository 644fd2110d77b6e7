package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"
)

// categoryService implements the category directory.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// Exists reports whether a category with the given name exists.
func (s *categoryService) Exists(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// CreateCategory creates a new category with a unique name.
func (s *categoryService) CreateCategory(name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	exists, err := s.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by its unique name.
func (s *categoryService) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// ListCategories retrieves all categories ordered by name.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// DeleteCategory deletes a category. Purchases referencing it are kept with
// their category reference nulled out, so historical spending data survives
// category cleanup. Not-found is detected from the affected-row count.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Purchase{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		res := tx.Delete(&models.Category{}, categoryID)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrCategoryNotFound
		}
		return nil
	})
}

// LookupTx retrieves a category by name within an open transaction. A
// missing category is reported as ErrCategoryMissing: on the insert paths
// the caller was required to create the category first.
func (s *categoryService) LookupTx(tx *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	if err := tx.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryMissing, "category "+name+" does not exist")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// EnsureTx retrieves a category by name within an open transaction, creating
// it if absent. The second return value reports whether a row was created.
// Lookup and creation share the caller's transaction, so the directory state
// an ingest observes is atomic with respect to its own inserts.
func (s *categoryService) EnsureTx(tx *gorm.DB, name string) (*models.Category, bool, error) {
	var category models.Category
	err := tx.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category = models.Category{Name: name}
	if err := tx.Create(&category).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, true, nil
}
