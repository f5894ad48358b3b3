package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/plateshare/backend/internal/models"
	"gorm.io/gorm"
)

// RelationKind selects one of the three structurally identical join
// relations handled by the RelationService.
type RelationKind string

const (
	RelationFavorite RelationKind = "favorite"
	RelationCart     RelationKind = "shopping_cart"
	RelationFollow   RelationKind = "follow"
)

// relationSpec describes how one relation kind maps onto its join
// entity, plus an optional extra invariant checked before Add.
type relationSpec struct {
	query  string
	model  func() interface{}
	record func(principal, target uuid.UUID) interface{}
	check  func(principal, target uuid.UUID) error
}

var relationSpecs = map[RelationKind]relationSpec{
	RelationFavorite: {
		query: "user_id = ? AND recipe_id = ?",
		model: func() interface{} { return &models.Favorite{} },
		record: func(principal, target uuid.UUID) interface{} {
			return &models.Favorite{UserID: principal, RecipeID: target}
		},
	},
	RelationCart: {
		query: "user_id = ? AND recipe_id = ?",
		model: func() interface{} { return &models.ShoppingCartEntry{} },
		record: func(principal, target uuid.UUID) interface{} {
			return &models.ShoppingCartEntry{UserID: principal, RecipeID: target}
		},
	},
	RelationFollow: {
		query: "user_id = ? AND author_id = ?",
		model: func() interface{} { return &models.Follow{} },
		record: func(principal, target uuid.UUID) interface{} {
			return &models.Follow{UserID: principal, AuthorID: target}
		},
		check: func(principal, target uuid.UUID) error {
			if principal == target {
				return ErrSelfReference
			}
			return nil
		},
	},
}

// RelationService implements the add/remove toggle shared by favorites,
// shopping carts and follows. Calling Add twice for the same pair is an
// error, not a no-op; duplicate user actions surface as client errors.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// Add inserts the (principal, target) pair and returns the created
// record. Fails with ErrAlreadyExists if the pair is present and with
// ErrSelfReference when a follow targets its own principal.
func (s *RelationService) Add(ctx context.Context, kind RelationKind, principal, target uuid.UUID) (interface{}, error) {
	spec, ok := relationSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown relation kind %q", kind)
	}
	if spec.check != nil {
		if err := spec.check(principal, target); err != nil {
			return nil, err
		}
	}

	record := spec.record(principal, target)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(spec.model()).Where(spec.query, principal, target).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, kind)
		}
		if err := tx.Create(record).Error; err != nil {
			// The unique index backstops the existence check under
			// concurrent inserts.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrAlreadyExists, kind)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Remove deletes the (principal, target) pair. Fails with ErrNotFound
// if the pair does not exist.
func (s *RelationService) Remove(ctx context.Context, kind RelationKind, principal, target uuid.UUID) error {
	spec, ok := relationSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown relation kind %q", kind)
	}
	result := s.db.WithContext(ctx).Where(spec.query, principal, target).Delete(spec.model())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, kind)
	}
	return nil
}

// Exists reports whether the (principal, target) pair is present.
func (s *RelationService) Exists(ctx context.Context, kind RelationKind, principal, target uuid.UUID) (bool, error) {
	spec, ok := relationSpecs[kind]
	if !ok {
		return false, fmt.Errorf("unknown relation kind %q", kind)
	}
	var count int64
	err := s.db.WithContext(ctx).Model(spec.model()).Where(spec.query, principal, target).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowedAuthors returns the authors the user subscribes to, oldest
// subscription first.
func (s *RelationService) FollowedAuthors(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var authors []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}
