// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"sokoni/internal/domain/entity"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/repository"
	"sokoni/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Create persists a new profile document for an account.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("profile document already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "profile references unknown account")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByAccountID retrieves the profile document for an account id.
func (repo *profileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by account id")
	}

	return toProfileDomain(&profileM), nil
}

// Update modifies an existing profile document.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	result := repo.db.WithContext(ctx).
		Where("account_id = ?", profile.AccountID).
		Updates(profileM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	profile := &entity.Profile{
		AccountID: data.AccountID,
		Role:      data.Role,
		SocialProfile: entity.SocialProfile{
			Bio:       data.Bio,
			AvatarURL: data.AvatarURL,
			Website:   data.Website,
		},
		Preferences: entity.Preferences{
			Notifications: entity.NotificationPreferences{
				Email:        data.Preferences.Notifications.Email,
				OrderUpdates: data.Preferences.Notifications.OrderUpdates,
				NewFollowers: data.Preferences.Notifications.NewFollowers,
				Promotions:   data.Preferences.Notifications.Promotions,
			},
			Privacy: entity.PrivacyPreferences{
				PublicProfile: data.Preferences.Privacy.PublicProfile,
				ShowEmail:     data.Preferences.Privacy.ShowEmail,
				ShowActivity:  data.Preferences.Privacy.ShowActivity,
			},
		},
		Stats: entity.Stats{
			Orders:     data.Stats.Orders,
			TotalSpend: data.Stats.TotalSpend,
			Reviews:    data.Stats.Reviews,
			Followers:  data.Stats.Followers,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	// The seller block exists only when a store name has been recorded.
	if data.StoreName != nil {
		seller := &entity.SellerProfile{
			StoreName: *data.StoreName,
		}
		if data.StoreDescription != nil {
			seller.StoreDescription = *data.StoreDescription
		}
		if data.SellerVerified != nil {
			seller.Verified = *data.SellerVerified
		}
		if data.SellerRating != nil {
			seller.Rating = *data.SellerRating
		}
		if data.SalesCount != nil {
			seller.SalesCount = *data.SalesCount
		}
		profile.SellerProfile = seller
	}

	return profile
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	profileM := &model.ProfileModel{
		AccountID: data.AccountID,
		Role:      data.Role,
		Bio:       data.SocialProfile.Bio,
		AvatarURL: data.SocialProfile.AvatarURL,
		Website:   data.SocialProfile.Website,
		Preferences: model.PreferencesDoc{
			Notifications: model.NotificationPreferencesDoc{
				Email:        data.Preferences.Notifications.Email,
				OrderUpdates: data.Preferences.Notifications.OrderUpdates,
				NewFollowers: data.Preferences.Notifications.NewFollowers,
				Promotions:   data.Preferences.Notifications.Promotions,
			},
			Privacy: model.PrivacyPreferencesDoc{
				PublicProfile: data.Preferences.Privacy.PublicProfile,
				ShowEmail:     data.Preferences.Privacy.ShowEmail,
				ShowActivity:  data.Preferences.Privacy.ShowActivity,
			},
		},
		Stats: model.StatsDoc{
			Orders:     data.Stats.Orders,
			TotalSpend: data.Stats.TotalSpend,
			Reviews:    data.Stats.Reviews,
			Followers:  data.Stats.Followers,
		},
	}

	if seller := data.SellerProfile; seller != nil {
		profileM.StoreName = &seller.StoreName
		profileM.StoreDescription = &seller.StoreDescription
		profileM.SellerVerified = &seller.Verified
		profileM.SellerRating = &seller.Rating
		profileM.SalesCount = &seller.SalesCount
	}

	return profileM
}
