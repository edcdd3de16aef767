package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityRepository implements the domain's IdentityRepository interface using GORM.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
// It returns the repository as a repository.IdentityRepository interface, adhering to dependency inversion.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindByID retrieves a single identity by its unique ID, preloading its role-specific profile.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("DesignerProfile").
		First(&identityM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toIdentityDomain(&identityM), nil
}

// FindByEmail retrieves a single identity by its normalized email.
// Emails are stored lower-cased, so the lookup spans every role in one index scan.
func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var identityM model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("DesignerProfile").
		First(&identityM, "email = ?", entity.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity by email")
	}

	return toIdentityDomain(&identityM), nil
}

// Create persists a new identity entity, including its role-specific profile.
// GORM's Create with associations inserts into identities and the profile
// table within a single statement batch, and the unique index on email is the
// final authority on duplicates.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)

	if err := repo.db.WithContext(ctx).Create(identityM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrIdentityCreationFailed.WrapMessage("missing required identity information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrIdentityCreationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	// Propagate the generated ID and timestamps back onto the entity.
	identity.ID = identityM.ID
	identity.CreatedAt = identityM.CreatedAt
	identity.UpdatedAt = identityM.UpdatedAt

	if identity.Customer != nil && identityM.CustomerProfile != nil {
		identity.Customer.IdentityID = identityM.CustomerProfile.IdentityID
		identity.Customer.UpdatedAt = identityM.CustomerProfile.UpdatedAt
	}
	if identity.Designer != nil && identityM.DesignerProfile != nil {
		identity.Designer.IdentityID = identityM.DesignerProfile.IdentityID
		identity.Designer.UpdatedAt = identityM.DesignerProfile.UpdatedAt
	}

	return nil
}

// Update modifies an existing identity entity, including its profile, in the database.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)

	// Use Session with FullSaveAssociations to update the nested profile rows.
	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(identityM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrIdentityUpdateFailed.WrapMessage("missing required identity information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrIdentityUpdateFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update identity")
	}

	identity.UpdatedAt = identityM.UpdatedAt
	if identity.Customer != nil && identityM.CustomerProfile != nil {
		identity.Customer.UpdatedAt = identityM.CustomerProfile.UpdatedAt
	}
	if identity.Designer != nil && identityM.DesignerProfile != nil {
		identity.Designer.UpdatedAt = identityM.DesignerProfile.UpdatedAt
	}

	return nil
}

// Delete removes an identity row; the profile rows go with it via ON DELETE CASCADE.
func (repo *identityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.IdentityModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete identity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// ListByRole returns every identity carrying the given role, newest first.
func (repo *identityRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.Identity, error) {
	var models []*model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("DesignerProfile").
		Where("role = ?", string(role)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list identities by role")
	}

	identities := make([]*entity.Identity, 0, len(models))
	for _, m := range models {
		identities = append(identities, toIdentityDomain(m))
	}

	return identities, nil
}

// FindByPaymentMethod returns customers whose profile uses the given payment method.
func (repo *identityRepository) FindByPaymentMethod(ctx context.Context, paymentMethod string) ([]*entity.Identity, error) {
	var models []*model.IdentityModel
	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Joins("JOIN customer_profiles ON customer_profiles.identity_id = identities.id").
		Where("customer_profiles.payment_method = ?", paymentMethod).
		Order("identities.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find identities by payment method")
	}

	identities := make([]*entity.Identity, 0, len(models))
	for _, m := range models {
		identities = append(identities, toIdentityDomain(m))
	}

	return identities, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toIdentityDomain converts a GORM IdentityModel to a domain Identity entity.
func toIdentityDomain(data *model.IdentityModel) *entity.Identity {
	if data == nil {
		return nil
	}

	return &entity.Identity{
		ID:           data.ID,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		Customer:     toCustomerProfileDomain(data.CustomerProfile),
		Designer:     toDesignerProfileDomain(data.DesignerProfile),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromIdentityDomain converts a domain Identity entity to a GORM IdentityModel for persistence.
func fromIdentityDomain(data *entity.Identity) *model.IdentityModel {
	if data == nil {
		return nil
	}

	return &model.IdentityModel{
		ID:              data.ID,
		Email:           entity.NormalizeEmail(data.Email),
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		PasswordHash:    data.PasswordHash,
		Role:            string(data.Role),
		CustomerProfile: fromCustomerProfileDomain(data.Customer),
		DesignerProfile: fromDesignerProfileDomain(data.Designer),
	}
}

// toCustomerProfileDomain converts a GORM CustomerProfileModel to a domain CustomerProfile entity.
func toCustomerProfileDomain(data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	return &entity.CustomerProfile{
		IdentityID:    data.IdentityID,
		PaymentMethod: data.PaymentMethod,
		Balance:       data.Balance,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromCustomerProfileDomain converts a domain CustomerProfile entity to a GORM CustomerProfileModel.
func fromCustomerProfileDomain(data *entity.CustomerProfile) *model.CustomerProfileModel {
	if data == nil {
		return nil
	}

	return &model.CustomerProfileModel{
		IdentityID:    data.IdentityID,
		PaymentMethod: data.PaymentMethod,
		Balance:       data.Balance,
		UpdatedAt:     data.UpdatedAt,
	}
}

// toDesignerProfileDomain converts a GORM DesignerProfileModel to a domain DesignerProfile entity.
func toDesignerProfileDomain(data *model.DesignerProfileModel) *entity.DesignerProfile {
	if data == nil {
		return nil
	}

	return &entity.DesignerProfile{
		IdentityID:   data.IdentityID,
		PortfolioURL: data.PortfolioURL,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromDesignerProfileDomain converts a domain DesignerProfile entity to a GORM DesignerProfileModel.
func fromDesignerProfileDomain(data *entity.DesignerProfile) *model.DesignerProfileModel {
	if data == nil {
		return nil
	}

	return &model.DesignerProfileModel{
		IdentityID:   data.IdentityID,
		PortfolioURL: data.PortfolioURL,
		UpdatedAt:    data.UpdatedAt,
	}
}
