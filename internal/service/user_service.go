package service

import (
	"context"
	"errors"

	"messaging-demo/backend/internal/models"
	"messaging-demo/backend/pkg/cache"
	"messaging-demo/backend/pkg/jwt"

	"gorm.io/gorm"
)

// UserService is the user directory: registration, authentication,
// existence lookup and listing of accounts.
type UserService struct {
	db        *gorm.DB
	jwt       *jwt.Service
	existence *cache.UserExistence
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, jwtService *jwt.Service) *UserService {
	return &UserService{db: db, jwt: jwtService}
}

// WithExistenceCache attaches an optional Redis existence cache
func (s *UserService) WithExistenceCache(c *cache.UserExistence) *UserService {
	s.existence = c
	return s
}

// Register creates a new user. The password is hashed here, before the
// persisted value is constructed, never in a persistence hook.
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	var existing models.User
	result := s.db.Where("email = ?", req.Email).First(&existing)
	if result.RowsAffected > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := models.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies credentials and issues a token
func (s *UserService) Authenticate(email, password string) (*models.User, string, error) {
	var user models.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", result.Error
	}

	if !models.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := s.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// MissingUsers returns the subset of ids that do not resolve to a user,
// preserving input order. Duplicate ids are checked like any other.
func (s *UserService) MissingUsers(ids []uint) ([]uint, error) {
	ctx := context.Background()

	unknown := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !s.existence.Known(ctx, id) {
			unknown = append(unknown, id)
		}
	}

	found := make(map[uint]bool, len(ids))
	if len(unknown) > 0 {
		var rows []models.User
		if err := s.db.Select("id").Where("id IN ?", unknown).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			found[u.ID] = true
			s.existence.MarkKnown(ctx, u.ID)
		}
	}

	var missing []uint
	for _, id := range ids {
		if s.existence.Known(ctx, id) || found[id] {
			continue
		}
		missing = append(missing, id)
	}
	return missing, nil
}

// ListExcluding returns every user except the excluded one. When an id is
// supplied the excluded user must exist.
func (s *UserService) ListExcluding(excludeID *uint) ([]models.User, error) {
	query := s.db.Order("id ASC")
	if excludeID != nil {
		missing, err := s.MissingUsers([]uint{*excludeID})
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, &UsersNotFoundError{MissingIDs: missing}
		}
		query = query.Where("id <> ?", *excludeID)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListPage returns one page of the directory, newest joiners first, plus
// the total count of users besides the excluded one.
func (s *UserService) ListPage(excludeID uint, page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Where("id <> ?", excludeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := s.db.Where("id <> ?", excludeID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
