package di

import (
	"messaging-demo/backend/internal/service"
	"messaging-demo/backend/pkg/cache"
	"messaging-demo/backend/pkg/config"
	"messaging-demo/backend/pkg/jwt"
	"messaging-demo/backend/pkg/logger"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB             *gorm.DB
	Config         *config.Config
	Logger         *logger.Logger
	JWTService     *jwt.Service
	UserService    *service.UserService
	MessageService *service.MessageService
	Existence      *cache.UserExistence
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) *Container {
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userService := service.NewUserService(db, jwtService)

	var existence *cache.UserExistence
	if cfg.Cache.Enabled {
		existence = cache.NewUserExistence(cfg.Cache.Addr, cfg.Cache.TTL)
		userService.WithExistenceCache(existence)
	}

	messageService := service.NewMessageService(db, userService)

	return &Container{
		DB:             db,
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		UserService:    userService,
		MessageService: messageService,
		Existence:      existence,
	}
}
