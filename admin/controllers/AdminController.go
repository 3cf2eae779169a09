package controllers

import (
	"time"

	"business-permits-backend/admin/repositories"
	"business-permits-backend/middleware"

	"gorm.io/gorm"
)

// Token lifetimes. The refresh token lives in Redis and can be revoked
// server-side; the access token cannot and stays short.
const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 7 * 24 * time.Hour
)

type AdminController struct {
	UserRepo repositories.UserRepository
	AppCtx   *middleware.AppContext
	DB       *gorm.DB
}
