package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"-"` // never serialized
	RoleID       int    `json:"role_id"`
	IsVerified   bool   `json:"is_verified"`
	IsActive     bool   `json:"is_active"`

	// profile
	Bio        string `json:"bio"`
	AvatarPath string `json:"avatar_path"`
	Phone      string `json:"phone"`

	// Philippine address (PSGC codes + resolved names)
	RegionCode   string `json:"region_code"`
	RegionName   string `json:"region_name"`
	ProvinceCode string `json:"province_code"`
	ProvinceName string `json:"province_name"`
	CityCode     string `json:"city_code"`
	CityName     string `json:"city_name"`
	BarangayCode string `json:"barangay_code"`
	BarangayName string `json:"barangay_name"`

	CreatedAt time.Time `json:"created_at"`

	// refresh-token storage on the user row
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name" binding:"required"`
}
