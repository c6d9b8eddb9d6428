package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"user_id" db:"id"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty" db:"email"`
	Password  string    `bson:"password,omitempty" json:"-" db:"password"` // argon2id salt$hash
	Anonymous bool      `bson:"anonymous" json:"anonymous" db:"anonymous"`
	CreatedAt time.Time `bson:"created_at" json:"created_at" db:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}
