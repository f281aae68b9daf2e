package database

import (
	"database/sql"
	"fmt"

	"halvi-backend/internal/models"
)

type ProfileQueries struct {
	db *sql.DB
}

func NewProfileQueries(db *sql.DB) *ProfileQueries {
	return &ProfileQueries{db: db}
}

// CreateUserProfile creates an empty profile (called on registration)
func (q *ProfileQueries) CreateUserProfile(userID int) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)
		RETURNING id, user_id, first_name, last_name, phone, created_at, updated_at`

	var profile models.UserProfile
	err := q.db.QueryRow(query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FirstName, &profile.LastName,
		&profile.Phone, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	return &profile, nil
}

// GetUserProfile retrieves a user's profile, creating one for users that
// predate the profiles table
func (q *ProfileQueries) GetUserProfile(userID int) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1`

	var profile models.UserProfile
	err := q.db.QueryRow(query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FirstName, &profile.LastName,
		&profile.Phone, &profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return q.CreateUserProfile(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return &profile, nil
}

// UpdateUserProfile updates the profile fields
func (q *ProfileQueries) UpdateUserProfile(userID int, req *models.UserProfileRequest) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET first_name = $1, last_name = $2, phone = $3
		WHERE user_id = $4
		RETURNING id, user_id, first_name, last_name, phone, created_at, updated_at`

	var profile models.UserProfile
	err := q.db.QueryRow(query, req.FirstName, req.LastName, req.Phone, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FirstName, &profile.LastName,
		&profile.Phone, &profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return &profile, nil
}
