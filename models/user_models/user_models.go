package user_models

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/argon2"

	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/utils"
)

// Argon2id parameters
const (
	Memory      = 64 * 1024
	Iterations  = 3
	Parallelism = 4
	SaltLength  = 16
	KeyLength   = 64
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var ErrUserNotFound = errors.New("user not found")

// User is a salon customer or an admin account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	FCMToken     *string   `json:"fcm_token,omitempty"`  // most recently registered device
	FCMTokens    []string  `json:"fcm_tokens,omitempty"` // every registered device
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name for display in notifications.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func generateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPassword hashes a password using Argon2id
func HashPassword(password string) (string, error) {
	salt, err := generateSalt(SaltLength)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)

	saltBase64 := base64.RawStdEncoding.EncodeToString(salt)
	hashBase64 := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s$%s", saltBase64, hashBase64), nil
}

// VerifyPassword verifies a password against a stored hash
func VerifyPassword(password, storedHash string) (bool, error) {
	parts := strings.Split(storedHash, "$")
	if len(parts) != 2 {
		return false, errors.New("invalid stored hash format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, err
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, err
	}

	computedHash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)
	if subtle.ConstantTimeCompare(computedHash, expectedHash) == 1 {
		return true, nil
	}
	return false, nil
}

// GenerateAccessToken issues a signed JWT carrying the user id and role.
func GenerateAccessToken(userID uuid.UUID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(expiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(utils.GetJWTSecret())
}

// GenerateRefreshToken issues a long-lived refresh JWT.
func GenerateRefreshToken(userID uuid.UUID, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"type":    "refresh",
		"exp":     time.Now().Add(expiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(utils.GetJWTRefreshSecret())
}

const userColumns = `
	id, email, password_hash, first_name, last_name, role,
	fcm_token, fcm_tokens, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.FCMToken, &u.FCMTokens, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user with a hashed password.
func CreateUser(ctx context.Context, db *pgxpool.Pool, email, password, firstName, lastName, role string) (*User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for user: %w", err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := db.Exec(ctx, query, id, strings.ToLower(email), passwordHash, firstName, lastName, role, now, now); err != nil {
		logger.ErrorLogger.Errorf("Failed to insert user %s: %v", email, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.InfoLogger.Infof("User %s created with role %s", id, role)
	return &User{
		ID:        id,
		Email:     strings.ToLower(email),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetUserByID fetches a user by id.
func GetUserByID(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRow(ctx, query, userID))
}

// GetUserByEmail fetches a user by email.
func GetUserByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

// GetAdminUsers returns every user with the admin role.
func GetAdminUsers(ctx context.Context, db *pgxpool.Pool) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`

	rows, err := db.Query(ctx, query, RoleAdmin)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to query admin users: %v", err)
		return nil, fmt.Errorf("failed to query admin users: %w", err)
	}
	defer rows.Close()

	var admins []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		admins = append(admins, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read admin rows: %w", err)
	}
	return admins, nil
}

// RegisterDeviceToken records a device's FCM token for a user. The single
// fcm_token column always holds the latest token; fcm_tokens accumulates
// every device without duplicates.
func RegisterDeviceToken(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, token string) error {
	query := `
		UPDATE users
		SET fcm_token = $2,
		    fcm_tokens = (
		        SELECT array_agg(DISTINCT t)
		        FROM unnest(COALESCE(fcm_tokens, '{}') || $2::text) AS t
		    ),
		    updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, userID, token)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to register device token for user %s: %v", userID, err)
		return fmt.Errorf("failed to register device token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	logger.InfoLogger.Infof("Device token registered for user %s", userID)
	return nil
}

// SaveRefreshToken stores the latest refresh token on the user row.
func SaveRefreshToken(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, refreshToken string) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`,
		userID, refreshToken)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to save refresh token for user %s: %v", userID, err)
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}
