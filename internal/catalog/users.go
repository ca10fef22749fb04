package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ListUsers returns every user with their orders
func (s *Service) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	var out []models.UserResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		users, err := store.ListUsersWithOrders(tx)
		if err != nil {
			return err
		}
		out = make([]models.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, models.NewUserResponse(&users[i]))
		}
		return nil
	})
	return out, s.finish(userEntity, opList, err)
}

// GetUser returns one user with their orders
func (s *Service) GetUser(ctx context.Context, id uint) (models.UserResponse, error) {
	var out models.UserResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		u, err := store.UserWithOrders(tx, id)
		if err != nil {
			return missing(userEntity, id, err)
		}
		out = models.NewUserResponse(u)
		return nil
	})
	return out, s.finish(userEntity, opGet, err)
}

// CreateUser registers a user. The password is stored hashed.
func (s *Service) CreateUser(ctx context.Context, req models.UserCreate) (models.UserResponse, error) {
	var out models.UserResponse
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return out, s.finish(userEntity, opCreate, err)
	}
	err = s.store.Session(ctx, func(tx *gorm.DB) error {
		var u models.User
		req.Apply(&u, hash)
		if err := store.Add(tx, &u); err != nil {
			return err
		}
		return s.reloadUser(tx, u.ID, &out)
	})
	return out, s.finish(userEntity, opCreate, err)
}

// UpdateUser replaces every field of a user, including the password
func (s *Service) UpdateUser(ctx context.Context, id uint, req models.UserCreate) (models.UserResponse, error) {
	var out models.UserResponse
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return out, s.finish(userEntity, opUpdate, err)
	}
	err = s.store.Session(ctx, func(tx *gorm.DB) error {
		var u models.User
		if err := store.GetByID(tx, &u, id); err != nil {
			return missing(userEntity, id, err)
		}
		req.Apply(&u, hash)
		if err := store.Save(tx, &u); err != nil {
			return err
		}
		return s.reloadUser(tx, id, &out)
	})
	return out, s.finish(userEntity, opUpdate, err)
}

// PatchUser applies the fields present in p
func (s *Service) PatchUser(ctx context.Context, id uint, p models.UserPatch) (models.UserResponse, error) {
	var out models.UserResponse
	if err := p.Validate(); err != nil {
		return out, s.finish(userEntity, opPatch, err)
	}
	var hash string
	if p.Password.HasValue() {
		h, err := s.hashPassword(p.Password.Value)
		if err != nil {
			return out, s.finish(userEntity, opPatch, err)
		}
		hash = h
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var u models.User
		if err := store.GetByID(tx, &u, id); err != nil {
			return missing(userEntity, id, err)
		}
		p.Apply(&u)
		if hash != "" {
			u.PasswordHash = hash
		}
		if err := store.Save(tx, &u); err != nil {
			return err
		}
		return s.reloadUser(tx, id, &out)
	})
	return out, s.finish(userEntity, opPatch, err)
}

// DeleteUser removes a user
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var u models.User
		if err := store.GetByID(tx, &u, id); err != nil {
			return missing(userEntity, id, err)
		}
		return store.Remove(tx, &u)
	})
	return s.finish(userEntity, opDelete, err)
}

func (s *Service) reloadUser(tx *gorm.DB, id uint, out *models.UserResponse) error {
	u, err := store.UserWithOrders(tx, id)
	if err != nil {
		return err
	}
	*out = models.NewUserResponse(u)
	return nil
}

// bcrypt only reads the first 72 bytes, so passwords are digested first.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password)) == nil
}
