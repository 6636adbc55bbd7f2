package utils

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/normalization"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

func InputValidation(ctx context.Context, ffor string, userRepo repos.UserRepo, log *logger.Logger, user *types.User, phone, password string) error {
	validatedFor := normalization.ParseInputString(ffor)
	if validatedFor == "" {
		return fmt.Errorf("For string is nil, needs to be login or registration")
	}
	switch validatedFor {
	case "registration":
		if err := handleRegisterInputValidation(ctx, userRepo, log, user); err != nil {
			return err
		}
	case "login":
		if err := handleLoginInputValidation(ctx, log, phone, password); err != nil {
			return err
		}
	}
	return nil
}

func handleRegisterInputValidation(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
	if user == nil {
		return fmt.Errorf("No user given, cannot proceed with registration")
	}
	if user.Phone == "" {
		return fmt.Errorf("A phone number is required to register")
	}
	phoneExists, err := userRepo.PhoneExists(ctx, nil, user.Phone)
	if err != nil {
		return fmt.Errorf("Failed to check user phone")
	}
	if phoneExists {
		return fmt.Errorf("Phone already exists")
	}
	if user.Password == "" {
		return fmt.Errorf("A password is required to register")
	}
	if user.FullName == "" {
		return fmt.Errorf("A full name is required to register")
	}
	return nil
}

func handleLoginInputValidation(ctx context.Context, log *logger.Logger, phone, password string) error {
	if phone == "" {
		return fmt.Errorf("Phone is required to login")
	}
	if password == "" {
		return fmt.Errorf("Password is required to login")
	}
	return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("Failed to hash password")
	}
	user.Password = string(hashedPassword)
	return nil
}

func VerifyPassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return fmt.Errorf("Invalid credentials")
	}
	return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
	user.Phone = normalization.ParsePhone(user.Phone)
	user.FullName = normalization.ParseInputString(user.FullName)
	user.Gender = normalization.ParseInputString(user.Gender)
}
