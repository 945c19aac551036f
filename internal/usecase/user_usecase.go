package usecase

import (
	"context"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	identity IdentityProvider
}

func NewUserUseCase(userRepo repository.UserRepository, identity IdentityProvider) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		identity: identity,
	}
}

// GetOrCreate returns the profile for an authenticated uid, creating a
// minimal one on first contact. Account creation itself happens in the
// identity provider; this only mirrors it into the users collection.
func (uc *UserUseCase) GetOrCreate(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	email, err := uc.identity.GetEmail(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to look up identity", err)
	}

	user = &entity.User{
		ID:    uid,
		Email: email,
		Role:  "user",
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

type UpdateProfileInput struct {
	Username  string
	Bio       string
	AvatarURL string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) RegisterFCMToken(ctx context.Context, uid, token string) error {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return err
	}

	user.FCMToken = token

	return uc.userRepo.Update(ctx, user)
}
