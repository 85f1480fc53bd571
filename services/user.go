package services

import (
	"context"
	"fmt"

	"disasterreport/model"
	"disasterreport/repository"
)

type UserService struct {
	repo   repository.UserRepository
	tokens *TokenIssuer
}

// NewUserService returns the service; tokens may be nil, in which case login issues no token.
func NewUserService(repo repository.UserRepository, tokens *TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

type SignupInput struct {
	MobileNumber string
	Name         string
	Email        string
	Password     string
	Mpin         string
}

type LoginResult struct {
	User        model.PublicUser
	Contacts    []model.Contact
	AccessToken string
}

// Signup registers a new user. A mobile number already registered yields repository.ErrConflict.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	mpinHash, err := HashMpin(in.Mpin)
	if err != nil {
		return nil, fmt.Errorf("hash mpin: %w", err)
	}
	user := &model.User{
		MobileNumber: in.MobileNumber,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: HashPassword(in.Password),
		MpinHash:     mpinHash,
		WalletAmount: 0,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the mpin and returns the caller's profile with every other user as a contact.
func (s *UserService) Login(ctx context.Context, mobile, mpin string) (*LoginResult, error) {
	user, err := s.repo.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if !CheckMpin(user.MpinHash, mpin) {
		return nil, ErrUnauthorized
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	contacts := make([]model.Contact, 0, len(users))
	for i := range users {
		if users[i].MobileNumber == user.MobileNumber {
			continue
		}
		contacts = append(contacts, users[i].Contact())
	}

	result := &LoginResult{User: user.Public(), Contacts: contacts}
	if s.tokens != nil && len(s.tokens.Secret) > 0 {
		if result.AccessToken, err = s.tokens.CreateAccessToken(user.MobileNumber); err != nil {
			return nil, fmt.Errorf("create access token: %w", err)
		}
	}
	return result, nil
}
