package service

import (
	"context"
	"fmt"
	"strings"

	repository "github.com/dklimov443/carminder/internal/database/postgres"
	"github.com/dklimov443/carminder/internal/entity"

	"github.com/sirupsen/logrus"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && err != entity.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrUserAlreadyExists
	}

	user := &entity.User{
		Email:           email,
		Name:            req.Name,
		ReminderDays:    entity.DefaultReminderDays,
		ReminderEnabled: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logrus.Infof("User registered: ID=%d, Email=%s", user.ID, user.Email)
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Name != "" {
		user.Name = req.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateReminderSettings changes the lookahead window and the on/off
// switch for a user's reminders.
func (s *userService) UpdateReminderSettings(ctx context.Context, id int64, req *ReminderSettingsRequest) error {
	if req.ReminderDays < entity.MinReminderDays || req.ReminderDays > entity.MaxReminderDays {
		return entity.ErrInvalidReminderDays
	}

	enabled := true
	if req.ReminderEnabled != nil {
		enabled = *req.ReminderEnabled
	}

	if err := s.userRepo.UpdateReminderSettings(ctx, id, req.ReminderDays, enabled); err != nil {
		return err
	}

	logrus.Infof("Reminder settings updated: User=%d, Days=%d, Enabled=%t", id, req.ReminderDays, enabled)
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.GetAll(ctx)
}
