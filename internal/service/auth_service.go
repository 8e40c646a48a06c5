package service

import (
	"errors"
	"strings"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type SignupInput struct {
	Username string
	Name     string
	Email    string
	Password string
	Role     string
}

// ParseRole accepts the signup roles case-insensitively. Empty means Student.
func ParseRole(role string) (model.UserRole, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", "student":
		return model.Student, true
	case "teacher":
		return model.Teacher, true
	}
	return "", false
}

func (s *AuthService) Signup(in SignupInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, util.NewValidation("Please enter all credentials")
	}
	role, ok := ParseRole(in.Role)
	if !ok {
		return nil, util.NewValidation("Role must be Student or Teacher")
	}

	if taken, err := s.UserRepo.TakenBy("email", in.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, util.ErrEmailInUse
	}
	if taken, err := s.UserRepo.TakenBy("username", in.Username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, util.ErrUsernameInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  in.Username,
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hashedPassword),
		Role:      role,
		Interests: []string{},
	}
	if err := s.UserRepo.Create(user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, util.NewValidation("Please enter all credentials")
	}

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
