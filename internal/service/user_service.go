package service

import (
	"context"
	"mime/multipart"
	"strings"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	Storage     *StorageService
	Leaderboard *LeaderboardService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService, leaderboard *LeaderboardService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage, Leaderboard: leaderboard}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) GetByEmail(email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, util.NewValidation("Email is required")
	}
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) List() ([]model.User, error) {
	return s.UserRepo.List()
}

// ProfileUpdate carries a multipart profile edit. Nil Interests and an empty
// About keep the stored values.
type ProfileUpdate struct {
	Name      string
	Email     string
	Username  string
	About     string
	Interests []string
	Image     *multipart.FileHeader
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Name == "" || in.Email == "" || in.Username == "" {
		return nil, util.NewValidation("Name, email, and username are required fields")
	}

	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	if taken, err := s.UserRepo.TakenBy("email", in.Email, id); err != nil {
		return nil, err
	} else if taken {
		return nil, util.ErrEmailInUse
	}
	if taken, err := s.UserRepo.TakenBy("username", in.Username, id); err != nil {
		return nil, err
	} else if taken {
		return nil, util.ErrUsernameInUse
	}

	oldImage := user.Image
	renamed := user.Name != in.Name
	if in.Image != nil {
		ref, err := s.Storage.UploadMultipart(ctx, util.FolderProfileImages, in.Image, util.AllowedImageExtensions)
		if err != nil {
			return nil, err
		}
		user.Image = ref
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Username = in.Username
	if strings.TrimSpace(in.About) != "" {
		user.About = in.About
	}
	if in.Interests != nil {
		user.Interests = normalizeTags(in.Interests)
	}

	if err := s.UserRepo.Update(user); err != nil {
		if in.Image != nil {
			s.Storage.Delete(ctx, user.Image.PublicID)
		}
		return nil, err
	}

	if in.Image != nil && oldImage.PublicID != "" {
		s.Storage.Delete(ctx, oldImage.PublicID)
	}
	// leaderboards show the student's name
	if renamed && s.Leaderboard != nil {
		s.Leaderboard.Invalidate(ctx, user.EnrolledCourses...)
	}
	return user, nil
}

// normalizeTags trims, drops empties and de-duplicates while keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
