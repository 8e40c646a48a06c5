package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"eduverse_backend/internal/model"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/logger"

	"go.uber.org/zap"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	Storage    *StorageService
	Inference  *InferenceService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	inference *InferenceService,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		Storage:    storage,
		Inference:  inference,
	}
}

type CreateCourseInput struct {
	Name         string
	Description  string
	InstructorID uint
	Tags         []string
	Price        float64
	Duration     string
	Difficulty   int
	Image        *multipart.FileHeader
}

func (s *CourseService) Create(ctx context.Context, in CreateCourseInput) (*model.Course, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Description == "" || in.InstructorID == 0 {
		return nil, util.NewValidation("Please enter all fields")
	}
	if in.Price < 0 {
		return nil, util.NewValidation("Price cannot be negative")
	}

	instructor, err := s.UserRepo.FindByID(in.InstructorID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	if !instructor.IsTeacher() {
		return nil, util.ErrNotAnInstructor
	}

	course := &model.Course{
		Name:         in.Name,
		Description:  in.Description,
		InstructorID: instructor.ID,
		Tags:         normalizeTags(in.Tags),
		Price:        in.Price,
		Duration:     in.Duration,
		Difficulty:   in.Difficulty,
	}
	course.SetModules([]model.Module{})

	if in.Image != nil {
		ref, err := s.Storage.UploadMultipart(ctx, util.FolderCourseImages, in.Image, util.AllowedImageExtensions)
		if err != nil {
			return nil, err
		}
		course.Image = ref
	}

	if err := s.CourseRepo.Create(course); err != nil {
		s.Storage.Delete(ctx, course.Image.PublicID)
		return nil, err
	}
	course.Instructor = instructor
	course.Students = []uint{}
	course.AssignmentIDs = []uint{}
	return course, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return course, nil
}

func (s *CourseService) List() ([]model.Course, error) {
	return s.CourseRepo.List()
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

func (s *CourseService) ListByStudent(studentID uint) ([]model.Course, error) {
	if _, err := s.UserRepo.FindByID(studentID); err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return s.CourseRepo.ListByStudent(studentID)
}

// normalizeModules re-indexes order from 1, defaults the passing score and
// drops questions that cannot be graded.
func normalizeModules(modules []model.Module) []model.Module {
	out := make([]model.Module, 0, len(modules))
	for _, m := range modules {
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			continue
		}
		m.Order = len(out) + 1
		if m.Contents == nil {
			m.Contents = []model.Content{}
		}
		for i := range m.Contents {
			if !m.Contents[i].Type.Valid() {
				m.Contents[i].Type = model.ContentOther
			}
		}
		m.Quiz = normalizeQuiz(m.Quiz.Questions, m.Quiz.PassingScore)
		out = append(out, m)
	}
	return out
}

func normalizeQuiz(questions []model.Question, passingScore float64) model.Quiz {
	if passingScore <= 0 || passingScore > 100 {
		passingScore = model.DefaultPassingScore
	}
	valid := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Normalize() {
			valid = append(valid, q)
		}
	}
	return model.Quiz{Questions: valid, PassingScore: passingScore}
}

// GenerateModules replaces the course's modules with a plan generated from
// its description.
func (s *CourseService) GenerateModules(ctx context.Context, courseID uint) (*model.Course, error) {
	course, err := s.Get(courseID)
	if err != nil {
		return nil, err
	}

	modules, err := s.Inference.GenerateRoadmap(ctx, course.Description)
	if err != nil {
		return nil, err
	}

	course.SetModules(normalizeModules(modules))
	if err := s.CourseRepo.UpdateModules(course); err != nil {
		return nil, err
	}

	logger.Log.Info("Generated course modules",
		zap.Uint("course_id", courseID),
		zap.Int("modules", len(course.ModuleList())),
	)
	return course, nil
}

// UploadModuleContent stores a video and appends it to the module's contents.
func (s *CourseService) UploadModuleContent(ctx context.Context, courseID uint, moduleIdx int, title string, fh *multipart.FileHeader) (*model.Content, error) {
	if fh == nil {
		return nil, util.NewValidation("Please provide a video file in the 'content' field")
	}

	course, err := s.Get(courseID)
	if err != nil {
		return nil, err
	}
	module, ok := course.Module(moduleIdx)
	if !ok {
		return nil, util.ErrModuleNotFound
	}

	resource, err := s.Storage.UploadVideo(ctx, util.FolderModuleVideos, fh)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	}
	content := model.Content{
		Type:     model.ContentVideo,
		Title:    title,
		Resource: resource,
		Tags:     []string{},
	}
	module.Contents = append(module.Contents, content)

	modules := course.ModuleList()
	modules[moduleIdx] = module
	course.SetModules(modules)
	if err := s.CourseRepo.UpdateModules(course); err != nil {
		s.Storage.Delete(ctx, resource.PublicID)
		return nil, err
	}
	return &content, nil
}
