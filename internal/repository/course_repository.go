package repository

import (
	"eduverse_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Omit("Instructor", "Assignments").Create(course).Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Omit("Instructor", "Assignments").Save(course).Error
}

// UpdateModules rewrites only the module document of the course.
func (r *CourseRepository) UpdateModules(course *model.Course) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", course.ID).
		Update("modules", course.Modules).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.Preload("Instructor").First(&course, id).Error; err != nil {
		return nil, err
	}
	courses := []model.Course{course}
	if err := r.attachProjections(courses); err != nil {
		return nil, err
	}
	return &courses[0], nil
}

func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	if err := r.DB.Preload("Instructor").Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, r.attachProjections(courses)
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").
		Where("instructor_id = ?", instructorID).
		Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, r.attachProjections(courses)
}

// ListByStudent returns the student's courses in enrollment order.
func (r *CourseRepository) ListByStudent(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").
		Joins("JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("course_enrollments.student_id = ?", studentID).
		Order("course_enrollments.created_at ASC, courses.id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, r.attachProjections(courses)
}

// attachProjections fills Students (enrollment order) and AssignmentIDs with
// one query each for the whole batch.
func (r *CourseRepository) attachProjections(courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	var enrollments []model.Enrollment
	if err := r.DB.Where("course_id IN ?", ids).
		Order("created_at ASC, student_id ASC").
		Find(&enrollments).Error; err != nil {
		return err
	}

	var assignments []struct {
		ID       uint
		CourseID uint
	}
	if err := r.DB.Model(&model.Assignment{}).
		Select("id, course_id").
		Where("course_id IN ?", ids).
		Order("id ASC").
		Scan(&assignments).Error; err != nil {
		return err
	}

	students := make(map[uint][]uint, len(courses))
	for _, e := range enrollments {
		students[e.CourseID] = append(students[e.CourseID], e.StudentID)
	}
	assignmentIDs := make(map[uint][]uint, len(courses))
	for _, a := range assignments {
		assignmentIDs[a.CourseID] = append(assignmentIDs[a.CourseID], a.ID)
	}

	for i := range courses {
		courses[i].Students = students[courses[i].ID]
		if courses[i].Students == nil {
			courses[i].Students = []uint{}
		}
		courses[i].AssignmentIDs = assignmentIDs[courses[i].ID]
		if courses[i].AssignmentIDs == nil {
			courses[i].AssignmentIDs = []uint{}
		}
	}
	return nil
}
