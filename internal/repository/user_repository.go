package repository

import (
	"eduverse_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

// FindByID loads the user with its enrolled-course projection.
func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	if err := r.attachEnrollments(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if err := r.attachEnrollments(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TakenBy reports whether column already holds value for a user other than
// excludeID. Pass 0 to check against every user.
func (r *UserRepository) TakenBy(column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&model.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// FindByIDs preserves no particular order; callers index by id.
func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) attachEnrollments(user *model.User) error {
	ids := []uint{}
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ?", user.ID).
		Order("created_at ASC, course_id ASC").
		Pluck("course_id", &ids).Error
	user.EnrolledCourses = ids
	return err
}
