package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/purva252/study-connect-hub/internal/models"
)

// ConnectionStore persists connection records. Insert returns
// utils.ErrAlreadyExists when a record for the same (teacher, student) pair
// exists; lookups return utils.ErrNotFound on a miss.
type ConnectionStore interface {
	Insert(ctx context.Context, conn *models.Connection) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	ByPair(ctx context.Context, teacherID, studentID primitive.ObjectID) (*models.Connection, error)
	ByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Connection, error)
	ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Connection, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error
}

type TeacherProfileStore interface {
	Insert(ctx context.Context, profile *models.TeacherProfile) error
	ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.TeacherProfile, error)
	ByCode(ctx context.Context, code string) (*models.TeacherProfile, error)
	All(ctx context.Context) ([]models.TeacherProfile, error)
	AppendStudent(ctx context.Context, teacherUserID, studentUserID primitive.ObjectID) error
}

type StudentProfileStore interface {
	Insert(ctx context.Context, profile *models.StudentProfile) error
	ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.StudentProfile, error)
	AppendTeacher(ctx context.Context, studentUserID, teacherUserID primitive.ObjectID) error
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}
