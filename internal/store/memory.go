package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/purva252/study-connect-hub/internal/models"
	"github.com/purva252/study-connect-hub/internal/utils"
)

// In-memory implementations of the store interfaces, used by tests.

type MemoryConnections struct {
	mu    sync.RWMutex
	conns map[primitive.ObjectID]models.Connection
}

func NewMemoryConnections() *MemoryConnections {
	return &MemoryConnections{conns: make(map[primitive.ObjectID]models.Connection)}
}

func (s *MemoryConnections) Insert(_ context.Context, conn *models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.conns {
		if existing.TeacherID == conn.TeacherID && existing.StudentID == conn.StudentID {
			return fmt.Errorf("connection for pair: %w", utils.ErrAlreadyExists)
		}
	}
	if conn.ID.IsZero() {
		conn.ID = primitive.NewObjectID()
	}
	s.conns[conn.ID] = *conn
	return nil
}

func (s *MemoryConnections) ByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.conns[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &conn, nil
}

func (s *MemoryConnections) ByPair(_ context.Context, teacherID, studentID primitive.ObjectID) (*models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, conn := range s.conns {
		if conn.TeacherID == teacherID && conn.StudentID == studentID {
			conn := conn
			return &conn, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (s *MemoryConnections) ByTeacher(_ context.Context, teacherID primitive.ObjectID) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Connection
	for _, conn := range s.conns {
		if conn.TeacherID == teacherID {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (s *MemoryConnections) ByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Connection
	for _, conn := range s.conns {
		if conn.StudentID == studentID {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (s *MemoryConnections) SetStatus(_ context.Context, id primitive.ObjectID, status models.ConnectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn, ok := s.conns[id]
	if !ok {
		return utils.ErrNotFound
	}
	conn.Status = status
	s.conns[id] = conn
	return nil
}

type MemoryTeacherProfiles struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]models.TeacherProfile // keyed by userId
}

func NewMemoryTeacherProfiles() *MemoryTeacherProfiles {
	return &MemoryTeacherProfiles{profiles: make(map[primitive.ObjectID]models.TeacherProfile)}
}

func (s *MemoryTeacherProfiles) Insert(_ context.Context, profile *models.TeacherProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; ok {
		return fmt.Errorf("teacher profile: %w", utils.ErrAlreadyExists)
	}
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	if profile.ConnectedStudents == nil {
		profile.ConnectedStudents = []primitive.ObjectID{}
	}
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *MemoryTeacherProfiles) ByUserID(_ context.Context, userID primitive.ObjectID) (*models.TeacherProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &profile, nil
}

func (s *MemoryTeacherProfiles) ByCode(_ context.Context, code string) (*models.TeacherProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, profile := range s.profiles {
		if profile.Code == code {
			profile := profile
			return &profile, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (s *MemoryTeacherProfiles) All(_ context.Context) ([]models.TeacherProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TeacherProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		out = append(out, profile)
	}
	return out, nil
}

func (s *MemoryTeacherProfiles) AppendStudent(_ context.Context, teacherUserID, studentUserID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[teacherUserID]
	if !ok {
		return utils.ErrNotFound
	}
	for _, id := range profile.ConnectedStudents {
		if id == studentUserID {
			return nil
		}
	}
	profile.ConnectedStudents = append(profile.ConnectedStudents, studentUserID)
	s.profiles[teacherUserID] = profile
	return nil
}

type MemoryStudentProfiles struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]models.StudentProfile
}

func NewMemoryStudentProfiles() *MemoryStudentProfiles {
	return &MemoryStudentProfiles{profiles: make(map[primitive.ObjectID]models.StudentProfile)}
}

func (s *MemoryStudentProfiles) Insert(_ context.Context, profile *models.StudentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; ok {
		return fmt.Errorf("student profile: %w", utils.ErrAlreadyExists)
	}
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	if profile.ConnectedTeachers == nil {
		profile.ConnectedTeachers = []primitive.ObjectID{}
	}
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *MemoryStudentProfiles) ByUserID(_ context.Context, userID primitive.ObjectID) (*models.StudentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &profile, nil
}

func (s *MemoryStudentProfiles) AppendTeacher(_ context.Context, studentUserID, teacherUserID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[studentUserID]
	if !ok {
		return utils.ErrNotFound
	}
	for _, id := range profile.ConnectedTeachers {
		if id == teacherUserID {
			return nil
		}
	}
	profile.ConnectedTeachers = append(profile.ConnectedTeachers, teacherUserID)
	s.profiles[studentUserID] = profile
	return nil
}

type MemoryUsers struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUsers) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("user email: %w", utils.ErrAlreadyExists)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUsers) ByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &user, nil
}

func (s *MemoryUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (s *MemoryUsers) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[primitive.ObjectID]models.User, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}
