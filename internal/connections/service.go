package connections

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/metrics"
	"github.com/purva252/study-connect-hub/internal/models"
	"github.com/purva252/study-connect-hub/internal/store"
	"github.com/purva252/study-connect-hub/internal/utils"
)

// Principal is the authenticated caller, passed explicitly into every
// operation.
type Principal struct {
	UserID primitive.ObjectID
	Role   string
}

// Action is a response to a pending invite.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAccept:
		return ActionAccept, nil
	case ActionReject:
		return ActionReject, nil
	default:
		return "", fmt.Errorf("invalid action: %w", utils.ErrInvalidInput)
	}
}

// Resolver maps a caller-supplied teacher identifier (raw id or directory
// code) to the canonical teacher user id.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (primitive.ObjectID, error)
}

// Notifier pushes a best-effort event to a connected user.
type Notifier interface {
	Notify(userID string, event string, data map[string]interface{})
}

// Service enforces the invite/request lifecycle: records start pending and
// transition exactly once to accepted or rejected.
type Service struct {
	conns    store.ConnectionStore
	teachers store.TeacherProfileStore
	students store.StudentProfileStore
	users    store.UserStore
	resolver Resolver
	notifier Notifier
	log      *zap.Logger
}

func NewService(
	conns store.ConnectionStore,
	teachers store.TeacherProfileStore,
	students store.StudentProfileStore,
	users store.UserStore,
	resolver Resolver,
	notifier Notifier,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		conns:    conns,
		teachers: teachers,
		students: students,
		users:    users,
		resolver: resolver,
		notifier: notifier,
		log:      log,
	}
}

// Invite creates a pending connection from a teacher to a student.
func (s *Service) Invite(ctx context.Context, p Principal, studentID string) (*models.Connection, error) {
	if p.Role != models.RoleTeacher {
		return nil, fmt.Errorf("teacher access required: %w", utils.ErrForbidden)
	}

	sid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student id: %w", utils.ErrInvalidInput)
	}

	conn, err := s.create(ctx, p.UserID, sid, "invite already exists")
	if err != nil {
		return nil, err
	}

	metrics.ConnectionsCreated.WithLabelValues(models.RoleTeacher).Inc()
	s.notify(sid, "CONNECTION_INVITED", conn)
	return conn, nil
}

// Request creates a pending connection from a student to a teacher, resolving
// the identifier through the directory first.
func (s *Service) Request(ctx context.Context, p Principal, teacherIdentifier string) (*models.Connection, error) {
	if p.Role != models.RoleStudent {
		return nil, fmt.Errorf("student access required: %w", utils.ErrForbidden)
	}

	teacherID, err := s.resolver.Resolve(ctx, teacherIdentifier)
	if err != nil {
		return nil, err
	}

	conn, err := s.create(ctx, teacherID, p.UserID, "request already exists")
	if err != nil {
		return nil, err
	}

	metrics.ConnectionsCreated.WithLabelValues(models.RoleStudent).Inc()
	s.notify(teacherID, "CONNECTION_REQUESTED", conn)
	return conn, nil
}

// create is the single constructor behind both creation paths; the initiator
// role only affects authorization, never the record shape.
func (s *Service) create(ctx context.Context, teacherID, studentID primitive.ObjectID, existsMsg string) (*models.Connection, error) {
	if existing, err := s.conns.ByPair(ctx, teacherID, studentID); err == nil && existing != nil {
		return nil, fmt.Errorf("%s: %w", existsMsg, utils.ErrAlreadyExists)
	} else if err != nil && err != utils.ErrNotFound {
		return nil, err
	}

	conn := &models.Connection{
		TeacherID: teacherID,
		StudentID: studentID,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	// the unique pair index catches the loser of a concurrent create
	if err := s.conns.Insert(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Respond resolves a pending invite. Only the record's student may respond;
// a record that already left pending is never transitioned again.
func (s *Service) Respond(ctx context.Context, p Principal, connectionID string, action Action) (*models.Connection, error) {
	if p.Role != models.RoleStudent {
		return nil, fmt.Errorf("student access required: %w", utils.ErrForbidden)
	}

	id, err := primitive.ObjectIDFromHex(connectionID)
	if err != nil {
		return nil, fmt.Errorf("invalid connection id: %w", utils.ErrInvalidInput)
	}

	conn, err := s.conns.ByID(ctx, id)
	if err != nil {
		if err == utils.ErrNotFound {
			return nil, fmt.Errorf("invite not found: %w", utils.ErrNotFound)
		}
		return nil, err
	}

	if conn.StudentID != p.UserID {
		return nil, fmt.Errorf("not the invited student: %w", utils.ErrForbidden)
	}

	if conn.Status != models.StatusPending {
		return nil, fmt.Errorf("invite already responded: %w", utils.ErrAlreadyExists)
	}

	status := models.StatusRejected
	if action == ActionAccept {
		status = models.StatusAccepted
	}

	if err := s.conns.SetStatus(ctx, conn.ID, status); err != nil {
		return nil, err
	}
	conn.Status = status

	if status == models.StatusAccepted {
		// best-effort, non-atomic; a failure here is logged but never rolls
		// back the status change or fails the response
		if err := s.teachers.AppendStudent(ctx, conn.TeacherID, conn.StudentID); err != nil {
			metrics.ProfileAppendFailures.Inc()
			s.log.Warn("failed to append connected student",
				zap.String("teacher", conn.TeacherID.Hex()),
				zap.String("student", conn.StudentID.Hex()),
				zap.Error(err))
		}
		if err := s.students.AppendTeacher(ctx, conn.StudentID, conn.TeacherID); err != nil {
			metrics.ProfileAppendFailures.Inc()
			s.log.Warn("failed to append connected teacher",
				zap.String("teacher", conn.TeacherID.Hex()),
				zap.String("student", conn.StudentID.Hex()),
				zap.Error(err))
		}
	}

	metrics.ConnectionsResolved.WithLabelValues(string(status)).Inc()
	s.notify(conn.TeacherID, "CONNECTION_RESOLVED", conn)
	return conn, nil
}

// List returns the caller's connections with the counterpart populated.
func (s *Service) List(ctx context.Context, p Principal) ([]models.ConnectionView, error) {
	var (
		conns []models.Connection
		err   error
	)
	if p.Role == models.RoleTeacher {
		conns, err = s.conns.ByTeacher(ctx, p.UserID)
	} else {
		conns, err = s.conns.ByStudent(ctx, p.UserID)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(conns))
	for _, conn := range conns {
		ids = append(ids, s.counterpartID(p, conn))
	}
	users, err := s.users.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ConnectionView, 0, len(conns))
	for _, conn := range conns {
		view := models.ConnectionView{Connection: conn}
		if user, ok := users[s.counterpartID(p, conn)]; ok {
			summary := user.Summary()
			view.Counterpart = &summary
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) counterpartID(p Principal, conn models.Connection) primitive.ObjectID {
	if p.Role == models.RoleTeacher {
		return conn.StudentID
	}
	return conn.TeacherID
}

func (s *Service) notify(userID primitive.ObjectID, event string, conn *models.Connection) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(userID.Hex(), event, map[string]interface{}{
		"connectionId": conn.ID.Hex(),
		"teacher":      conn.TeacherID.Hex(),
		"student":      conn.StudentID.Hex(),
		"status":       string(conn.Status),
	})
}
