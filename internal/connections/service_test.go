package connections_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/purva252/study-connect-hub/internal/connections"
	"github.com/purva252/study-connect-hub/internal/models"
	"github.com/purva252/study-connect-hub/internal/store"
	"github.com/purva252/study-connect-hub/internal/teachers"
	"github.com/purva252/study-connect-hub/internal/utils"
)

type fixture struct {
	svc      *connections.Service
	conns    *store.MemoryConnections
	teachers *store.MemoryTeacherProfiles
	students *store.MemoryStudentProfiles
	users    *store.MemoryUsers
	notifier *fakeNotifier
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Notify(_ string, event string, _ map[string]interface{}) {
	n.events = append(n.events, event)
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		conns:    store.NewMemoryConnections(),
		teachers: store.NewMemoryTeacherProfiles(),
		students: store.NewMemoryStudentProfiles(),
		users:    store.NewMemoryUsers(),
		notifier: &fakeNotifier{},
	}
	directory := teachers.NewDirectory(f.teachers, f.users)
	f.svc = connections.NewService(f.conns, f.teachers, f.students, f.users, directory, f.notifier, nil)
	return f
}

func (f *fixture) createTeacher(t *testing.T, name, code string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@school.test", Role: models.RoleTeacher}
	require.NoError(t, f.users.Insert(context.Background(), &user))
	require.NoError(t, f.teachers.Insert(context.Background(), &models.TeacherProfile{
		UserID: user.ID,
		Code:   code,
	}))
	return user
}

func (f *fixture) createStudent(t *testing.T, name string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@school.test", Role: models.RoleStudent}
	require.NoError(t, f.users.Insert(context.Background(), &user))
	require.NoError(t, f.students.Insert(context.Background(), &models.StudentProfile{UserID: user.ID}))
	return user
}

func asTeacher(u models.User) connections.Principal {
	return connections.Principal{UserID: u.ID, Role: models.RoleTeacher}
}

func asStudent(u models.User) connections.Principal {
	return connections.Principal{UserID: u.ID, Role: models.RoleStudent}
}

func TestInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending record", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")

		conn, err := f.svc.Invite(ctx, asTeacher(teacher), student.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, conn.Status)
		assert.Equal(t, teacher.ID, conn.TeacherID)
		assert.Equal(t, student.ID, conn.StudentID)
		assert.False(t, conn.CreatedAt.IsZero())
		assert.Contains(t, f.notifier.events, "CONNECTION_INVITED")
	})

	t.Run("duplicate pair conflicts", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")

		_, err := f.svc.Invite(ctx, asTeacher(teacher), student.ID.Hex())
		require.NoError(t, err)

		_, err = f.svc.Invite(ctx, asTeacher(teacher), student.ID.Hex())
		assert.ErrorIs(t, err, utils.ErrAlreadyExists)
	})

	t.Run("student caller forbidden", func(t *testing.T) {
		f := setup(t)
		student := f.createStudent(t, "s1")

		_, err := f.svc.Invite(ctx, asStudent(student), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("malformed student id rejected", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")

		_, err := f.svc.Invite(ctx, asTeacher(teacher), "not-an-id")
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	})
}

func TestRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("by raw teacher id", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")

		conn, err := f.svc.Request(ctx, asStudent(student), teacher.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, teacher.ID, conn.TeacherID)
		assert.Equal(t, models.StatusPending, conn.Status)
		assert.Contains(t, f.notifier.events, "CONNECTION_REQUESTED")
	})

	t.Run("by directory code references canonical id", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "ABC123")
		student := f.createStudent(t, "s1")

		conn, err := f.svc.Request(ctx, asStudent(student), "ABC123")
		require.NoError(t, err)
		assert.Equal(t, teacher.ID, conn.TeacherID)
	})

	t.Run("unknown code not found", func(t *testing.T) {
		f := setup(t)
		student := f.createStudent(t, "s1")

		_, err := f.svc.Request(ctx, asStudent(student), "NOPE")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("unknown teacher id not found", func(t *testing.T) {
		f := setup(t)
		student := f.createStudent(t, "s1")

		_, err := f.svc.Request(ctx, asStudent(student), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("second request conflicts", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "ABC123")
		student := f.createStudent(t, "s1")

		_, err := f.svc.Request(ctx, asStudent(student), "ABC123")
		require.NoError(t, err)

		_, err = f.svc.Request(ctx, asStudent(student), teacher.ID.Hex())
		assert.ErrorIs(t, err, utils.ErrAlreadyExists)
	})

	t.Run("teacher caller forbidden", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "ABC123")

		_, err := f.svc.Request(ctx, asTeacher(teacher), "ABC123")
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	invite := func(t *testing.T, f *fixture, teacher, student models.User) *models.Connection {
		t.Helper()
		conn, err := f.svc.Invite(ctx, asTeacher(teacher), student.ID.Hex())
		require.NoError(t, err)
		return conn
	}

	t.Run("accept updates status and both profiles", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")
		conn := invite(t, f, teacher, student)

		updated, err := f.svc.Respond(ctx, asStudent(student), conn.ID.Hex(), connections.ActionAccept)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)

		tp, err := f.teachers.ByUserID(ctx, teacher.ID)
		require.NoError(t, err)
		assert.Contains(t, tp.ConnectedStudents, student.ID)

		sp, err := f.students.ByUserID(ctx, student.ID)
		require.NoError(t, err)
		assert.Contains(t, sp.ConnectedTeachers, teacher.ID)

		assert.Contains(t, f.notifier.events, "CONNECTION_RESOLVED")
	})

	t.Run("reject updates status without profile writes", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")
		conn := invite(t, f, teacher, student)

		updated, err := f.svc.Respond(ctx, asStudent(student), conn.ID.Hex(), connections.ActionReject)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, updated.Status)

		tp, err := f.teachers.ByUserID(ctx, teacher.ID)
		require.NoError(t, err)
		assert.Empty(t, tp.ConnectedStudents)
	})

	t.Run("only the invited student may respond", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")
		other := f.createStudent(t, "s2")
		conn := invite(t, f, teacher, student)

		_, err := f.svc.Respond(ctx, asStudent(other), conn.ID.Hex(), connections.ActionAccept)
		assert.ErrorIs(t, err, utils.ErrForbidden)

		stored, err := f.conns.ByID(ctx, conn.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, stored.Status)
	})

	t.Run("transition is one-shot", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")
		conn := invite(t, f, teacher, student)

		_, err := f.svc.Respond(ctx, asStudent(student), conn.ID.Hex(), connections.ActionAccept)
		require.NoError(t, err)

		_, err = f.svc.Respond(ctx, asStudent(student), conn.ID.Hex(), connections.ActionReject)
		assert.ErrorIs(t, err, utils.ErrAlreadyExists)

		stored, err := f.conns.ByID(ctx, conn.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, stored.Status)
	})

	t.Run("missing record not found", func(t *testing.T) {
		f := setup(t)
		student := f.createStudent(t, "s1")

		_, err := f.svc.Respond(ctx, asStudent(student), primitive.NewObjectID().Hex(), connections.ActionAccept)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("profile append failure does not fail the response", func(t *testing.T) {
		f := setup(t)
		teacher := f.createTeacher(t, "t1", "CODE1111")
		student := f.createStudent(t, "s1")
		conn := invite(t, f, teacher, student)

		// simulate the missing student profile side of a partial write
		f.students = store.NewMemoryStudentProfiles()
		directory := teachers.NewDirectory(f.teachers, f.users)
		f.svc = connections.NewService(f.conns, f.teachers, f.students, f.users, directory, f.notifier, nil)

		updated, err := f.svc.Respond(ctx, asStudent(student), conn.ID.Hex(), connections.ActionAccept)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	f := setup(t)
	teacher := f.createTeacher(t, "t1", "CODE1111")
	s1 := f.createStudent(t, "s1")
	s2 := f.createStudent(t, "s2")

	_, err := f.svc.Invite(ctx, asTeacher(teacher), s1.ID.Hex())
	require.NoError(t, err)
	_, err = f.svc.Invite(ctx, asTeacher(teacher), s2.ID.Hex())
	require.NoError(t, err)

	t.Run("teacher sees students as counterparts", func(t *testing.T) {
		views, err := f.svc.List(ctx, asTeacher(teacher))
		require.NoError(t, err)
		require.Len(t, views, 2)

		names := make([]string, 0, len(views))
		for _, v := range views {
			require.NotNil(t, v.Counterpart)
			names = append(names, v.Counterpart.Name)
		}
		assert.ElementsMatch(t, []string{"s1", "s2"}, names)
	})

	t.Run("student sees teacher as counterpart", func(t *testing.T) {
		views, err := f.svc.List(ctx, asStudent(s1))
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.NotNil(t, views[0].Counterpart)
		assert.Equal(t, "t1", views[0].Counterpart.Name)
	})

	t.Run("empty for unknown caller", func(t *testing.T) {
		views, err := f.svc.List(ctx, asStudent(models.User{ID: primitive.NewObjectID()}))
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestParseAction(t *testing.T) {
	for _, valid := range []string{"accept", "reject"} {
		_, err := connections.ParseAction(valid)
		assert.NoError(t, err)
	}
	for _, invalid := range []string{"", "Accept", "approve", "ACCEPT"} {
		_, err := connections.ParseAction(invalid)
		assert.True(t, errors.Is(err, utils.ErrInvalidInput), "expected invalid input for %q", invalid)
	}
}
