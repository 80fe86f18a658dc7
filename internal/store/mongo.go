package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/purva252/study-connect-hub/internal/models"
	"github.com/purva252/study-connect-hub/internal/utils"
)

// MongoConnections implements ConnectionStore over the connections collection.
type MongoConnections struct {
	col *mongo.Collection
}

func NewMongoConnections(db *mongo.Database) *MongoConnections {
	return &MongoConnections{col: db.Collection("connections")}
}

func (s *MongoConnections) Insert(ctx context.Context, conn *models.Connection) error {
	if conn.ID.IsZero() {
		conn.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, conn)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("connection for pair: %w", utils.ErrAlreadyExists)
	}
	return err
}

func (s *MongoConnections) ByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (s *MongoConnections) ByPair(ctx context.Context, teacherID, studentID primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := s.col.FindOne(ctx, bson.M{"teacher": teacherID, "student": studentID}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (s *MongoConnections) ByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.Connection, error) {
	return s.list(ctx, bson.M{"teacher": teacherID})
}

func (s *MongoConnections) ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Connection, error) {
	return s.list(ctx, bson.M{"student": studentID})
}

func (s *MongoConnections) list(ctx context.Context, filter bson.M) ([]models.Connection, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conns []models.Connection
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

func (s *MongoConnections) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ConnectionStatus) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// MongoTeacherProfiles implements TeacherProfileStore.
type MongoTeacherProfiles struct {
	col *mongo.Collection
}

func NewMongoTeacherProfiles(db *mongo.Database) *MongoTeacherProfiles {
	return &MongoTeacherProfiles{col: db.Collection("teacher_profiles")}
}

func (s *MongoTeacherProfiles) Insert(ctx context.Context, profile *models.TeacherProfile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	if profile.ConnectedStudents == nil {
		profile.ConnectedStudents = []primitive.ObjectID{}
	}
	_, err := s.col.InsertOne(ctx, profile)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("teacher profile: %w", utils.ErrAlreadyExists)
	}
	return err
}

func (s *MongoTeacherProfiles) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.TeacherProfile, error) {
	return s.findOne(ctx, bson.M{"userId": userID})
}

func (s *MongoTeacherProfiles) ByCode(ctx context.Context, code string) (*models.TeacherProfile, error) {
	return s.findOne(ctx, bson.M{"code": code})
}

func (s *MongoTeacherProfiles) findOne(ctx context.Context, filter bson.M) (*models.TeacherProfile, error) {
	var profile models.TeacherProfile
	err := s.col.FindOne(ctx, filter).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *MongoTeacherProfiles) All(ctx context.Context) ([]models.TeacherProfile, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.TeacherProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *MongoTeacherProfiles) AppendStudent(ctx context.Context, teacherUserID, studentUserID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(
		ctx,
		bson.M{"userId": teacherUserID},
		bson.M{"$addToSet": bson.M{"connectedStudents": studentUserID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// MongoStudentProfiles implements StudentProfileStore.
type MongoStudentProfiles struct {
	col *mongo.Collection
}

func NewMongoStudentProfiles(db *mongo.Database) *MongoStudentProfiles {
	return &MongoStudentProfiles{col: db.Collection("student_profiles")}
}

func (s *MongoStudentProfiles) Insert(ctx context.Context, profile *models.StudentProfile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	if profile.ConnectedTeachers == nil {
		profile.ConnectedTeachers = []primitive.ObjectID{}
	}
	_, err := s.col.InsertOne(ctx, profile)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("student profile: %w", utils.ErrAlreadyExists)
	}
	return err
}

func (s *MongoStudentProfiles) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *MongoStudentProfiles) AppendTeacher(ctx context.Context, studentUserID, teacherUserID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(
		ctx,
		bson.M{"userId": studentUserID},
		bson.M{"$addToSet": bson.M{"connectedTeachers": teacherUserID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// MongoUsers implements UserStore.
type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{col: db.Collection("users")}
}

func (s *MongoUsers) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user email: %w", utils.ErrAlreadyExists)
	}
	return err
}

func (s *MongoUsers) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUsers) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	result := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		result[user.ID] = user
	}
	return result, cursor.Err()
}
