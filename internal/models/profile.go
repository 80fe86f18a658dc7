package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TeacherProfile carries the teacher's shareable directory code and the
// reverse list of accepted students.
type TeacherProfile struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID            primitive.ObjectID   `bson:"userId" json:"userId"`
	Code              string               `bson:"code,omitempty" json:"code,omitempty"`
	ConnectedStudents []primitive.ObjectID `bson:"connectedStudents" json:"connectedStudents"`
}

type StudentProfile struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID            primitive.ObjectID   `bson:"userId" json:"userId"`
	ConnectedTeachers []primitive.ObjectID `bson:"connectedTeachers" json:"connectedTeachers"`
}
