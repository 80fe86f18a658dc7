package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnectionStatus string

const (
	StatusPending  ConnectionStatus = "pending"
	StatusAccepted ConnectionStatus = "accepted"
	StatusRejected ConnectionStatus = "rejected"
)

// Connection links one teacher and one student. At most one connection may
// exist per (teacher, student) pair; the unique compound index on the
// collection enforces this.
type Connection struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TeacherID primitive.ObjectID `bson:"teacher" json:"teacher"`
	StudentID primitive.ObjectID `bson:"student" json:"student"`
	Status    ConnectionStatus   `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ConnectionView is a connection with its counterpart populated for listing.
type ConnectionView struct {
	Connection
	Counterpart *UserSummary `json:"counterpart,omitempty"`
}
