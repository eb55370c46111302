package models

import (
	"encoding/json"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LessonID carries a lesson reference as supplied by a client. Seed data has
// numeric legacy ids while Mongo assigns ObjectIDs, so a cart may contain
// either form; JSON numbers and strings both decode into it.
type LessonID string

func (id *LessonID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LessonID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = LessonID(n.String())
	return nil
}

func (id LessonID) Legacy() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

func (id LessonID) ObjectID() (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	return oid, err == nil
}

type Lesson struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	LegacyID int64              `bson:"id,omitempty" json:"id,omitempty"`
	Subject  string             `bson:"subject" json:"subject"`
	Location string             `bson:"location" json:"location"`
	Price    float64            `bson:"price" json:"price"`
	Spaces   int                `bson:"spaces" json:"spaces"`
	Image    string             `bson:"image" json:"image"`
}

type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	LessonIDs  []LessonID         `bson:"lessonIDs" json:"lessonIDs"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	TotalItems int                `bson:"totalItems" json:"totalItems"`
	OrderDate  time.Time          `bson:"orderDate" json:"orderDate"`
	Status     string             `bson:"status" json:"status"`
}

const OrderStatusConfirmed = "confirmed"
