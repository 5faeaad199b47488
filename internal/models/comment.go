package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a visitor comment. BlogID is optional; when set the comment
// follows its blog on rename and is removed with it.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	BlogID    *primitive.ObjectID `bson:"blogId,omitempty" json:"blogId,omitempty"`
	BlogTitle string              `bson:"blogTitle" json:"blogTitle"`
	Phone     string              `bson:"phone" json:"phone"`
	Email     string              `bson:"email" json:"email"`
	Message   string              `bson:"message" json:"message"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type CommentInput struct {
	Name      string `json:"name"`
	BlogID    string `json:"blogId"`
	BlogTitle string `json:"blogTitle"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Validate expects BlogTitle to be resolved already when BlogID is given.
func (in *CommentInput) Validate() error {
	return requireAll("Name, blog title, phone, email, and message are required",
		in.Name, in.BlogTitle, in.Phone, in.Email, in.Message)
}
