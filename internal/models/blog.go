package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a published post. Slug is the public lookup key and is unique.
type Blog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"`
	Author          string             `bson:"author" json:"author"`
	Category        string             `bson:"category" json:"category"`
	Tags            []string           `bson:"tags" json:"tags"`
	ImageURL        string             `bson:"image_Url,omitempty" json:"image_Url,omitempty"`
	MetaTitle       string             `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string             `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Slug            string             `bson:"slug" json:"slug"`
	Keywords        []string           `bson:"keywords" json:"keywords"`
	CanonicalURL    string             `bson:"canonicalUrl,omitempty" json:"canonicalUrl,omitempty"`
	PublishedAt     time.Time          `bson:"publishedAt" json:"publishedAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BlogInput is the request body for create and update.
type BlogInput struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Author          string   `json:"author"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	ImageURL        string   `json:"image_Url"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Slug            string   `json:"slug"`
	Keywords        []string `json:"keywords"`
	CanonicalURL    string   `json:"canonicalUrl"`
}

func (in *BlogInput) Validate() error {
	return requireAll("Title, content, author, category, and slug are required",
		in.Title, in.Content, in.Author, in.Category, in.Slug)
}

// Normalize trims the slug and cleans list fields in place.
func (in *BlogInput) Normalize() {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Tags = normalizeList(in.Tags)
	in.Keywords = normalizeList(in.Keywords)
}
