package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/blogs"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/comments"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/feedbacks"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/media"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/tokens"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/users"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/middleware"
)

// MediaService is the image host surface used by the upload routes.
type MediaService interface {
	Upload(ctx context.Context, r io.Reader, size int64) (*media.Upload, error)
	Delete(ctx context.Context, folder, publicID string) error
	MaxBytes() int64
}

// API holds the services behind the /api routes.
type API struct {
	Blogs     *blogs.Service
	Comments  *comments.Service
	Feedbacks *feedbacks.Service
	Users     *users.Service
	Tokens    *tokens.Issuer
	// Media is nil when no image host is configured; upload routes then answer 503.
	Media MediaService

	// RequireUserToken gates admin routes behind a Bearer login token.
	RequireUserToken bool
	// OpenSignup leaves POST /users public.
	OpenSignup bool
}

// Register mounts every API route on rg. The API-key gate is applied by the
// caller on the whole prefix; this only decides which routes also need a user token.
func (a *API) Register(rg *gin.RouterGroup) {
	admin := middleware.Optional(a.RequireUserToken, middleware.AuthMiddleware(a.Tokens))
	signup := admin
	if a.OpenSignup {
		signup = func(c *gin.Context) { c.Next() }
	}

	b := rg.Group("/blogs")
	b.GET("", a.listBlogs)
	b.POST("", admin, a.createBlog)
	b.GET("/:slugOrId", a.getBlog)
	b.PUT("/:slugOrId", admin, a.updateBlog)
	b.DELETE("/:slugOrId", admin, a.deleteBlog)

	cm := rg.Group("/comments")
	cm.GET("", admin, a.listComments)
	cm.POST("", a.createComment)
	cm.GET("/:id", admin, a.getComment)
	cm.PUT("/:id", admin, a.updateComment)
	cm.DELETE("/:id", admin, a.deleteComment)

	fb := rg.Group("/feedbacks")
	fb.GET("", admin, a.listFeedbacks)
	fb.POST("", a.createFeedback)
	fb.GET("/:id", admin, a.getFeedback)
	fb.PUT("/:id", admin, a.updateFeedback)
	fb.DELETE("/:id", admin, a.deleteFeedback)

	u := rg.Group("/users")
	u.GET("", admin, a.listUsers)
	u.POST("", signup, a.createUser)
	u.GET("/:id", admin, a.getUser)
	u.PUT("/:id", admin, a.updateUser)
	u.DELETE("/:id", admin, a.deleteUser)

	rg.POST("/login", a.login)

	rg.POST("/upload", admin, a.upload)
	rg.DELETE("/upload/:folder/:publicId", admin, a.deleteUpload)
}
