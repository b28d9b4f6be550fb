package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"microblog/internal/domain"
	"microblog/internal/service"
)

const avatarSize = 128

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	posts     service.PostService
	graph     service.GraphService
	feed      service.FeedService
	logger    *logrus.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(users service.UserService, posts service.PostService, graph service.GraphService, feed service.FeedService, logger *logrus.Logger, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		users:     users,
		posts:     posts,
		graph:     graph,
		feed:      feed,
		logger:    logger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/posts/:id", h.getPost)
		api.GET("/users/:username", h.getProfile)
		api.GET("/users/:username/followers", h.listFollowers)
		api.GET("/users/:username/following", h.listFollowing)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	authed := api.Group("", h.authRequired())
	{
		authed.GET("/me", h.me)
		authed.PUT("/me", h.updateProfile)
		authed.POST("/posts", h.createPost)
		authed.GET("/feed", h.getFeed)
		authed.POST("/users/:username/follow", h.follow)
		authed.DELETE("/users/:username/follow", h.unfollow)
		authed.GET("/users/:username/follow", h.isFollowing)
	}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AboutMe   string `json:"about_me"`
}

type createPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.issueToken(user.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userToResponse(user),
	})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUserID(c), req.FirstName, req.LastName, req.AboutMe)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), currentUserID(c), req.Title, req.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postToResponse(*post))
}

func (h *Handler) getPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) getFeed(c *gin.Context) {
	posts, err := h.feed.FollowedPosts(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	followers, err := h.graph.CountFollowers(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	following, err := h.graph.CountFollowing(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	posts, err := h.posts.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	postResp := make([]PostResponse, len(posts))
	for i := range posts {
		postResp[i] = postToResponse(posts[i])
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User:      userToResponse(user),
		Followers: followers,
		Following: following,
		Posts:     postResp,
	})
}

func (h *Handler) follow(c *gin.Context) {
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.graph.Follow(c.Request.Context(), currentUserID(c), target.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": true})
}

func (h *Handler) unfollow(c *gin.Context) {
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.graph.Unfollow(c.Request.Context(), currentUserID(c), target.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false})
}

func (h *Handler) isFollowing(c *gin.Context) {
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	following, err := h.graph.IsFollowing(c.Request.Context(), currentUserID(c), target.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *Handler) listFollowers(c *gin.Context) {
	h.listRelated(c, h.graph.FollowersOf)
}

func (h *Handler) listFollowing(c *gin.Context) {
	h.listRelated(c, h.graph.FollowedBy)
}

func (h *Handler) listRelated(c *gin.Context, relation func(ctx context.Context, id int64) ([]int64, error)) {
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	ids, err := relation(c.Request.Context(), target.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(ids))
	for _, id := range ids {
		user, err := h.users.GetByID(c.Request.Context(), id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		resp = append(resp, userToResponse(user))
	}
	c.JSON(http.StatusOK, resp)
}

// respondError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is a storage-level failure and surfaces as a 500 so callers
// can retry; it is never flattened into an empty result.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateUsername), errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	AboutMe   string  `json:"about_me,omitempty"`
	AvatarURL string  `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
	LastSeen  *string `json:"last_seen,omitempty"`
}

type PostResponse struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"author_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type ProfileResponse struct {
	User      UserResponse   `json:"user"`
	Followers int64          `json:"followers"`
	Following int64          `json:"following"`
	Posts     []PostResponse `json:"posts"`
}

func userToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AboutMe:   user.AboutMe,
		AvatarURL: user.AvatarURL(avatarSize),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastSeen != nil {
		v := user.LastSeen.Format(time.RFC3339)
		resp.LastSeen = &v
	}
	return resp
}

func postToResponse(post domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
	}
}
