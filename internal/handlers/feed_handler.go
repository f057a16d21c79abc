package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/authz"
	"churchconnect/internal/models"
	"churchconnect/internal/services"
)

type FeedHandler struct {
	feed          *services.FeedService
	churchService *services.ChurchService
}

func NewFeedHandler(feed *services.FeedService, churchService *services.ChurchService) *FeedHandler {
	return &FeedHandler{feed: feed, churchService: churchService}
}

func (h *FeedHandler) Feed(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	posts, err := h.feed.Feed(userID, queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) ChurchPosts(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	churchID, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	posts, err := h.feed.ChurchPosts(userID, churchID, queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

type createPostRequest struct {
	ChurchID  int64  `json:"church_id" binding:"required"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImagePath string `json:"image_path"`
}

func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, roleID := getUserAndRole(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// only the church owner (or a super admin) posts on a church's behalf
	if !authz.IsSuperAdmin(roleID) {
		owned, err := h.churchService.OwnedBy(req.ChurchID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if !owned {
			c.JSON(http.StatusForbidden, gin.H{"error": "not the church owner"})
			return
		}
	}

	p := &models.Post{
		ChurchID:  req.ChurchID,
		AuthorID:  userID,
		Title:     req.Title,
		Body:      req.Body,
		ImagePath: req.ImagePath,
	}
	if err := h.feed.CreatePost(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *FeedHandler) GetPost(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.feed.GetPost(userID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.feed.DeletePost(userID, roleID, id); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post removed"})
}

func (h *FeedHandler) Like(c *gin.Context)   { h.postAction(c, h.feed.Like) }
func (h *FeedHandler) Unlike(c *gin.Context) { h.postAction(c, h.feed.Unlike) }

func (h *FeedHandler) Bookmark(c *gin.Context)   { h.postAction(c, h.feed.Bookmark) }
func (h *FeedHandler) Unbookmark(c *gin.Context) { h.postAction(c, h.feed.Unbookmark) }

func (h *FeedHandler) Bookmarks(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	posts, err := h.feed.Bookmarks(userID, queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) Follow(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	churchID, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.feed.Follow(userID, churchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "following"})
}

func (h *FeedHandler) Unfollow(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	churchID, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.feed.Unfollow(userID, churchID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unfollow failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

func (h *FeedHandler) FollowerCount(c *gin.Context) {
	churchID, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	n, err := h.feed.FollowerCount(churchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": n})
}

func (h *FeedHandler) Following(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	churches, err := h.feed.FollowedChurches(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, churches)
}

func (h *FeedHandler) postAction(c *gin.Context, fn func(userID int, postID int64) error) {
	userID, _ := getUserAndRole(c)
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := fn(userID, id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
