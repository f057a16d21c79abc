package services

import (
	"fmt"
	"log"

	"churchconnect/internal/authz"
	"churchconnect/internal/models"
	"churchconnect/internal/repositories"
)

type FeedService struct {
	posts         *repositories.PostRepository
	follows       *repositories.FollowRepository
	churches      *repositories.ChurchRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewFeedService(
	posts *repositories.PostRepository,
	follows *repositories.FollowRepository,
	churches *repositories.ChurchRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) *FeedService {
	return &FeedService{
		posts:         posts,
		follows:       follows,
		churches:      churches,
		users:         users,
		notifications: notifications,
	}
}

func (s *FeedService) CreatePost(p *models.Post) error {
	if p.Body == "" && p.Title == "" {
		return fmt.Errorf("post is empty")
	}
	return s.posts.Create(p)
}

func (s *FeedService) GetPost(viewerID int, id int64) (*models.Post, error) {
	return s.posts.GetByID(viewerID, id)
}

func (s *FeedService) DeletePost(requesterID int, requesterRole int, id int64) error {
	p, err := s.posts.GetByID(requesterID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("post not found")
	}
	if p.AuthorID != requesterID && !authz.IsSuperAdmin(requesterRole) {
		return fmt.Errorf("not the author")
	}
	return s.posts.Delete(id)
}

func (s *FeedService) Feed(viewerID, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.posts.Feed(viewerID, limit, offset)
}

func (s *FeedService) ChurchPosts(viewerID int, churchID int64, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.posts.ListByChurch(viewerID, churchID, limit, offset)
}

func (s *FeedService) Bookmarks(viewerID, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.posts.ListBookmarked(viewerID, limit, offset)
}

func (s *FeedService) Like(userID int, postID int64) error {
	p, err := s.posts.GetByID(userID, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("post not found")
	}
	if err := s.posts.Like(postID, userID); err != nil {
		return err
	}

	// notify the author, unless they liked their own post
	if p.AuthorID != userID {
		liker, err := s.users.GetByID(userID)
		if err != nil || liker == nil {
			return nil
		}
		n := &models.Notification{
			UserID:  p.AuthorID,
			Type:    models.NotifyPostLiked,
			Message: fmt.Sprintf("%s liked your post", liker.DisplayName),
		}
		if err := s.notifications.Create(n); err != nil {
			log.Printf("[feed] like notification failed: %v", err)
		}
	}
	return nil
}

func (s *FeedService) Unlike(userID int, postID int64) error {
	return s.posts.Unlike(postID, userID)
}

func (s *FeedService) Bookmark(userID int, postID int64) error {
	return s.posts.Bookmark(postID, userID)
}

func (s *FeedService) Unbookmark(userID int, postID int64) error {
	return s.posts.Unbookmark(postID, userID)
}

func (s *FeedService) Follow(userID int, churchID int64) error {
	ch, err := s.churches.GetByID(churchID)
	if err != nil {
		return err
	}
	if ch == nil {
		return fmt.Errorf("church not found")
	}
	already, err := s.follows.IsFollowing(userID, churchID)
	if err != nil {
		return err
	}
	if err := s.follows.Follow(userID, churchID); err != nil {
		return err
	}
	if already {
		// repeat follow, no second notification
		return nil
	}

	follower, err := s.users.GetByID(userID)
	if err != nil || follower == nil {
		return nil
	}
	n := &models.Notification{
		UserID:  ch.OwnerID,
		Type:    models.NotifyNewFollower,
		Message: fmt.Sprintf("%s followed %s", follower.DisplayName, ch.Name),
	}
	if err := s.notifications.Create(n); err != nil {
		log.Printf("[feed] follow notification failed: %v", err)
	}
	return nil
}

func (s *FeedService) Unfollow(userID int, churchID int64) error {
	return s.follows.Unfollow(userID, churchID)
}

func (s *FeedService) FollowedChurches(userID int) ([]models.Church, error) {
	return s.follows.ListFollowed(userID)
}

func (s *FeedService) FollowerCount(churchID int64) (int, error) {
	return s.follows.FollowerCount(churchID)
}
