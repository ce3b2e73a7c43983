package handlers

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/musab05/blog-posting-website/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the handler tests. They honor the same
// contracts as the Postgres implementations, including returning
// gorm.ErrRecordNotFound for missing rows.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UsernameTaken(username, excludeUserID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range r.users {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs map[string]*models.Blog
	seq   int
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*models.Blog)}
}

func (r *fakeBlogRepo) CreateBlog(blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	r.seq++
	blog.CreatedAt = time.Unix(int64(r.seq), 0)
	copied := *blog
	r.blogs[blog.ID] = &copied
	return nil
}

func (r *fakeBlogRepo) GetBlogByID(id string) (*models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.blogs[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBlogRepo) GetBlogForOwner(id, userID string) (*models.Blog, error) {
	blog, err := r.GetBlogByID(id)
	if err != nil || blog.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return blog, nil
}

func (r *fakeBlogRepo) UpdateBlog(blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[blog.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *blog
	r.blogs[blog.ID] = &copied
	return nil
}

func (r *fakeBlogRepo) published() []models.Blog {
	var out []models.Blog
	for _, b := range r.blogs {
		if !b.IsDraft {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeBlogRepo) GetPublished() ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published(), nil
}

func (r *fakeBlogRepo) GetPublishedPage(page, limit int) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.published()
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []models.Blog{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeBlogRepo) GetDraftsByUser(userID string) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Blog
	for _, b := range r.blogs {
		if b.IsDraft && b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) GetPublishedByUser(userID string) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Blog
	for _, b := range r.blogs {
		if !b.IsDraft && b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) IncrementLikesCount(id string) error {
	return r.add(id, func(b *models.Blog) { b.LikesCount++ })
}

func (r *fakeBlogRepo) DecrementLikesCount(id string) error {
	return r.add(id, func(b *models.Blog) { b.LikesCount-- })
}

func (r *fakeBlogRepo) IncrementViewsCount(id string) error {
	return r.add(id, func(b *models.Blog) { b.ViewsCount++ })
}

func (r *fakeBlogRepo) add(id string, fn func(*models.Blog)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(b)
	return nil
}

func (r *fakeBlogRepo) SumLikesByUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, b := range r.blogs {
		if b.UserID == userID {
			total += int64(b.LikesCount)
		}
	}
	return total, nil
}

func (r *fakeBlogRepo) SumViewsByUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, b := range r.blogs {
		if b.UserID == userID {
			total += int64(b.ViewsCount)
		}
	}
	return total, nil
}

func (r *fakeBlogRepo) Discover(tab string, limit, offset int) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.published()
	switch tab {
	case "popular":
		sort.Slice(all, func(i, j int) bool { return all[i].ViewsCount > all[j].ViewsCount })
	case "trending":
		sort.Slice(all, func(i, j int) bool { return all[i].LikesCount > all[j].LikesCount })
	}
	if offset >= len(all) {
		return []models.Blog{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeBlogRepo) SearchPublished(query string, limit int) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.Blog
	for _, b := range r.published() {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(string(b.Tags)), q) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	r.seq++
	comment.CreatedAt = time.Unix(int64(r.seq), 0)
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) GetByBlogID(blogID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.BlogID == blogID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) DeleteWithDirectReplies(id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := []string{id}
	for cid, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == id {
			deleted = append(deleted, cid)
		}
	}
	for _, cid := range deleted {
		delete(r.comments, cid)
	}
	return deleted, nil
}

type fakeEngagementRepo struct {
	mu    sync.Mutex
	likes map[string]*models.Like
	views map[string]*models.View
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		likes: make(map[string]*models.Like),
		views: make(map[string]*models.View),
	}
}

func pairKey(userID, blogID string) string { return userID + "|" + blogID }

func (r *fakeEngagementRepo) GetLike(userID, blogID string) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.likes[pairKey(userID, blogID)]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEngagementRepo) CreateLike(like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	copied := *like
	r.likes[pairKey(like.UserID, like.BlogID)] = &copied
	return nil
}

func (r *fakeEngagementRepo) DeleteLike(userID, blogID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(userID, blogID)
	if _, ok := r.likes[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeEngagementRepo) CountLikes(blogID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.BlogID == blogID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEngagementRepo) HasLiked(userID, blogID string) (bool, error) {
	_, err := r.GetLike(userID, blogID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeEngagementRepo) CreateViewIfAbsent(userID, blogID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(userID, blogID)
	if _, ok := r.views[key]; ok {
		return false, nil
	}
	r.views[key] = &models.View{ID: uuid.NewString(), UserID: userID, BlogID: blogID}
	return true, nil
}

type fakeFollowRepo struct {
	mu      sync.Mutex
	follows map[string]*models.Follow
	users   *fakeUserRepo
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[string]*models.Follow), users: users}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if follow.ID == "" {
		follow.ID = uuid.NewString()
	}
	copied := *follow
	r.follows[pairKey(follow.FollowerID, follow.FollowingID)] = &copied
	return nil
}

func (r *fakeFollowRepo) GetFollow(followerID, followingID string) (*models.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.follows[pairKey(followerID, followingID)]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFollowRepo) UpdateStatus(followerID, followingID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.follows[pairKey(followerID, followingID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Status = status
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(followerID, followingID)
	if _, ok := r.follows[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.follows, key)
	return nil
}

func (r *fakeFollowRepo) GetFollowers(userID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, f := range r.follows {
		if f.FollowingID == userID && f.Status != models.FollowStatusPending {
			if u, err := r.users.GetUserByID(f.FollowerID); err == nil {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) GetFollowing(userID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, f := range r.follows {
		if f.FollowerID == userID && f.Status != models.FollowStatusPending {
			if u, err := r.users.GetUserByID(f.FollowingID); err == nil {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) CountFollowers(userID string) (int64, error) {
	followers, _ := r.GetFollowers(userID)
	return int64(len(followers)), nil
}

func (r *fakeFollowRepo) CountFollowing(userID string) (int64, error) {
	following, _ := r.GetFollowing(userID)
	return int64(len(following)), nil
}

func (r *fakeFollowRepo) GetAcceptedFollowerIDs(userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, f := range r.follows {
		if f.FollowingID == userID && f.Status == models.FollowStatusAccepted {
			out = append(out, f.FollowerID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeFollowRepo) CountByFollowerAndStatus(followerID, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, f := range r.follows {
		if f.FollowerID == followerID && f.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	users         *fakeUserRepo
	failBatch     bool
}

func newFakeNotificationRepo(users *fakeUserRepo) *fakeNotificationRepo {
	return &fakeNotificationRepo{users: users}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.CreatedAt = time.Now()
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) CreateNotifications(notifications []models.Notification) error {
	if r.failBatch {
		return gorm.ErrInvalidData
	}
	for i := range notifications {
		if err := r.CreateNotification(&notifications[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetByReceiver(receiverID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].ReceiverID == receiverID {
			out = append(out, *r.notifications[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetFollowRequest(id, receiverID string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.ReceiverID == receiverID && n.Type == models.NotificationTypeFollow {
			copied := *n
			if sender, err := r.users.GetUserByID(n.SenderID); err == nil {
				copied.Sender = sender
			}
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) UpdateNotification(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID == notification.ID {
			copied := *notification
			r.notifications[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAsRead(id, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.ReceiverID == receiverID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ReceiverID == receiverID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(id, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID == id && n.ReceiverID == receiverID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) DeleteByCommentIDs(commentIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(commentIDs))
	for _, id := range commentIDs {
		ids[id] = true
	}
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.CommentID != nil && ids[*n.CommentID] {
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) byReceiver(receiverID string) []models.Notification {
	out, _ := r.GetByReceiver(receiverID)
	return out
}
