package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/ahkili-app/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	echo     *echo.Echo
	notifier *notifier.Notifier
	comments *CommentHandler
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityFollower{},
		&models.Post{},
		&models.Comment{},
		&models.PostReaction{},
		&models.CommentReaction{},
		&models.Notification{},
		&models.NotificationPreference{},
	))

	n := notifier.New(
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewPostgresPreferenceRepository(db),
		repositories.NewPostgresFollowerRepository(db),
		1,
	)
	t.Cleanup(n.Close)

	e := echo.New()
	e.Validator = validators.NewValidator()

	return &testEnv{
		db:       db,
		echo:     e,
		notifier: n,
		comments: NewCommentHandler(
			repositories.NewPostgresCommentRepository(db),
			repositories.NewPostgresPostRepository(db),
			repositories.NewPostgresUserRepository(db),
			repositories.NewPostgresCommentReactionRepository(db),
			n,
		),
	}
}

func (env *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) post(t *testing.T, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Title: title, Content: "content"}
	require.NoError(t, env.db.Create(post).Error)
	return post
}

func (env *testEnv) comment(t *testing.T, postID, userID uint, parentID *uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{PostID: postID, UserID: userID, ParentID: parentID, Content: content}
	require.NoError(t, env.db.Create(comment).Error)
	return comment
}

// postJSON runs a handler against a POST request with path and query
// params already bound, echo-test style.
func (env *testEnv) postJSON(t *testing.T, handler echo.HandlerFunc, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := handler(c); err != nil {
		env.echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestBuildCommentTree(t *testing.T) {
	t.Run("replies attach under their parent in order", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		replier := env.user(t, "replier")
		post := env.post(t, author.ID, "Thread")

		first := env.comment(t, post.ID, author.ID, nil, "first")
		second := env.comment(t, post.ID, author.ID, nil, "second")
		replyA := env.comment(t, post.ID, replier.ID, &first.ID, "reply a")
		replyB := env.comment(t, post.ID, replier.ID, &first.ID, "reply b")

		rows, err := repositories.NewPostgresCommentRepository(env.db).GetCommentsByPostID(post.ID)
		require.NoError(t, err)
		tree := env.comments.buildCommentTree(rows, 0)

		require.Len(t, tree, 2)
		assert.Equal(t, first.ID, tree[0].ID)
		assert.Equal(t, second.ID, tree[1].ID)
		require.Len(t, tree[0].Replies, 2)
		assert.Equal(t, replyA.ID, tree[0].Replies[0].ID)
		assert.Equal(t, replyB.ID, tree[0].Replies[1].ID)
		assert.Empty(t, tree[1].Replies)

		assert.Equal(t, "author", tree[0].Author.Username)
		assert.Equal(t, "replier", tree[0].Replies[0].Author.Username)
	})

	t.Run("orphaned replies are dropped", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		post := env.post(t, author.ID, "Thread")
		other := env.post(t, author.ID, "Other thread")

		env.comment(t, post.ID, author.ID, nil, "top")
		foreign := env.comment(t, other.ID, author.ID, nil, "elsewhere")
		env.comment(t, post.ID, author.ID, &foreign.ID, "orphan")

		rows, err := repositories.NewPostgresCommentRepository(env.db).GetCommentsByPostID(post.ID)
		require.NoError(t, err)
		tree := env.comments.buildCommentTree(rows, 0)

		require.Len(t, tree, 1)
		assert.Empty(t, tree[0].Replies)
	})

	t.Run("viewer reaction and counts are filled in", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		viewer := env.user(t, "viewer")
		other := env.user(t, "other")
		post := env.post(t, author.ID, "Thread")
		comment := env.comment(t, post.ID, author.ID, nil, "top")

		reactions := repositories.NewPostgresCommentReactionRepository(env.db)
		_, err := reactions.Toggle(comment.ID, viewer.ID, models.ReactionLike)
		require.NoError(t, err)
		_, err = reactions.Toggle(comment.ID, other.ID, models.ReactionDislike)
		require.NoError(t, err)

		rows, err := repositories.NewPostgresCommentRepository(env.db).GetCommentsByPostID(post.ID)
		require.NoError(t, err)

		tree := env.comments.buildCommentTree(rows, viewer.ID)
		require.Len(t, tree, 1)
		assert.Equal(t, int64(1), tree[0].Likes)
		assert.Equal(t, int64(1), tree[0].Dislikes)
		assert.Equal(t, models.ReactionLike, tree[0].UserReaction)

		anonymous := env.comments.buildCommentTree(rows, 0)
		assert.Equal(t, "", anonymous[0].UserReaction)
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("creates and notifies the post author", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		commenter := env.user(t, "commenter")
		post := env.post(t, author.ID, "Thread")

		rec := env.postJSON(t, env.comments.CreateComment,
			"/comments/post/"+strconv.Itoa(int(post.ID))+"?user_id="+strconv.Itoa(int(commenter.ID)),
			`{"content":"great post"}`,
			map[string]string{"post_id": strconv.Itoa(int(post.ID))})

		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "great post", created.Content)
		assert.Nil(t, created.ParentID)

		var notifications int64
		require.NoError(t, env.db.Model(&models.Notification{}).
			Where("recipient_id = ?", author.ID).Count(&notifications).Error)
		assert.Equal(t, int64(1), notifications)
	})

	t.Run("rejects a reply to a reply", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		post := env.post(t, author.ID, "Thread")
		top := env.comment(t, post.ID, author.ID, nil, "top")
		reply := env.comment(t, post.ID, author.ID, &top.ID, "reply")

		rec := env.postJSON(t, env.comments.CreateComment,
			"/comments/post/"+strconv.Itoa(int(post.ID))+"?user_id="+strconv.Itoa(int(author.ID)),
			`{"content":"too deep","parent_id":`+strconv.Itoa(int(reply.ID))+`}`,
			map[string]string{"post_id": strconv.Itoa(int(post.ID))})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a parent from a different post", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		postA := env.post(t, author.ID, "Thread A")
		postB := env.post(t, author.ID, "Thread B")
		parent := env.comment(t, postA.ID, author.ID, nil, "on A")

		rec := env.postJSON(t, env.comments.CreateComment,
			"/comments/post/"+strconv.Itoa(int(postB.ID))+"?user_id="+strconv.Itoa(int(author.ID)),
			`{"content":"crossed","parent_id":`+strconv.Itoa(int(parent.ID))+`}`,
			map[string]string{"post_id": strconv.Itoa(int(postB.ID))})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("banned users cannot comment", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		banned := &models.User{Username: "banned", Email: "banned@example.com", Role: models.RoleBanned}
		require.NoError(t, env.db.Create(banned).Error)
		post := env.post(t, author.ID, "Thread")

		rec := env.postJSON(t, env.comments.CreateComment,
			"/comments/post/"+strconv.Itoa(int(post.ID))+"?user_id="+strconv.Itoa(int(banned.ID)),
			`{"content":"hello"}`,
			map[string]string{"post_id": strconv.Itoa(int(post.ID))})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing user_id is a bad request", func(t *testing.T) {
		env := setupEnv(t)
		author := env.user(t, "author")
		post := env.post(t, author.ID, "Thread")

		rec := env.postJSON(t, env.comments.CreateComment,
			"/comments/post/"+strconv.Itoa(int(post.ID)),
			`{"content":"hello"}`,
			map[string]string{"post_id": strconv.Itoa(int(post.ID))})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
