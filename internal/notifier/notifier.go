// Package notifier decides who gets notified when someone reacts,
// comments, or posts, and writes the notification rows. Fan-out never
// fails the triggering request: the primary write has already committed
// when any of these methods run, so errors are logged and swallowed.
package notifier

import (
	"fmt"
	"log"
	"sync"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/repositories"
)

const titleMaxLen = 50

type fanoutJob struct {
	post      *models.Post
	actor     *models.User
	community *models.Community
}

// Notifier is the notification fan-out engine. Single-recipient
// notifications are written synchronously in the request; the new-post
// fan-out to community followers runs on a small worker pool so large
// communities never stall the posting request.
type Notifier struct {
	notifications repositories.NotificationRepository
	preferences   repositories.PreferenceRepository
	followers     repositories.FollowerRepository

	jobs chan fanoutJob
	wg   sync.WaitGroup
}

// New creates a Notifier and starts its fan-out workers.
func New(
	notifRepo repositories.NotificationRepository,
	prefRepo repositories.PreferenceRepository,
	followerRepo repositories.FollowerRepository,
	workers int,
) *Notifier {
	if workers < 1 {
		workers = 1
	}
	n := &Notifier{
		notifications: notifRepo,
		preferences:   prefRepo,
		followers:     followerRepo,
		jobs:          make(chan fanoutJob, 256),
	}
	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
	return n
}

// Close stops accepting fan-out jobs and waits for queued ones to drain.
func (n *Notifier) Close() {
	close(n.jobs)
	n.wg.Wait()
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for job := range n.jobs {
		n.fanoutNewPost(job.post, job.actor, job.community)
	}
}

// CommentCreated notifies the post's author that someone replied.
func (n *Notifier) CommentCreated(post *models.Post, comment *models.Comment, actor *models.User) {
	if actor.ID == post.UserID {
		return
	}
	n.deliver(&models.Notification{
		RecipientID: post.UserID,
		ActorID:     actor.ID,
		Type:        models.NotificationCommentReply,
		Title:       "New comment on your post",
		Message:     fmt.Sprintf("%s commented on your post \"%s\"", actor.Username, truncate(post.Title)),
		TargetType:  "post",
		TargetID:    post.ID,
	})
}

// PostReactionAdded notifies the post's author of a new reaction. Called
// only when the toggle added a reaction, never on removal.
func (n *Notifier) PostReactionAdded(post *models.Post, actor *models.User) {
	if actor.ID == post.UserID {
		return
	}
	n.deliver(&models.Notification{
		RecipientID: post.UserID,
		ActorID:     actor.ID,
		Type:        models.NotificationPostReaction,
		Title:       "New reaction on your post",
		Message:     fmt.Sprintf("%s reacted to your post \"%s\"", actor.Username, truncate(post.Title)),
		TargetType:  "post",
		TargetID:    post.ID,
	})
}

// CommentReactionSet notifies the comment's author that someone liked or
// disliked their comment. Called when a reaction is created or switches
// type, never on removal.
func (n *Notifier) CommentReactionSet(comment *models.Comment, actor *models.User, reactionType string) {
	if actor.ID == comment.UserID {
		return
	}
	verb := "liked"
	if reactionType == models.ReactionDislike {
		verb = "disliked"
	}
	n.deliver(&models.Notification{
		RecipientID: comment.UserID,
		ActorID:     actor.ID,
		Type:        models.NotificationCommentReaction,
		Title:       "New reaction on your comment",
		Message:     fmt.Sprintf("%s %s your comment", actor.Username, verb),
		TargetType:  "comment",
		TargetID:    comment.ID,
	})
}

// PostCreated queues a fan-out to every follower of the post's community.
// Returns immediately; the workers do the per-follower writes.
func (n *Notifier) PostCreated(post *models.Post, actor *models.User, community *models.Community) {
	if community == nil {
		return
	}
	n.jobs <- fanoutJob{post: post, actor: actor, community: community}
}

func (n *Notifier) fanoutNewPost(post *models.Post, actor *models.User, community *models.Community) {
	followerIDs, err := n.followers.GetFollowerIDs(community.ID)
	if err != nil {
		log.Printf("notifier: fetching followers of community %d: %v", community.ID, err)
		return
	}
	for _, recipientID := range followerIDs {
		if recipientID == actor.ID {
			continue
		}
		n.deliver(&models.Notification{
			RecipientID: recipientID,
			ActorID:     actor.ID,
			Type:        models.NotificationNewPost,
			Title:       "New post in " + community.Name,
			Message:     fmt.Sprintf("%s posted in %s: \"%s\"", actor.Username, community.Name, truncate(post.Title)),
			TargetType:  "post",
			TargetID:    post.ID,
		})
	}
}

// deliver writes one notification row if the recipient's preferences
// allow the category. A disabled category is a silent skip.
func (n *Notifier) deliver(notification *models.Notification) {
	prefs, err := n.preferences.GetPreferences(notification.RecipientID)
	if err != nil {
		log.Printf("notifier: loading preferences for user %d: %v", notification.RecipientID, err)
		return
	}
	if !prefs.Allows(notification.Type) {
		return
	}
	if err := n.notifications.CreateNotification(notification); err != nil {
		log.Printf("notifier: writing %s notification for user %d: %v",
			notification.Type, notification.RecipientID, err)
	}
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= titleMaxLen {
		return s
	}
	return string(runes[:titleMaxLen]) + "..."
}
