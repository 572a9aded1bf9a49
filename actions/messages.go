package actions

import (
	"context"
	"strings"

	"github.com/phillip/autoclub-go/models"
	"github.com/phillip/autoclub-go/revalidate"
)

const alreadyLiked = "You already liked this message"

type MessageInput struct {
	Content   string `json:"content"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
}

// LikeResult reports whether a like was applied. A repeated like by the
// same user is not an error.
type LikeResult struct {
	Liked   bool   `json:"liked"`
	Message string `json:"message,omitempty"`
}

var messagePaths = []string{revalidate.PathCommunity}

// SendMessage posts a message as the session's user.
func (a *Actions) SendMessage(ctx context.Context, in MessageInput) (*models.Message, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	m := models.Message{
		Content:   strings.TrimSpace(in.Content),
		MediaType: in.MediaType,
		MediaURL:  strings.TrimSpace(in.MediaURL),
		User:      models.Author{ID: sess.UserID, Name: sess.Name, Image: sess.Image},
		LikedBy:   []string{},
	}
	if m.MediaType == "" {
		m.MediaType = models.MediaNone
	}
	if m.MediaType == models.MediaNone {
		m.MediaURL = ""
	}
	if err := a.validator.Struct(m); err != nil {
		return nil, err
	}

	m.CreatedAt = a.now()
	if err := a.stores.Messages().Insert(ctx, &m); err != nil {
		return nil, a.storeFailed(ctx, "failed to send message", err)
	}

	a.logger.InfoContext(ctx, "message sent", "id", m.ID.Hex(), "user", sess.UserID)
	a.notifier.Invalidate(ctx, messagePaths...)
	return &m, nil
}

// LikeMessage adds the session's user to the message's likers. Only the
// first like by a user counts.
func (a *Actions) LikeMessage(ctx context.Context, id string) (*LikeResult, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	liked, err := a.stores.Messages().Like(ctx, oid, sess.UserID)
	if err != nil {
		return nil, a.storeFailed(ctx, "failed to like message", err, "id", id)
	}
	if !liked {
		return &LikeResult{Liked: false, Message: alreadyLiked}, nil
	}

	a.notifier.Invalidate(ctx, messagePaths...)
	return &LikeResult{Liked: true}, nil
}

func (a *Actions) DeleteMessage(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.stores.Messages().Delete(ctx, oid); err != nil {
		return a.storeFailed(ctx, "failed to delete message", err, "id", id)
	}

	a.logger.InfoContext(ctx, "message deleted", "id", id)
	a.notifier.Invalidate(ctx, messagePaths...)
	return nil
}
