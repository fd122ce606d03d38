// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// CreateCommentInput is the payload of CreateComment.
type CreateCommentInput struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// CreateComment attaches a plain-text comment by caller to a post. Markup
// is stripped; content that is empty afterwards is rejected.
func (s *Service) CreateComment(ctx context.Context, caller *models.Identity, in CreateCommentInput) (*models.CommentView, error) {
	if err := RequireCaller(caller); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(html.UnescapeString(s.plainText.Sanitize(in.Content)))
	if content == "" {
		return nil, invalid("content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return nil, invalid("comment is too long (max 5,000 characters)")
	}

	rawPostID := strings.TrimSpace(in.PostID)
	if rawPostID == "" {
		return nil, invalid("postId is required")
	}
	postID, err := uuid.Parse(rawPostID)
	if err != nil {
		return nil, notFound("post")
	}
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:        s.newID(),
		PostID:    postID,
		AuthorID:  caller.ID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, &c); err != nil {
		return nil, storeErr("create comment", err)
	}
	return &models.CommentView{Comment: c, Author: caller.Summary()}, nil
}

// ListComments returns the comments of a post, newest first.
func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]models.CommentView, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, storeErr("list comments", err)
	}
	if comments == nil {
		comments = []models.CommentView{}
	}
	return comments, nil
}
