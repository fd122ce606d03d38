// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// CreatePostInput is the payload of CreatePost. The author is always the
// caller.
type CreatePostInput struct {
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	CategoryID    string             `json:"categoryId"`
	FeaturedImage *string            `json:"featuredImage,omitempty"`
	Status        *models.PostStatus `json:"status,omitempty"`
}

// UpdatePostInput is the payload of UpdatePost. Nil fields are left
// unchanged. An empty FeaturedImage clears the image.
type UpdatePostInput struct {
	Title         *string            `json:"title,omitempty"`
	Content       *string            `json:"content,omitempty"`
	CategoryID    *string            `json:"categoryId,omitempty"`
	FeaturedImage *string            `json:"featuredImage,omitempty"`
	Status        *models.PostStatus `json:"status,omitempty"`
}

// CreatePost validates in, derives slug and excerpt, and stores a new
// post authored by caller. Status defaults to published.
func (s *Service) CreatePost(ctx context.Context, caller *models.Identity, in CreatePostInput) (*models.Post, error) {
	if err := RequireCaller(caller); err != nil {
		return nil, err
	}

	status := models.PostStatusPublished
	if in.Status != nil {
		status = *in.Status
	}
	title := strings.TrimSpace(in.Title)
	content := s.sanitizeContent(in.Content)
	image := normalizeImage(in.FeaturedImage)

	if err := validatePost(title, content, image, status); err != nil {
		return nil, err
	}
	categoryID, err := parseCategoryID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	now := s.now()
	p := &models.Post{
		ID:            s.newID(),
		Title:         title,
		Slug:          slug.Generate(title),
		Content:       content,
		Excerpt:       Excerpt(content),
		FeaturedImage: image,
		AuthorID:      caller.ID,
		CategoryID:    categoryID,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, storeErr("create post", err)
	}
	return p, nil
}

// GetPost returns a post with its author, category and comments.
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*models.PostDetail, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.PostDetail{
		Post:     *p,
		Author:   models.AuthorSummary{ID: p.AuthorID},
		Category: models.CategorySummary{ID: p.CategoryID},
	}

	author, err := s.users.FindByID(ctx, p.AuthorID)
	if err != nil {
		return nil, storeErr("load post author", err)
	}
	if author != nil {
		detail.Author = author.Summary()
	}

	category, err := s.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		return nil, storeErr("load post category", err)
	}
	if category != nil {
		detail.Category = category.Summary()
	}

	comments, err := s.comments.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, storeErr("list post comments", err)
	}
	if comments == nil {
		comments = []models.CommentView{}
	}
	detail.Comments = comments

	return detail, nil
}

// UpdatePost applies in to the post with the given id. Checks run in the
// order authentication, existence, ownership, validation; nothing is
// written unless all of them pass. updatedAt is always refreshed.
func (s *Service) UpdatePost(ctx context.Context, caller *models.Identity, id uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	if err := RequireCaller(caller); err != nil {
		return nil, err
	}
	existing, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AssertOwner(caller, existing.AuthorID); err != nil {
		return nil, err
	}

	next := *existing
	if in.Title != nil {
		next.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		next.Content = s.sanitizeContent(*in.Content)
	}
	if in.FeaturedImage != nil {
		next.FeaturedImage = normalizeImage(in.FeaturedImage)
	}
	if in.Status != nil {
		next.Status = *in.Status
	}
	if err := validatePost(next.Title, next.Content, next.FeaturedImage, next.Status); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		categoryID, err := parseCategoryID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if categoryID != existing.CategoryID {
			if err := s.requireCategory(ctx, categoryID); err != nil {
				return nil, err
			}
		}
		next.CategoryID = categoryID
	}

	if next.Title != existing.Title {
		next.Slug = slug.Generate(next.Title)
	}
	if next.Content != existing.Content {
		next.Excerpt = Excerpt(next.Content)
	}
	next.UpdatedAt = s.now()

	if err := s.posts.Update(ctx, &next); err != nil {
		return nil, storeErr("update post", err)
	}
	return &next, nil
}

// DeletePost removes a post owned by caller. Its comments are left in
// place.
func (s *Service) DeletePost(ctx context.Context, caller *models.Identity, id uuid.UUID) error {
	if err := RequireCaller(caller); err != nil {
		return err
	}
	existing, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if err := AssertOwner(caller, existing.AuthorID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return storeErr("delete post", err)
	}
	return nil
}

// sanitizeContent drops scripts, event handlers and other unsafe markup
// from post bodies, keeping ordinary formatting, then trims the result.
func (s *Service) sanitizeContent(raw string) string {
	return strings.TrimSpace(s.ugc.Sanitize(raw))
}

func (s *Service) findPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find post", err)
	}
	if p == nil {
		return nil, notFound("post")
	}
	return p, nil
}

func (s *Service) requireCategory(ctx context.Context, id uuid.UUID) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return storeErr("find category", err)
	}
	if c == nil {
		return notFound("category")
	}
	return nil
}
