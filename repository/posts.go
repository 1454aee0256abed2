package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/repository/specification"
	"github.com/lib/pq"
)

type posts interface {
	GetAllPosts(ctx context.Context, filters data.Filters, conditions specification.Conditions) ([]*data.Post, data.Metadata, error)
	GetPost(ctx context.Context, postID int64) (*data.Post, error)
	CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error)
	UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error)
	SetPostImage(ctx context.Context, postID int64, imageURL string) (*data.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

const selectPost = `
		SELECT p.id, p.title, p.slug, u.username, p.author_id, p.body, p.publish, p.created, p.updated,
			p.image_url, p.status, c.name, p.category_id,
			(SELECT count(*) FROM post_likes pl WHERE pl.post_id = p.id),
			(SELECT count(*) FROM post_dislikes pd WHERE pd.post_id = p.id),
			ARRAY(SELECT t.name FROM post_tags pt INNER JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = p.id ORDER BY t.name)
		FROM posts p
		INNER JOIN users u ON u.id = p.author_id
		INNER JOIN categories c ON c.id = p.category_id`

func scanPost(row rowScanner) (*data.Post, error) {
	var (
		post     data.Post
		imageURL sql.NullString
		tags     pq.StringArray
	)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Author,
		&post.AuthorID,
		&post.Content,
		&post.Publish.Time,
		&post.Created.Time,
		&post.Updated.Time,
		&imageURL,
		&post.Status,
		&post.Category,
		&post.CategoryID,
		&post.LikesCount,
		&post.DislikesCount,
		&tags,
	)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		post.ImageURL = &imageURL.String
	}
	post.Tags = []string(tags)
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return &post, nil
}

// GetAllPosts retrieves a page of published posts matching conditions,
// newest first unless an order specification says otherwise.
func (r *repository) GetAllPosts(ctx context.Context, filters data.Filters, conditions specification.Conditions) ([]*data.Post, data.Metadata, error) {
	q := specification.Build(conditions)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM posts p
		INNER JOIN users u ON u.id = p.author_id
		WHERE p.status = 'published'
		%s`, q.Where())
	var totalRecords int
	err := r.db.QueryRowContext(ctx, countQuery, q.FilterArgs()...).Scan(&totalRecords)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)

	args := q.Args()
	query := fmt.Sprintf(`%s
		WHERE p.status = 'published'
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		selectPost, q.Where(), q.OrderBy("p.publish DESC", "p.publish DESC", "p.id DESC"), len(args)+1, len(args)+2)
	args = append(args, metadata.Limit(), metadata.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	posts := []*data.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	return posts, metadata, nil
}

func getPost(ctx context.Context, db querier, postID int64, publishedOnly bool) (*data.Post, error) {
	query := selectPost + `
		WHERE p.id = $1`
	if publishedOnly {
		query += ` AND p.status = 'published'`
	}
	post, err := scanPost(db.QueryRowContext(ctx, query, postID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return post, nil
}

// GetPost retrieves a published post.
func (r *repository) GetPost(ctx context.Context, postID int64) (*data.Post, error) {
	if postID < 1 {
		return nil, ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return getPost(ctx, r.db, postID, true)
}

// CreatePost inserts a post and its tags and returns the stored post.
func (r *repository) CreatePost(ctx context.Context, input *data.PostInput) (*data.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var post *data.Post
	err := r.runInTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO posts (title, slug, author_id, body, image_url, status, category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		args := []any{input.Title, *input.Slug, input.AuthorID, input.Content, input.ImageURL, input.Status, input.CategoryID}
		var postID int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&postID); err != nil {
			return err
		}
		if err := setPostTags(ctx, tx, postID, input.Tags); err != nil {
			return err
		}
		var err error
		post, err = getPost(ctx, tx, postID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces every writable field of a post, including its tags.
func (r *repository) UpdatePost(ctx context.Context, postID int64, input *data.PostInput) (*data.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var post *data.Post
	err := r.runInTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE posts
			SET title = $1, slug = $2, body = $3, image_url = $4, status = $5, category_id = $6, updated = NOW()
			WHERE id = $7`
		args := []any{input.Title, *input.Slug, input.Content, input.ImageURL, input.Status, input.CategoryID, postID}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrRecordNotFound
		}
		if err := setPostTags(ctx, tx, postID, input.Tags); err != nil {
			return err
		}
		post, err = getPost(ctx, tx, postID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// SetPostImage stores the image url of a post.
func (r *repository) SetPostImage(ctx context.Context, postID int64, imageURL string) (*data.Post, error) {
	query := `
		UPDATE posts
		SET image_url = $1, updated = NOW()
		WHERE id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, imageURL, postID)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return getPost(ctx, r.db, postID, false)
}

// DeletePost deletes a post. Its comments, tags links and reactions go with it.
func (r *repository) DeletePost(ctx context.Context, postID int64) error {
	if postID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM posts
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// setPostTags makes tags the exact tag set of a post, creating missing tags.
func setPostTags(ctx context.Context, tx querier, postID int64, tags []string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	query := `
		INSERT INTO tags (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING`
	_, err = tx.ExecContext(ctx, query, pq.Array(tags))
	if err != nil {
		return err
	}
	query = `
		INSERT INTO post_tags (post_id, tag_id)
		SELECT $1, id FROM tags WHERE name = ANY($2)
		ON CONFLICT DO NOTHING`
	_, err = tx.ExecContext(ctx, query, postID, pq.Array(tags))
	return err
}
