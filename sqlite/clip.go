package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ clipper.ClipService = (*ClipService)(nil)

// ClipService implements clipper.ClipService using SQLite.
type ClipService struct {
	db *DB
}

// NewClipService creates a new ClipService.
func NewClipService(db *DB) *ClipService {
	return &ClipService{db: db}
}

// timeFormat is fixed-width so created_at sorts correctly as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const clipColumns = "id, user_id, url, title, content, kind, metadata, tags, content_hash, tokens, created_at"

// CreateClip validates and stores clip, assigning its ID, creation time and
// content hash.
func (s *ClipService) CreateClip(ctx context.Context, clip *clipper.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	metadata, err := json.Marshal(orEmptyMap(clip.Metadata))
	if err != nil {
		return clipper.WrapError(clipper.EINVALID, err, "clip metadata is not serializable")
	}
	tags, err := json.Marshal(orEmptySlice(clip.Tags))
	if err != nil {
		return clipper.WrapError(clipper.EINVALID, err, "clip tags are not serializable")
	}

	clip.ID = uuid.New().String()
	clip.CreatedAt = time.Now().UTC()
	clip.ContentHash = hashContent(clip.Content)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clips (`+clipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, clip.ID, clip.UserID, clip.URL, clip.Title, clip.Content, string(clip.Kind),
		string(metadata), string(tags), clip.ContentHash, clip.Tokens,
		clip.CreatedAt.Format(timeFormat))

	return err
}

// FindClipByID retrieves a clip by ID.
func (s *ClipService) FindClipByID(ctx context.Context, id string) (*clipper.Clip, error) {
	clip, err := scanClip(s.db.QueryRowContext(ctx, `SELECT `+clipColumns+` FROM clips WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clipper.Errorf(clipper.ENOTFOUND, "clip not found")
	}
	if err != nil {
		return nil, err
	}
	return clip, nil
}

// FindClips retrieves clips matching the filter, newest first.
func (s *ClipService) FindClips(ctx context.Context, filter clipper.ClipFilter) ([]*clipper.Clip, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + clipColumns + ` FROM clips WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query.WriteString(` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []*clipper.Clip
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// DeleteClip permanently removes a clip.
func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clips WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return clipper.Errorf(clipper.ENOTFOUND, "clip not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClip(row scanner) (*clipper.Clip, error) {
	var (
		clip      clipper.Clip
		kind      string
		metadata  string
		tags      string
		createdAt string
	)
	if err := row.Scan(&clip.ID, &clip.UserID, &clip.URL, &clip.Title, &clip.Content, &kind,
		&metadata, &tags, &clip.ContentHash, &clip.Tokens, &createdAt); err != nil {
		return nil, err
	}

	clip.Kind = clipper.ContentKind(kind)
	if err := json.Unmarshal([]byte(metadata), &clip.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata of clip %s: %w", clip.ID, err)
	}
	if err := json.Unmarshal([]byte(tags), &clip.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags of clip %s: %w", clip.ID, err)
	}

	var err error
	clip.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
