package lists

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
)

// minNameLength is the shortest accepted list name after trimming.
const minNameLength = 3

// Repository persists named channel lists and their memberships.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new [Repository] with the given database connection
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// nextSequence atomically increments and returns the next sequence number
// for the lists table.
func nextSequence(db *sql.DB) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("UPDATE lists_sequence SET value = value + 1 WHERE id = 1")
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow("SELECT value FROM lists_sequence WHERE id = 1").Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// Create inserts a new list with a generated ID and sequence. Names are
// trimmed, must be at least three characters, and must be unique.
func (r *Repository) Create(name string) (*models.ChannelList, error) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return nil, fmt.Errorf("%w: list name must be at least %d characters", shared.ErrInvalidInput, minNameLength)
	}

	var existing int
	err := r.db.QueryRow("SELECT COUNT(*) FROM lists WHERE name = ?", name).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check list name: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrListExists, name)
	}

	sequence, err := nextSequence(r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	list := &models.ChannelList{
		ID:        shared.GenerateID(),
		Sequence:  sequence,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO lists (id, sequence, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, list.ID, list.Sequence, list.Name, list.CreatedAt, list.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert list: %w", err)
	}

	return list, nil
}

// Get retrieves a list by ID.
func (r *Repository) Get(id string) (*models.ChannelList, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at
		FROM lists
		WHERE id = ?
	`

	var list models.ChannelList
	err := r.db.QueryRow(query, id).Scan(&list.ID, &list.Sequence, &list.Name, &list.CreatedAt, &list.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}

	return &list, nil
}

// GetByName retrieves a list by its (unique) name.
func (r *Repository) GetByName(name string) (*models.ChannelList, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at
		FROM lists
		WHERE name = ?
	`

	var list models.ChannelList
	err := r.db.QueryRow(query, strings.TrimSpace(name)).Scan(&list.ID, &list.Sequence, &list.Name, &list.CreatedAt, &list.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrListNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}

	return &list, nil
}

// Rename changes a list's name, enforcing the same length and uniqueness
// rules as [Repository.Create].
func (r *Repository) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return fmt.Errorf("%w: list name must be at least %d characters", shared.ErrInvalidInput, minNameLength)
	}

	var existing int
	err := r.db.QueryRow("SELECT COUNT(*) FROM lists WHERE name = ? AND id != ?", name, id).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check list name: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s", shared.ErrListExists, name)
	}

	result, err := r.db.Exec("UPDATE lists SET name = ?, updated_at = ? WHERE id = ?", name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to rename list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}

	return nil
}

// Delete removes a list and its memberships.
func (r *Repository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM list_channels WHERE list_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete list channels: %w", err)
	}

	result, err := tx.Exec("DELETE FROM lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrListNotFound, id)
	}

	return tx.Commit()
}

// List retrieves all lists in sequence order.
func (r *Repository) List() ([]*models.ChannelList, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at
		FROM lists
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.ChannelList
	for rows.Next() {
		var list models.ChannelList
		if err := rows.Scan(&list.ID, &list.Sequence, &list.Name, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, &list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lists, nil
}

// ToggleChannel adds the channel to the list when absent and removes it when
// present. It reports whether the channel is a member after the call.
func (r *Repository) ToggleChannel(listID string, channel models.ListChannel) (bool, error) {
	if _, err := r.Get(listID); err != nil {
		return false, err
	}

	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM list_channels WHERE list_id = ? AND channel_id = ?",
		listID, channel.ChannelID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	if count > 0 {
		_, err = r.db.Exec(
			"DELETE FROM list_channels WHERE list_id = ? AND channel_id = ?",
			listID, channel.ChannelID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to remove channel: %w", err)
		}
		return false, nil
	}

	query := `
		INSERT INTO list_channels (list_id, channel_id, title, thumbnail_url, added_at) VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, listID, channel.ChannelID, channel.Title, channel.ThumbnailURL, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to add channel: %w", err)
	}

	return true, nil
}

// Channels retrieves a list's members in the order they were added.
func (r *Repository) Channels(listID string) ([]models.ListChannel, error) {
	if _, err := r.Get(listID); err != nil {
		return nil, err
	}

	query := `
		SELECT list_id, channel_id, title, thumbnail_url, added_at
		FROM list_channels
		WHERE list_id = ?
		ORDER BY added_at ASC
	`

	rows, err := r.db.Query(query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list channels: %w", err)
	}
	defer rows.Close()

	var channels []models.ListChannel
	for rows.Next() {
		var ch models.ListChannel
		if err := rows.Scan(&ch.ListID, &ch.ChannelID, &ch.Title, &ch.ThumbnailURL, &ch.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list channel: %w", err)
		}
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return channels, nil
}

// ChannelCount returns the number of channels in a list.
func (r *Repository) ChannelCount(listID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM list_channels WHERE list_id = ?", listID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count list channels: %w", err)
	}
	return count, nil
}
