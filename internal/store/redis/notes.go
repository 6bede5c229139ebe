package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/scribbly/scribbly/internal/domain"
)

// fetchConcurrency bounds parallel record fetches during a query.
const fetchConcurrency = 8

// Store is the remote note service, backed by Redis. It owns the
// server-assigned fields: ids are generated here and timestamps are
// stamped here, never by clients.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// CreateNote persists a new note. The id, CreatedAt and UpdatedAt on
// the draft are ignored and assigned here; the stored record is
// returned so callers can cache the confirmed state.
func (s *Store) CreateNote(ctx context.Context, draft *domain.Note) (*domain.Note, error) {
	note := draft.Clone()
	note.ID = uuid.NewString()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	note.Versions = []domain.Version{}

	if err := s.writeNote(ctx, note); err != nil {
		return nil, err
	}

	if err := s.client.SAdd(ctx, OwnerNotesKey(note.OwnerID), note.ID).Err(); err != nil {
		return nil, remoteErr("failed to index note for owner", err)
	}
	if err := s.client.SAdd(ctx, AllNotesKey(), note.ID).Err(); err != nil {
		return nil, remoteErr("failed to index note globally", err)
	}

	return note, nil
}

// UpdateNote merges the partial fields into the stored record and
// refreshes UpdatedAt. Returns domain.ErrNotFound when the note does
// not exist (deleted concurrently, for example).
func (s *Store) UpdateNote(ctx context.Context, id string, update domain.NoteUpdate) error {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return err
	}

	update.Apply(note)
	note.UpdatedAt = time.Now().UTC()

	return s.writeNote(ctx, note)
}

// DeleteNote removes a note and its set memberships.
// Returns domain.ErrNotFound when the note does not exist.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, NoteKey(id)).Err(); err != nil {
		return remoteErr("failed to delete note", err)
	}
	if err := s.client.SRem(ctx, OwnerNotesKey(note.OwnerID), id).Err(); err != nil {
		return remoteErr("failed to unindex note for owner", err)
	}
	if err := s.client.SRem(ctx, AllNotesKey(), id).Err(); err != nil {
		return remoteErr("failed to unindex note globally", err)
	}

	return nil
}

// GetNote retrieves a single note by id.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	data, err := s.client.Get(ctx, NoteKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, remoteErr("failed to get note", err)
	}

	var note domain.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("failed to unmarshal note %s: %w", id, err)
	}

	return &note, nil
}

// QueryNotes returns all notes for one owner, ordered by UpdatedAt
// descending.
func (s *Store) QueryNotes(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	return s.queryNoteSet(ctx, OwnerNotesKey(ownerID))
}

// QueryAllNotes returns every stored note across owners, ordered by
// UpdatedAt descending. Callers gate this behind the privilege check;
// the store itself has no notion of identity.
func (s *Store) QueryAllNotes(ctx context.Context) ([]*domain.Note, error) {
	return s.queryNoteSet(ctx, AllNotesKey())
}

func (s *Store) queryNoteSet(ctx context.Context, setKey string) ([]*domain.Note, error) {
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, remoteErr("failed to list note ids", err)
	}

	if len(ids) == 0 {
		return []*domain.Note{}, nil
	}

	// Fetch records concurrently; transport failures abort the query,
	// ids whose record vanished mid-query are skipped.
	results := make([]*domain.Note, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			note, err := s.GetNote(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				return err
			}
			results[i] = note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(results))
	for _, n := range results {
		if n != nil {
			notes = append(notes, n)
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

func (s *Store) writeNote(ctx context.Context, note *domain.Note) error {
	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note %s: %w", note.ID, err)
	}

	// Notes are durable records, no TTL.
	if err := s.client.Set(ctx, NoteKey(note.ID), data, 0).Err(); err != nil {
		return remoteErr("failed to save note", err)
	}

	return nil
}

// remoteErr tags a transport failure so callers can match it with
// errors.Is(err, domain.ErrRemoteUnavailable).
func remoteErr(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrRemoteUnavailable, err)
}
