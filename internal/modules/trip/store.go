// README: Preference/conversation/itinerary store backed by PostgreSQL.
package trip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePreference(ctx context.Context, p *TravelPreference) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO travel_preferences (
			id, destination_type, custom_destination, start_date, end_date,
			duration, budget, interests, pace, companions, activities,
			meal_preferences, dietary_restrictions, accommodation,
			transportation_mode, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14,
			$15, $16
		)`,
		p.ID, p.DestinationType, p.CustomDestination, p.StartDate, p.EndDate,
		p.Duration, p.Budget, p.Interests, p.Pace, p.Companions, p.Activities,
		p.MealPreferences, p.DietaryRestrictions, p.Accommodation,
		p.TransportationMode, p.CreatedAt,
	)
	return err
}

func (s *Store) GetPreference(ctx context.Context, id string) (*TravelPreference, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, destination_type, custom_destination, start_date, end_date,
		       duration, budget, interests, pace, companions, activities,
		       meal_preferences, dietary_restrictions, accommodation,
		       transportation_mode, created_at
		FROM travel_preferences
		WHERE id = $1`, id,
	)

	var p TravelPreference
	var startDate, endDate sql.NullTime
	err := row.Scan(
		&p.ID, &p.DestinationType, &p.CustomDestination, &startDate, &endDate,
		&p.Duration, &p.Budget, &p.Interests, &p.Pace, &p.Companions, &p.Activities,
		&p.MealPreferences, &p.DietaryRestrictions, &p.Accommodation,
		&p.TransportationMode, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		p.StartDate = &startDate.Time
	}
	if endDate.Valid {
		p.EndDate = &endDate.Time
	}
	return &p, nil
}

func (s *Store) CreateConversation(ctx context.Context, c *Conversation) error {
	msgs := []byte("[]")
	if len(c.Messages) > 0 {
		var err error
		msgs, err = json.Marshal(c.Messages)
		if err != nil {
			return fmt.Errorf("marshal messages: %w", err)
		}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO conversations (id, preference_id, messages, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4)`,
		c.ID, c.PreferenceID, msgs, c.CreatedAt,
	)
	return err
}

func (s *Store) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, COALESCE(preference_id, ''), messages, created_at
		FROM conversations
		WHERE id = $1`, id,
	)

	var c Conversation
	var raw []byte
	err := row.Scan(&c.ID, &c.PreferenceID, &raw, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &c.Messages); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}
	return &c, nil
}

// AppendMessage adds one message to the end of the conversation log.
// The log is append-only; nothing ever rewrites earlier entries.
func (s *Store) AppendMessage(ctx context.Context, conversationID string, m Message) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE conversations
		SET messages = messages || $2::jsonb
		WHERE id = $1`,
		conversationID, raw,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SaveItinerary(ctx context.Context, it *StoredItinerary) error {
	payload, err := json.Marshal(it.Itinerary)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO itineraries (id, preference_id, payload, created_at)
		VALUES ($1, $2, $3, $4)`,
		it.ID, it.PreferenceID, payload, it.CreatedAt,
	)
	return err
}

func (s *Store) GetItinerary(ctx context.Context, id string) (*StoredItinerary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, preference_id, payload, created_at
		FROM itineraries
		WHERE id = $1`, id,
	)

	var it StoredItinerary
	var payload []byte
	err := row.Scan(&it.ID, &it.PreferenceID, &payload, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &it.Itinerary); err != nil {
		return nil, fmt.Errorf("unmarshal itinerary: %w", err)
	}
	return &it, nil
}
