// Package clients keeps a local offline copy of the business's client and
// pet records so front-desk search works without a vendor round trip.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barkwell/frontdesk/pkg/logging"
)

const rosterKey = "frontdesk:roster:clients"

// Pet is one animal attached to a client record.
type Pet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed,omitempty"`
}

// Record is one client with their pets.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Pets  []Pet  `json:"pets,omitempty"`
}

// Source lists the full client roster from the vendor.
type Source interface {
	ListClientRecords(ctx context.Context) ([]Record, error)
}

// Roster is a Redis-backed snapshot of client/pet records with simple
// substring search. The whole snapshot is replaced on refresh.
type Roster struct {
	rdb    *redis.Client
	source Source
	ttl    time.Duration
	logger *logging.Logger
}

// NewRoster creates the roster store.
func NewRoster(rdb *redis.Client, source Source, ttl time.Duration, logger *logging.Logger) *Roster {
	if logger == nil {
		logger = logging.Default()
	}
	return &Roster{rdb: rdb, source: source, ttl: ttl, logger: logger}
}

// Refresh replaces the cached roster from the vendor. A fetch failure leaves
// the previous snapshot in place.
func (r *Roster) Refresh(ctx context.Context) (int, error) {
	if r.source == nil {
		return 0, fmt.Errorf("clients: no roster source configured")
	}
	records, err := r.source.ListClientRecords(ctx)
	if err != nil {
		r.logger.Error("roster refresh failed, keeping previous snapshot", "error", err)
		return 0, fmt.Errorf("clients: refresh roster: %w", err)
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("clients: encode roster: %w", err)
	}
	if err := r.rdb.Set(ctx, rosterKey, encoded, r.ttl).Err(); err != nil {
		return 0, fmt.Errorf("clients: store roster: %w", err)
	}
	r.logger.Info("roster refreshed", "clients", len(records))
	return len(records), nil
}

// Search returns records whose client name, pet name, or phone contains the
// query, case-insensitively. Phone queries match on digits only.
func (r *Roster) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	digits := digitsOnly(query)

	var out []Record
	for _, rec := range records {
		if matches(rec, query, digits) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Roster) load(ctx context.Context) ([]Record, error) {
	raw, err := r.rdb.Get(ctx, rosterKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("clients: load roster: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("clients: decode roster: %w", err)
	}
	return records, nil
}

func matches(rec Record, query, digits string) bool {
	if strings.Contains(strings.ToLower(rec.Name), query) {
		return true
	}
	if digits != "" && strings.Contains(digitsOnly(rec.Phone), digits) {
		return true
	}
	for _, p := range rec.Pets {
		if strings.Contains(strings.ToLower(p.Name), query) {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
