package db

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-landwatch/types"
)

const (
	eventsCollection    = "events"
	locationsCollection = "locations"
)

// Store persists analysed documents and geocoded places between searches.
type Store interface {
	GetEvent(ctx context.Context, documentNumber string) (types.PolicyEvent, bool, error)
	SaveEvent(ctx context.Context, event types.PolicyEvent) error
	GetLocation(ctx context.Context, name string) (types.Coordinate, bool, error)
	SaveLocation(ctx context.Context, name string, coord types.Coordinate) error
}

// HashString hashes a given string using SHA-256 and returns its hex representation.
func HashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func locationKey(name string) string {
	return HashString(strings.ToLower(strings.TrimSpace(name)))
}

// FirestoreStore keeps events under /events/{hash(documentNumber)} and places
// under /locations/{hash(lower(name))}.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore initializes a Firebase app from base64 encoded service
// account JSON and opens its Firestore client.
func NewFirestoreStore(ctx context.Context, encodedCreds string) (*FirestoreStore, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("decode firestore credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(creds)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) GetEvent(ctx context.Context, documentNumber string) (types.PolicyEvent, bool, error) {
	var event types.PolicyEvent

	doc, err := s.client.Collection(eventsCollection).Doc(HashString(documentNumber)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return event, false, nil
		}
		return event, false, fmt.Errorf("get event %s: %w", documentNumber, err)
	}

	if err := doc.DataTo(&event); err != nil {
		return event, false, fmt.Errorf("decode event %s: %w", documentNumber, err)
	}
	return event, true, nil
}

func (s *FirestoreStore) SaveEvent(ctx context.Context, event types.PolicyEvent) error {
	docRef := s.client.Collection(eventsCollection).Doc(HashString(event.DocumentNumber))
	if _, err := docRef.Set(ctx, event); err != nil {
		return fmt.Errorf("save event %s: %w", event.DocumentNumber, err)
	}
	return nil
}

// NopStore remembers nothing. It is used when no Firebase credentials are configured.
type NopStore struct{}

func (NopStore) GetEvent(context.Context, string) (types.PolicyEvent, bool, error) {
	return types.PolicyEvent{}, false, nil
}

func (NopStore) SaveEvent(context.Context, types.PolicyEvent) error { return nil }

func (NopStore) GetLocation(context.Context, string) (types.Coordinate, bool, error) {
	return types.Coordinate{}, false, nil
}

func (NopStore) SaveLocation(context.Context, string, types.Coordinate) error { return nil }
