package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-landwatch/types"
)

// LocationData is a geocoded place as stored in Firestore.
type LocationData struct {
	LocationName string  `firestore:"locationName"`
	Lat          float64 `firestore:"lat"`
	Lng          float64 `firestore:"lng"`
}

func (s *FirestoreStore) GetLocation(ctx context.Context, name string) (types.Coordinate, bool, error) {
	doc, err := s.client.Collection(locationsCollection).Doc(locationKey(name)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Coordinate{}, false, nil
		}
		return types.Coordinate{}, false, fmt.Errorf("get location %q: %w", name, err)
	}

	var data LocationData
	if err := doc.DataTo(&data); err != nil {
		return types.Coordinate{}, false, fmt.Errorf("decode location %q: %w", name, err)
	}
	return types.Coordinate{Lat: data.Lat, Lng: data.Lng, Label: name}, true, nil
}

func (s *FirestoreStore) SaveLocation(ctx context.Context, name string, coord types.Coordinate) error {
	locDoc := s.client.Collection(locationsCollection).Doc(locationKey(name))
	_, err := locDoc.Set(ctx, map[string]interface{}{
		"locationName": name,
		"lat":          coord.Lat,
		"lng":          coord.Lng,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("save location %q: %w", name, err)
	}
	return nil
}
