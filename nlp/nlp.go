package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"

	"go-landwatch/types"
)

// Locator finds place names in free text.
type Locator interface {
	ExtractLocations(ctx context.Context, text string) ([]string, error)
}

// CloudLocator uses the Cloud Natural Language entity analysis.
type CloudLocator struct {
	client *language.Client
}

// NewCloudLocator creates the language client from base64 encoded service account JSON.
func NewCloudLocator(ctx context.Context, encodedCreds string) (*CloudLocator, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("decode natural language credentials: %w", err)
	}

	client, err := language.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("create natural language client: %w", err)
	}
	return &CloudLocator{client: client}, nil
}

func (l *CloudLocator) Close() error {
	return l.client.Close()
}

func (l *CloudLocator) ExtractLocations(ctx context.Context, text string) ([]string, error) {
	entities, err := AnalyzeEntities(ctx, l.client, text)
	if err != nil {
		return nil, err
	}
	return LocationNames(entities), nil
}

// sends text to the Cloud Natural Language API to extract named entities
// and returns a slice of Entity structs along with any error encountered
func AnalyzeEntities(ctx context.Context, client *language.Client, text string) ([]types.Entity, error) {
	req := &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error: %w", err)
	}

	return toEntities(resp), nil
}

func toEntities(resp *languagepb.AnalyzeEntitiesResponse) []types.Entity {
	var entities []types.Entity
	for _, e := range resp.GetEntities() {
		entities = append(entities, types.Entity{
			Name: e.GetName(),
			Type: e.GetType().String(),
		})
	}
	return entities
}

// LocationNames keeps LOCATION and ADDRESS entities, deduplicated case-insensitively
// in first-seen order.
func LocationNames(entities []types.Entity) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range entities {
		if e.Type != "LOCATION" && e.Type != "ADDRESS" {
			continue
		}
		name := strings.TrimSpace(e.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}
