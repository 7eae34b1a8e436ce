package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"imdb-top250/internal/model"
)

const batchSize = 250 // Stay well under Firestore's 500 operation limit

// Client wraps the Firestore client for chart operations.
type Client struct {
	client     *firestore.Client
	collection string
}

// New creates a new Firestore client. credentialsFile may be empty to use
// application default credentials.
func New(ctx context.Context, projectID, collection, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Client{
		client:     client,
		collection: collection,
	}, nil
}

// Close closes the Firestore client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReplaceMoviesForSource replaces all movies stored for a source.
// It deletes all existing documents for the source, then writes the new ones.
func (c *Client) ReplaceMoviesForSource(ctx context.Context, source string, movies []model.Movie, batchID string) error {
	coll := c.client.Collection(c.collection)

	if err := c.deleteMoviesForSource(ctx, source); err != nil {
		return fmt.Errorf("deleting existing movies: %w", err)
	}

	for i := 0; i < len(movies); i += batchSize {
		end := min(i+batchSize, len(movies))
		batch := c.client.Batch()

		for _, m := range movies[i:end] {
			batch.Set(coll.Doc(generateDocID(source, m)), movieToMap(source, m, batchID))
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing batch: %w", err)
		}
	}

	return nil
}

// deleteMoviesForSource deletes all documents for a given source.
func (c *Client) deleteMoviesForSource(ctx context.Context, source string) error {
	query := c.client.Collection(c.collection).Where("source", "==", source)

	for {
		iter := query.Limit(batchSize).Documents(ctx)
		batch := c.client.Batch()
		numDeleted := 0

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return fmt.Errorf("iterating documents: %w", err)
			}
			batch.Delete(doc.Ref)
			numDeleted++
		}
		iter.Stop()

		if numDeleted == 0 {
			return nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing delete batch: %w", err)
		}

		if numDeleted < batchSize {
			return nil
		}
	}
}

// MoviesForSource retrieves the stored movies for a source ordered by rank.
// A limit of 0 returns all of them.
func (c *Client) MoviesForSource(ctx context.Context, source string, limit int) ([]model.Movie, error) {
	query := c.client.Collection(c.collection).Where("source", "==", source).OrderBy("rank", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var movies []model.Movie
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating documents: %w", err)
		}
		movies = append(movies, mapToMovie(doc.Data()))
	}

	return movies, nil
}

// generateDocID creates a stable document ID from the source, rank and name.
func generateDocID(source string, m model.Movie) string {
	data := fmt.Sprintf("%s|%d|%s", source, m.Rank, m.Name)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16])
}

// movieToMap converts a Movie to a Firestore document map.
func movieToMap(source string, m model.Movie, batchID string) map[string]interface{} {
	return map[string]interface{}{
		"source":         source,
		"batch_id":       batchID,
		"rank":           m.Rank,
		"name":           m.Name,
		"description":    m.Description,
		"rating_value":   m.RatingValue,
		"rating_count":   m.RatingCount,
		"content_rating": m.ContentRating,
		"genre":          m.Genre,
		"duration":       m.Duration,
	}
}

// mapToMovie converts a Firestore document map to a Movie.
func mapToMovie(m map[string]interface{}) model.Movie {
	movie := model.Movie{}

	switch v := m["rank"].(type) {
	case int64:
		movie.Rank = int(v)
	case int:
		movie.Rank = v
	case float64:
		movie.Rank = int(v)
	}
	if v, ok := m["name"].(string); ok {
		movie.Name = v
	}
	if v, ok := m["description"].(string); ok {
		movie.Description = v
	}
	if v, ok := m["rating_value"].(string); ok {
		movie.RatingValue = v
	}
	if v, ok := m["rating_count"].(string); ok {
		movie.RatingCount = v
	}
	if v, ok := m["content_rating"].(string); ok {
		movie.ContentRating = v
	}
	if v, ok := m["genre"].(string); ok {
		movie.Genre = v
	}
	if v, ok := m["duration"].(string); ok {
		movie.Duration = v
	}

	return movie
}
