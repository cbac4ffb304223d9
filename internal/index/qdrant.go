package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ragflow/internal/domain"
)

// Qdrant is a minimal REST client to a Qdrant collection implementing the
// VectorIndex interface. It uses cosine distance and creates the collection
// on first insert.
//
// Two contract points are weaker than the in-memory index: Len counts only
// entries inserted through this client instance (a pre-existing collection
// is not counted), and the order of equidistant matches is decided by the
// server, not by insertion order. The engine ingests through a single client
// before serving queries, which keeps both visible behaviors equivalent.
type Qdrant struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	nextID     int
	client     *http.Client
}

// QdrantConfig contains connection details for a Qdrant vector index.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewQdrant creates a Qdrant-backed index.
func NewQdrant(cfg QdrantConfig) *Qdrant {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Qdrant{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Insert appends one segment entry. The collection is created lazily with the
// dimensionality of the first vector; later vectors of a different length
// fail with ErrDimensionMismatch.
func (q *Qdrant) Insert(segment domain.Segment, vector []float64) error {
	if len(vector) == 0 {
		return domain.ErrDimensionMismatch
	}
	if q.dimension == 0 {
		if err := q.createCollection(len(vector)); err != nil {
			return err
		}
		q.dimension = len(vector)
	} else if len(vector) != q.dimension {
		return domain.ErrDimensionMismatch
	}
	point := map[string]any{
		"id":     q.nextID,
		"vector": vector,
		"payload": map[string]any{
			"segment_id":  segment.ID,
			"document_id": segment.DocumentID,
			"seq":         segment.Seq,
			"start":       segment.Start,
			"end":         segment.End,
			"text":        segment.Text,
		},
	}
	body := map[string]any{"points": []map[string]any{point}}
	if err := q.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", q.url, q.collection), body); err != nil {
		return err
	}
	q.nextID++
	return nil
}

// Query returns the k nearest segments ascending by cosine distance.
// Qdrant reports cosine similarity; distance is 1 - similarity.
func (q *Qdrant) Query(vector []float64, k int) ([]domain.Match, error) {
	if q.nextID == 0 || k <= 0 {
		return nil, nil
	}
	if len(vector) != q.dimension {
		return nil, domain.ErrDimensionMismatch
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := q.postJSON(fmt.Sprintf("%s/collections/%s/points/search", q.url, q.collection), req, &resp); err != nil {
		return nil, err
	}
	matches := make([]domain.Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		seg := domain.Segment{}
		if v, ok := r.Payload["segment_id"].(string); ok {
			seg.ID = v
		}
		if v, ok := r.Payload["document_id"].(string); ok {
			seg.DocumentID = v
		}
		if v, ok := r.Payload["seq"].(float64); ok {
			seg.Seq = int(v)
		}
		if v, ok := r.Payload["start"].(float64); ok {
			seg.Start = int(v)
		}
		if v, ok := r.Payload["end"].(float64); ok {
			seg.End = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			seg.Text = v
		}
		matches = append(matches, domain.Match{Segment: seg, Distance: 1 - r.Score})
	}
	return matches, nil
}

// Len reports the number of entries inserted through this client.
func (q *Qdrant) Len() int { return q.nextID }

func (q *Qdrant) createCollection(dimension int) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema
	return q.putJSON(fmt.Sprintf("%s/collections/%s", q.url, q.collection), body)
}

func (q *Qdrant) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (q *Qdrant) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
