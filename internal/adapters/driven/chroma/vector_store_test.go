package chroma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// fakeChroma is a minimal in-memory stand-in for the Chroma v1 API,
// enough to exercise the adapter's request shapes.
type fakeChroma struct {
	mux      *http.ServeMux
	adds     []addRequest
	queries  []queryRequest
	deleted  []string
	response queryResponse
	count    int
}

func newFakeChroma() *fakeChroma {
	f := &fakeChroma{mux: http.NewServeMux()}

	f.mux.HandleFunc("POST /api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		var req collectionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !req.GetOrCreate {
			http.Error(w, "expected get_or_create", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(collectionResponse{ID: "col-1", Name: req.Name})
	})
	f.mux.HandleFunc("DELETE /api/v1/collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.deleted = append(f.deleted, r.PathValue("name"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "null")
	})
	f.mux.HandleFunc("POST /api/v1/collections/col-1/add", func(w http.ResponseWriter, r *http.Request) {
		var req addRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.adds = append(f.adds, req)
		f.count += len(req.IDs)
		fmt.Fprint(w, "true")
	})
	f.mux.HandleFunc("POST /api/v1/collections/col-1/query", func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.queries = append(f.queries, req)
		json.NewEncoder(w).Encode(f.response)
	})
	f.mux.HandleFunc("GET /api/v1/collections/col-1/count", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%d", f.count)
	})
	f.mux.HandleFunc("GET /api/v1/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"nanosecond heartbeat": 1}`)
	})
	return f
}

func newTestStore(t *testing.T) (*VectorStore, *fakeChroma) {
	t.Helper()
	fake := newFakeChroma()
	server := httptest.NewServer(fake.mux)
	t.Cleanup(server.Close)

	store, err := NewVectorStore(context.Background(), server.URL, "clinical_guidelines")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store, fake
}

func TestVectorStore_Add(t *testing.T) {
	store, fake := newTestStore(t)

	chunks := []*domain.GuidelineChunk{
		{ID: "c1", Source: "icmr_diabetes_2023.pdf", Category: domain.ConditionDiabetes, Ordinal: 0, Content: "Prefer low GI grains."},
		{ID: "c2", Source: "icmr_diabetes_2023.pdf", Category: domain.ConditionDiabetes, Ordinal: 1, Content: "Limit refined sugar."},
	}
	embeddings := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	if err := store.Add(context.Background(), chunks, embeddings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.adds) != 1 {
		t.Fatalf("expected 1 add request, got %d", len(fake.adds))
	}
	req := fake.adds[0]
	if len(req.IDs) != 2 || req.IDs[0] != "c1" {
		t.Errorf("unexpected ids %v", req.IDs)
	}
	if req.Documents[1] != "Limit refined sugar." {
		t.Errorf("unexpected document %q", req.Documents[1])
	}
	if req.Metadatas[0]["category"] != "diabetes" || req.Metadatas[0]["source"] != "icmr_diabetes_2023.pdf" {
		t.Errorf("unexpected metadata %v", req.Metadatas[0])
	}
}

func TestVectorStore_Add_LengthMismatch(t *testing.T) {
	store, _ := newTestStore(t)

	chunks := []*domain.GuidelineChunk{{ID: "c1"}}
	err := store.Add(context.Background(), chunks, [][]float32{{0.1}, {0.2}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVectorStore_Query(t *testing.T) {
	store, fake := newTestStore(t)
	fake.response = queryResponse{
		IDs:       [][]string{{"c1", "c2"}},
		Documents: [][]string{{"Prefer low GI grains.", "Limit refined sugar."}},
		Metadatas: [][]map[string]any{{
			{"source": "icmr_diabetes_2023.pdf", "category": "diabetes", "ordinal": float64(0)},
			{"source": "icmr_diabetes_2023.pdf", "category": "diabetes", "ordinal": float64(1)},
		}},
		Distances: [][]float64{{0.1, 0.3}},
	}

	results, err := store.Query(context.Background(), []float32{0.1, 0.2}, 4, domain.ConditionDiabetes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Source != "icmr_diabetes_2023.pdf" {
		t.Errorf("unexpected source %q", results[0].Chunk.Source)
	}
	if results[0].Chunk.Category != domain.ConditionDiabetes {
		t.Errorf("unexpected category %q", results[0].Chunk.Category)
	}
	if results[0].Chunk.Ordinal != 0 || results[1].Chunk.Ordinal != 1 {
		t.Error("ordinals not decoded from metadata")
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("closer match should score higher: %v vs %v", results[0].Score, results[1].Score)
	}

	req := fake.queries[0]
	if req.NResults != 4 {
		t.Errorf("unexpected n_results %d", req.NResults)
	}
	if req.Where["category"] != "diabetes" {
		t.Errorf("expected category filter, got %v", req.Where)
	}
}

func TestVectorStore_Query_NoFilterForEmptyCategory(t *testing.T) {
	store, fake := newTestStore(t)
	fake.response = queryResponse{IDs: [][]string{{}}}

	if _, err := store.Query(context.Background(), []float32{0.1}, 4, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.queries[0].Where != nil {
		t.Errorf("expected no where clause, got %v", fake.queries[0].Where)
	}
}

func TestVectorStore_Count(t *testing.T) {
	store, fake := newTestStore(t)
	fake.count = 7

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7, got %d", count)
	}
}

func TestVectorStore_Reset(t *testing.T) {
	store, fake := newTestStore(t)

	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != "clinical_guidelines" {
		t.Errorf("expected collection delete, got %v", fake.deleted)
	}
}

func TestVectorStore_HealthCheck(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVectorStore_ServerDown(t *testing.T) {
	fake := newFakeChroma()
	server := httptest.NewServer(fake.mux)

	store, err := NewVectorStore(context.Background(), server.URL, "clinical_guidelines")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	server.Close()

	if err := store.HealthCheck(context.Background()); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
	if _, err := store.Query(context.Background(), []float32{0.1}, 4, ""); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}
