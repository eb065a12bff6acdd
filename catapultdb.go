package catapultdb

import (
	"github.com/MRandl/catapult-db/internal/searcher"
	"github.com/MRandl/catapult-db/search"
	"github.com/MRandl/catapult-db/store"
)

// DB is a read-only ANN database over one graph + payload pair.
type DB struct {
	payload *store.Payload
	graph   *store.Graph
	engine  *search.Engine
	opts    options
}

// Result is one returned neighbor.
type Result = search.Result

// Stats aggregates beam-search counters.
type Stats = search.Stats

// Open loads the graph metadata and payload files and validates them
// against each other. The files are memory-mapped where possible;
// .zst/.lz4 suffixes select decompression into aligned buffers.
func Open(graphPath, payloadPath string, opts ...Option) (*DB, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	payload, err := store.OpenPayload(payloadPath)
	if err != nil {
		return nil, err
	}

	graph, err := store.OpenGraph(graphPath)
	if err != nil {
		payload.Close()
		return nil, err
	}

	engine, err := search.NewEngine(payload, graph)
	if err != nil {
		payload.Close()
		graph.Close()
		return nil, err
	}

	return &DB{payload: payload, graph: graph, engine: engine, opts: o}, nil
}

// Close releases the underlying file mappings. The DB must not be used
// afterwards.
func (db *DB) Close() error {
	err := db.graph.Close()
	if perr := db.payload.Close(); perr != nil && err == nil {
		err = perr
	}
	return err
}

// Dim returns the corpus dimensionality.
func (db *DB) Dim() int { return db.engine.Dim() }

// Count returns the corpus size.
func (db *DB) Count() int { return db.engine.Count() }

// Engine exposes the underlying search engine for callers that manage
// their own per-thread searcher state.
func (db *DB) Engine() *search.Engine { return db.engine }

// Params returns the search parameters the DB's options resolve to for a
// given k.
func (db *DB) Params(k int) search.Params {
	return search.Params{
		K:             k,
		BeamWidth:     db.opts.beamWidth,
		Catapults:     db.opts.catapults,
		TrajectoryCap: db.opts.trajectoryCap,
		ReinjectCount: db.opts.reinjectCount,
	}
}

// Search returns up to k corpus ids closest to query, distance-ascending.
// Safe for concurrent use; per-query state comes from an internal pool.
func (db *DB) Search(query []float32, k int) ([]Result, error) {
	s := searcher.Get()
	defer searcher.Put(s)

	return db.engine.Search(s, query, db.Params(k), nil, nil)
}
