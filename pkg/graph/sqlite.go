package graph

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore reads and writes term-labelled graphs in a SQLite database.
// A single database holds any number of graphs keyed by name, so an
// observed network and the subgraphs of all its simulated replicates can
// live in one file for later querying.
type SQLiteStore struct {
	DB *sql.DB
}

// NewSQLiteStore opens the database at filename, creating it and its
// tables as needed, and returns a store for it.
func NewSQLiteStore(filename string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	createGraphsTable := `
CREATE TABLE IF NOT EXISTS graphs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	nodes INTEGER NOT NULL,
	arcs INTEGER NOT NULL
);
`

	createNodesTable := `
CREATE TABLE IF NOT EXISTS nodes (
	graph_id INTEGER NOT NULL,
	node_id INTEGER NOT NULL,
	term INTEGER,
	FOREIGN KEY (graph_id) REFERENCES graphs (id),
	PRIMARY KEY (graph_id, node_id)
);
`

	createArcsTable := `
CREATE TABLE IF NOT EXISTS arcs (
	graph_id INTEGER NOT NULL,
	from_id INTEGER NOT NULL,
	to_id INTEGER NOT NULL,
	FOREIGN KEY (graph_id) REFERENCES graphs (id),
	PRIMARY KEY (graph_id, from_id, to_id)
);
`

	_, err = db.Exec(createGraphsTable)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(createNodesTable)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(createArcsTable)
	if err != nil {
		return nil, err
	}

	return &SQLiteStore{DB: db}, nil
}

// WriteGraph writes a graph to the database under the given name,
// replacing any graph already stored under it.
func (s *SQLiteStore) WriteGraph(name string, g *Directed) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow("SELECT id FROM graphs WHERE name = ?", name).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec("INSERT INTO graphs (name, nodes, arcs) VALUES (?, ?, ?)", name, g.NodeCount(), g.ArcCount())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		_, err = tx.Exec("UPDATE graphs SET nodes = ?, arcs = ? WHERE id = ?", g.NodeCount(), g.ArcCount(), id)
		if err != nil {
			return err
		}
		_, err = tx.Exec("DELETE FROM nodes WHERE graph_id = ?", id)
		if err != nil {
			return err
		}
		_, err = tx.Exec("DELETE FROM arcs WHERE graph_id = ?", id)
		if err != nil {
			return err
		}
	}

	for node := 1; node <= g.NodeCount(); node++ {
		var term any
		if g.HasTerms() {
			term = g.Term(node)
		}
		_, err := tx.Exec("INSERT INTO nodes (graph_id, node_id, term) VALUES (?, ?, ?)", id, node, term)
		if err != nil {
			return err
		}
	}

	for _, a := range g.Arcs() {
		_, err := tx.Exec("INSERT INTO arcs (graph_id, from_id, to_id) VALUES (?, ?, ?)", id, a.From, a.To)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReadGraph reads the graph stored under the given name. Term labels are
// attached when every stored node has one.
func (s *SQLiteStore) ReadGraph(name string) (*Directed, error) {
	var id int64
	var n, arcs int
	err := s.DB.QueryRow("SELECT id, nodes, arcs FROM graphs WHERE name = ?", name).Scan(&id, &n, &arcs)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no graph named %q", name)
	}
	if err != nil {
		return nil, err
	}

	g, err := NewDirected(n)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT node_id, term FROM nodes WHERE graph_id = ? ORDER BY node_id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]int, n)
	haveTerms := n > 0
	seen := 0
	for rows.Next() {
		var nodeID int
		var term sql.NullInt64
		if err := rows.Scan(&nodeID, &term); err != nil {
			return nil, err
		}
		if nodeID < 1 || nodeID > n {
			return nil, fmt.Errorf("graph %q: node %d outside 1..%d", name, nodeID, n)
		}
		seen++
		if term.Valid {
			terms[nodeID-1] = int(term.Int64)
		} else {
			haveTerms = false
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if seen != n {
		return nil, fmt.Errorf("graph %q: stored node count %d, read %d rows", name, n, seen)
	}
	if haveTerms {
		if err := g.SetTerms(terms); err != nil {
			return nil, err
		}
	}

	arcRows, err := s.DB.Query("SELECT from_id, to_id FROM arcs WHERE graph_id = ? ORDER BY from_id, to_id", id)
	if err != nil {
		return nil, err
	}
	defer arcRows.Close()

	for arcRows.Next() {
		var from, to int
		if err := arcRows.Scan(&from, &to); err != nil {
			return nil, err
		}
		if err := g.AddArc(from, to); err != nil {
			return nil, fmt.Errorf("graph %q: %w", name, err)
		}
	}
	if err := arcRows.Err(); err != nil {
		return nil, err
	}

	if g.ArcCount() != arcs {
		return nil, fmt.Errorf("graph %q: stored arc count %d, read %d", name, arcs, g.ArcCount())
	}
	return g, nil
}

// GraphNames returns the names of every stored graph in sorted order.
func (s *SQLiteStore) GraphNames() ([]string, error) {
	rows, err := s.DB.Query("SELECT name FROM graphs ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
