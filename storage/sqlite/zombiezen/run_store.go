package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/score"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/stat"
	"github.com/bichngocdo/pp-attachment-candidate-extraction/storage"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const timeLayout = time.RFC3339Nano

type RunStore struct {
	pool *sqlitex.Pool
}

var _ storage.RunRepository = (*RunStore)(nil)

func NewRunStore(pool *sqlitex.Pool) *RunStore {
	return &RunStore{pool: pool}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Begin inserts the run row and opens a transaction holding all its
// records. A run without an Id gets a new uuid.
func (h *RunStore) Begin(run storage.Run) (storage.RecordStore, error) {
	if run.Id == "" {
		run.Id = uuid.NewString()
	}
	if run.Started.IsZero() {
		run.Started = time.Now()
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}

	if err := sqlitex.ExecuteTransient(conn, "BEGIN;", nil); err != nil {
		h.pool.Put(conn)
		return nil, err
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO runs (id, input, use_gold_obj, add_gold_head, only_nv, only_gold, started)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{
				run.Id, run.Input,
				boolInt(run.Options.UseGoldObj),
				boolInt(run.Options.AddGoldHead),
				boolInt(run.Options.OnlyNV),
				boolInt(run.OnlyGold),
				run.Started.UTC().Format(timeLayout),
			},
		})
	if err != nil {
		_ = sqlitex.ExecuteTransient(conn, "ROLLBACK;", nil)
		h.pool.Put(conn)
		return nil, fmt.Errorf("failed to insert run %s: %w", run.Id, err)
	}

	return &RunWriter{pool: h.pool, conn: conn, runId: run.Id}, nil
}

// RunWriter stores the records of one run.
type RunWriter struct {
	pool  *sqlitex.Pool
	conn  *sqlite.Conn
	runId string
	seq   int
}

var _ storage.RecordStore = (*RunWriter)(nil)

// RunId returns the id of the run being written.
func (w *RunWriter) RunId() string {
	return w.runId
}

func (w *RunWriter) Write(rec extract.Record) error {
	err := sqlitex.Execute(w.conn,
		`INSERT INTO records (run_id, seq, pp_id, pp_word, pp_pos, pp_field, obj_word, obj_pos, obj_field)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{
				w.runId, w.seq, rec.Id,
				rec.PP.Word, rec.PP.Pos, rec.PP.Field,
				rec.Object.Word, rec.Object.Pos, rec.Object.Field,
			},
		})
	if err != nil {
		return err
	}
	recordId := w.conn.LastInsertRowID()

	for rank, c := range rec.Candidates {
		err := sqlitex.Execute(w.conn,
			`INSERT INTO candidates (record_id, pos_rank, idx, word, pos, field, abs_dist, rel_dist, class)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{
				Args: []interface{}{recordId, rank, c.Index, c.Word, c.Pos, c.Field, c.AbsDist, c.RelDist, c.Class},
			})
		if err != nil {
			return err
		}
	}

	w.seq++
	return nil
}

// Finish stores the counters, commits and returns the connection to the
// pool.
func (w *RunWriter) Finish(stats stat.Stats) error {
	defer w.pool.Put(w.conn)

	data, err := json.Marshal(stats)
	if err != nil {
		_ = sqlitex.ExecuteTransient(w.conn, "ROLLBACK;", nil)
		return err
	}

	err = sqlitex.Execute(w.conn,
		"UPDATE runs SET finished = ?, num_records = ?, stats = ? WHERE id = ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{time.Now().UTC().Format(timeLayout), w.seq, string(data), w.runId},
		})
	if err != nil {
		_ = sqlitex.ExecuteTransient(w.conn, "ROLLBACK;", nil)
		return err
	}

	return sqlitex.ExecuteTransient(w.conn, "COMMIT;", nil)
}

func (h *RunStore) Runs() ([]storage.Run, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var runs []storage.Run
	err = sqlitex.Execute(conn,
		`SELECT id, input, use_gold_obj, add_gold_head, only_nv, only_gold, started, finished, num_records, stats
		 FROM runs ORDER BY started, id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				run := storage.Run{
					Id:    stmt.ColumnText(0),
					Input: stmt.ColumnText(1),
					Options: extract.Options{
						UseGoldObj:  stmt.ColumnInt(2) != 0,
						AddGoldHead: stmt.ColumnInt(3) != 0,
						OnlyNV:      stmt.ColumnInt(4) != 0,
					},
					OnlyGold:   stmt.ColumnInt(5) != 0,
					NumRecords: stmt.ColumnInt(8),
				}

				started, err := time.Parse(timeLayout, stmt.ColumnText(6))
				if err != nil {
					return fmt.Errorf("run %s: %w", run.Id, err)
				}
				run.Started = started

				if finished := stmt.ColumnText(7); finished != "" {
					if run.Finished, err = time.Parse(timeLayout, finished); err != nil {
						return fmt.Errorf("run %s: %w", run.Id, err)
					}
				}

				if data := stmt.ColumnText(9); data != "" {
					if err := json.Unmarshal([]byte(data), &run.Stats); err != nil {
						return fmt.Errorf("run %s: %w", run.Id, err)
					}
				}

				runs = append(runs, run)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

func (h *RunStore) Records(runId string) ([]extract.Record, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var (
		records []extract.Record
		lastId  int64 = -1
	)
	err = sqlitex.Execute(conn,
		`SELECT r.id, r.pp_id, r.pp_word, r.pp_pos, r.pp_field, r.obj_word, r.obj_pos, r.obj_field,
		        c.idx, c.word, c.pos, c.field, c.abs_dist, c.rel_dist, c.class, c.record_id
		 FROM records r LEFT JOIN candidates c ON c.record_id = r.id
		 WHERE r.run_id = ?
		 ORDER BY r.seq, c.pos_rank`,
		&sqlitex.ExecOptions{
			Args: []interface{}{runId},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				if id := stmt.ColumnInt64(0); id != lastId {
					lastId = id
					records = append(records, extract.Record{
						Id:     stmt.ColumnText(1),
						PP:     extract.Info{Word: stmt.ColumnText(2), Pos: stmt.ColumnText(3), Field: stmt.ColumnText(4)},
						Object: extract.Info{Word: stmt.ColumnText(5), Pos: stmt.ColumnText(6), Field: stmt.ColumnText(7)},
					})
				}

				// no candidate row
				if stmt.ColumnType(15) == sqlite.TypeNull {
					return nil
				}

				rec := &records[len(records)-1]
				rec.Candidates = append(rec.Candidates, score.Feature{
					Index:   stmt.ColumnInt(8),
					Word:    stmt.ColumnText(9),
					Pos:     stmt.ColumnText(10),
					Field:   stmt.ColumnText(11),
					AbsDist: stmt.ColumnInt(12),
					RelDist: stmt.ColumnInt(13),
					Class:   stmt.ColumnInt(14),
				})
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return records, nil
}
