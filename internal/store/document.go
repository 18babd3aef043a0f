package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Document.Load when nothing has been saved yet.
var ErrNotFound = errors.New("document not found")

// Document is a single named blob that is read whole and written whole.
type Document interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// FileDocument stores a document as a file. Saves go through a temporary
// file in the same directory and a rename, so readers never see a partial
// write.
type FileDocument struct {
	Path string
}

// NewFileDocument returns a FileDocument for path.
func NewFileDocument(path string) *FileDocument {
	return &FileDocument{Path: path}
}

func (f *FileDocument) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

func (f *FileDocument) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := EnsureDir(f.Path); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}

// sqlDocument stores a document as a row of the documents table.
type sqlDocument struct {
	db   *sql.DB
	seq  *sequenceCounter
	name string
}

func (d *sqlDocument) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := d.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, d.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", d.name, err)
	}
	return body, nil
}

func (d *sqlDocument) Save(ctx context.Context, data []byte) error {
	seqNum, err := d.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = d.db.ExecContext(ctx, `INSERT INTO documents (name, body, sequence, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			sequence = excluded.sequence,
			updated_at = excluded.updated_at`,
		d.name, data, seqNum, time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("save document %q: %w", d.name, err)
	}
	return nil
}
