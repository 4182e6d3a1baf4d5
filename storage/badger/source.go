package badger

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/storage"
)

// SourceRepository stores custom sources under an insertion-ordered key
// space with a unique index on the folded name.
type SourceRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SourceRepository = (*SourceRepository)(nil)

// NewSourceRepository creates a SourceRepository on an open backend.
func NewSourceRepository(backend *Backend) (*SourceRepository, error) {
	idSeq, err := backend.GetSequence(sourceIDSeq)
	if err != nil {
		return nil, err
	}
	return &SourceRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the sequence lease.
func (r *SourceRepository) Close() error {
	return r.idSeq.Release()
}

// AddSource appends a source unless its name is already taken.
func (r *SourceRepository) AddSource(ctx context.Context, source *core.Source) error {
	if err := core.ValidateSource(source); err != nil {
		return err
	}

	seq, err := r.idSeq.Next()
	if err != nil {
		return err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		nameKey := makeSourceNameKey(source.Name)
		_, err := tx.Get(nameKey)
		if err == nil {
			return storage.ErrDuplicateKey
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		key := makeSourceKey(seq)
		if err := tx.Set(key, storage.MarshalSource(source)); err != nil {
			return err
		}
		if err := tx.Set(nameKey, key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	// A conflict means a concurrent writer claimed the same name index key.
	if errors.Is(err, badger.ErrConflict) {
		return storage.ErrDuplicateKey
	}
	if err != nil {
		r.backend.logger.Debug("failed to add source", "name", source.Name, "err", err)
	}
	return err
}

// GetSources returns every stored source in insertion order.
func (r *SourceRepository) GetSources(ctx context.Context) ([]*core.Source, error) {
	var results []*core.Source
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sourceRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var source *core.Source
			err := iter.Item().Value(func(val []byte) error {
				var err error
				source, err = storage.UnmarshalSource(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, source)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindSource looks a source up through the name index.
func (r *SourceRepository) FindSource(ctx context.Context, name string) (*core.Source, error) {
	if strings.TrimSpace(name) == "" {
		return nil, storage.ErrNotFound
	}

	var result *core.Source
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSourceNameKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		result, err = readSource(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// readSource reads a source from the transaction. Missing keys yield nil.
func readSource(tx *badger.Txn, key []byte) (*core.Source, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var source *core.Source
	err = item.Value(func(val []byte) error {
		var err error
		source, err = storage.UnmarshalSource(val)
		return err
	})
	return source, err
}
