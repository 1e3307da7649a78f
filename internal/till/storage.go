package till

import (
	"encoding/json"
	"errors"
	"os"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a debt with the given ID is not open.
var ErrNotFound = errors.New("debt not found")

// Storage is the persistence gateway for the session snapshot. Save
// overwrites the whole blob; Load is fail-soft and always yields a usable
// snapshot, falling back to DefaultSnapshot on missing or corrupt data.
type Storage interface {
	Save(snapshot *Snapshot) error
	Load() *Snapshot
}

// FileStorage persists the snapshot as a single JSON file.
type FileStorage struct {
	path   string
	logger *zap.Logger
}

// NewFileStorage creates a FileStorage writing to the given path.
func NewFileStorage(path string, logger *zap.Logger) *FileStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStorage{path: path, logger: logger}
}

// Save serializes the snapshot and overwrites any previous blob.
func (f *FileStorage) Save(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

// Load reads the blob back. Corruption is recovered field by field: a
// missing file, garbage content, or a field of the wrong shape falls back
// to that field's default rather than aborting the load.
func (f *FileStorage) Load() *Snapshot {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("failed to read session file, starting empty",
				zap.String("path", f.path), zap.Error(err))
		}
		return DefaultSnapshot()
	}
	return decodeSnapshot(data, f.logger)
}

// decodeSnapshot applies per-field fallbacks over a raw blob.
func decodeSnapshot(data []byte, logger *zap.Logger) *Snapshot {
	snapshot := DefaultSnapshot()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		logger.Warn("corrupt session blob, starting empty", zap.Error(err))
		return snapshot
	}

	if raw, ok := fields["cart"]; ok {
		var cart map[string]int
		if err := json.Unmarshal(raw, &cart); err == nil && cart != nil {
			for id, q := range cart {
				if q > 0 {
					snapshot.Cart[id] = q
				}
			}
		}
	}
	if raw, ok := fields["display_mode"]; ok {
		var mode string
		if err := json.Unmarshal(raw, &mode); err == nil {
			if mode == ModeDark || mode == ModeColor {
				snapshot.DisplayMode = mode
			}
		}
	}
	if raw, ok := fields["sales"]; ok {
		var sales []Sale
		if err := json.Unmarshal(raw, &sales); err == nil && sales != nil {
			snapshot.Sales = sales
		}
	}
	if raw, ok := fields["debts"]; ok {
		var debts []Debt
		if err := json.Unmarshal(raw, &debts); err == nil && debts != nil {
			snapshot.Debts = debts
		}
	}

	return snapshot
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	saved *Snapshot
}

// NewMemoryStorage instantiates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Save round-trips the snapshot through JSON so tests exercise the same
// encoding the file gateway uses.
func (m *MemoryStorage) Save(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	var copied Snapshot
	if err := json.Unmarshal(data, &copied); err != nil {
		return err
	}
	m.saved = &copied
	return nil
}

// Load returns the last saved snapshot, or the default when nothing was
// saved yet.
func (m *MemoryStorage) Load() *Snapshot {
	if m.saved == nil {
		return DefaultSnapshot()
	}
	return m.saved
}
