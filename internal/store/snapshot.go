package store

import (
	"encoding/json"
	"fmt"
)

// Dump is a portable snapshot of every persisted document, keyed by
// logical key. It is the wire shape of the export/import feature.
type Dump map[string]json.RawMessage

// Export reads every document present in the store into a Dump.
func Export(s Store) (Dump, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	dump := make(Dump, len(keys))
	for _, k := range keys {
		var raw json.RawMessage
		if err := s.Load(k, &raw); err != nil {
			return nil, fmt.Errorf("export %s: %w", k, err)
		}
		dump[k] = raw
	}
	return dump, nil
}

// Import writes a dump into the store. The whole dump is validated
// before the first write so a malformed file never leaves the store
// half-replaced: every key must be known and every value must be
// well-formed JSON. Keys absent from the dump are left untouched.
func Import(s Store, dump Dump) error {
	for k, raw := range dump {
		if !knownKey(k) {
			return fmt.Errorf("import: unknown key %q", k)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("import: document %q is not valid JSON", k)
		}
	}
	for k, raw := range dump {
		if err := s.Save(k, raw); err != nil {
			return fmt.Errorf("import %s: %w", k, err)
		}
	}
	return nil
}
