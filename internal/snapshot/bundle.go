package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/josh-kwaku/securebank/internal/domain"
)

// BundleVersion is the only export format version accepted on import.
const BundleVersion = "1.0"

// Bundle is a full backup: the signed-in user plus the user directory.
type Bundle struct {
	CurrentUser domain.User
	AllUsers    []domain.User
	Timestamp   time.Time
	Version     string
}

type bundleWire struct {
	CurrentUser userWire   `json:"currentUser"`
	AllUsers    []userWire `json:"allUsers"`
	Timestamp   string     `json:"timestamp"`
	Version     string     `json:"version"`
}

// NewBundle stamps a bundle with the current format version.
func NewBundle(current domain.User, all []domain.User, now time.Time) Bundle {
	return Bundle{
		CurrentUser: current,
		AllUsers:    all,
		Timestamp:   now.UTC(),
		Version:     BundleVersion,
	}
}

// Export serialises b as indented JSON.
func Export(b Bundle) ([]byte, error) {
	w := bundleWire{
		CurrentUser: toWire(b.CurrentUser),
		AllUsers:    make([]userWire, 0, len(b.AllUsers)),
		Timestamp:   timestamp(b.Timestamp),
		Version:     b.Version,
	}
	for _, u := range b.AllUsers {
		w.AllUsers = append(w.AllUsers, toWire(u))
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	return data, nil
}

// ParseBundle validates a backup in full. A single bad record rejects the
// whole bundle, so callers can write nothing unless this succeeds.
func ParseBundle(data []byte) (Bundle, error) {
	o, err := parseObject("", data)
	if err != nil {
		return Bundle{}, err
	}

	version, err := o.str("version")
	if err != nil {
		return Bundle{}, err
	}
	if version != BundleVersion {
		return Bundle{}, malformed("version", fmt.Sprintf("unsupported version %q", version))
	}
	ts, err := o.timestamp("timestamp")
	if err != nil {
		return Bundle{}, err
	}

	raw, ok := o.get("currentUser")
	if !ok {
		return Bundle{}, malformed("currentUser", "required")
	}
	current, err := decodeUser("currentUser", raw)
	if err != nil {
		return Bundle{}, err
	}

	items, err := o.array("allUsers")
	if err != nil {
		return Bundle{}, err
	}
	all := make([]domain.User, 0, len(items))
	for i, item := range items {
		u, err := decodeUser(index("allUsers", i), item)
		if err != nil {
			return Bundle{}, err
		}
		all = append(all, u)
	}

	return Bundle{
		CurrentUser: current,
		AllUsers:    all,
		Timestamp:   ts,
		Version:     version,
	}, nil
}

// BackupFilename is the suggested download name for an export taken at t.
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("securebank-backup-%s.json", t.Format(time.DateOnly))
}
