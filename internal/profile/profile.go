// Package profile loads an inventory snapshot and resolves it against the
// manifest into items the stat builder understands.
package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/verte-zerg/itemstats/internal/model"
)

// ItemDefinitions resolves item and plug definitions.
type ItemDefinitions interface {
	Item(hash uint32) (*model.ItemDefinition, bool)
}

// File is the on-disk inventory snapshot.
type File struct {
	Items []ItemRecord `json:"items"`
}

// ItemRecord is one item instance in the snapshot. Bucket and class default
// to the item definition's when omitted.
type ItemRecord struct {
	ID         string         `json:"id"`
	Hash       uint32         `json:"hash"`
	BucketHash uint32         `json:"bucketHash,omitempty"`
	ClassType  *int           `json:"classType,omitempty"`
	Energy     *model.Energy  `json:"energy,omitempty"`
	Sockets    []SocketRecord `json:"sockets,omitempty"`
	Stats      map[string]int `json:"stats,omitempty"`
}

// SocketRecord is one socket: what is plugged and what could be.
type SocketRecord struct {
	Index    int      `json:"index"`
	Style    int      `json:"style,omitempty"`
	PlugHash uint32   `json:"plugHash,omitempty"`
	Options  []uint32 `json:"options,omitempty"`
}

// Entry is a resolved item with its definition.
type Entry struct {
	Item *model.Item
	Def  *model.ItemDefinition
}

// Profile is a resolved inventory.
type Profile struct {
	Entries []Entry
	Live    map[string]model.LiveStats
	// Skipped lists item hashes with no definition in the manifest.
	Skipped []uint32
}

// Load reads and resolves the snapshot at path.
func Load(path string, defs ItemDefinitions) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()
	return Parse(f, defs)
}

// Parse decodes and resolves a snapshot.
func Parse(r io.Reader, defs ItemDefinitions) (*Profile, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return Resolve(file, defs)
}

// Resolve turns snapshot records into items. Records whose definition is
// missing are skipped; plugs whose definition is missing leave their socket
// empty.
func Resolve(file File, defs ItemDefinitions) (*Profile, error) {
	p := &Profile{Live: map[string]model.LiveStats{}}
	seen := map[string]bool{}
	for _, rec := range file.Items {
		if rec.ID != "" {
			if seen[rec.ID] {
				return nil, fmt.Errorf("duplicate item id %q", rec.ID)
			}
			seen[rec.ID] = true
		}
		def, ok := defs.Item(rec.Hash)
		if !ok {
			p.Skipped = append(p.Skipped, rec.Hash)
			continue
		}
		item := resolveItem(rec, def, defs)
		if rec.ID != "" && rec.Stats != nil {
			live, err := parseLiveStats(rec.Stats)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", rec.ID, err)
			}
			p.Live[rec.ID] = live
		}
		p.Entries = append(p.Entries, Entry{Item: item, Def: def})
	}
	return p, nil
}

func resolveItem(rec ItemRecord, def *model.ItemDefinition, defs ItemDefinitions) *model.Item {
	bucketHash := rec.BucketHash
	if bucketHash == 0 {
		bucketHash = def.Inventory.BucketTypeHash
	}
	bucket, itemType := model.BucketFor(bucketHash)
	class := def.ClassType
	if rec.ClassType != nil {
		class = model.DestinyClass(*rec.ClassType)
	}

	item := &model.Item{
		ID:        rec.ID,
		Hash:      rec.Hash,
		Name:      def.DisplayProperties.Name,
		Type:      itemType,
		Bucket:    bucket,
		ClassType: class,
		Energy:    rec.Energy,
	}
	if len(rec.Sockets) > 0 {
		sockets := &model.Sockets{AllSockets: make([]*model.Socket, 0, len(rec.Sockets))}
		for _, sr := range rec.Sockets {
			socket := &model.Socket{
				Index:         sr.Index,
				CategoryStyle: model.SocketCategoryStyle(sr.Style),
				Plugged:       resolvePlug(sr.PlugHash, defs),
			}
			for _, h := range sr.Options {
				if plug := resolvePlug(h, defs); plug != nil {
					socket.PlugOptions = append(socket.PlugOptions, plug)
				}
			}
			sockets.AllSockets = append(sockets.AllSockets, socket)
		}
		item.Sockets = sockets
	}
	return item
}

func resolvePlug(hash uint32, defs ItemDefinitions) *model.Plug {
	if hash == 0 {
		return nil
	}
	def, ok := defs.Item(hash)
	if !ok {
		return nil
	}
	return &model.Plug{Def: def}
}

func parseLiveStats(raw map[string]int) (model.LiveStats, error) {
	live := make(model.LiveStats, len(raw))
	for key, value := range raw {
		hash, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid stat hash %q: %w", key, err)
		}
		live[model.StatHash(hash)] = value
	}
	return live, nil
}

// Find returns the entry with the given instance ID, or the first entry
// whose item hash matches key.
func (p *Profile) Find(key string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Item.ID != "" && e.Item.ID == key {
			return e, true
		}
	}
	hash, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return Entry{}, false
	}
	for _, e := range p.Entries {
		if e.Item.Hash == uint32(hash) {
			return e, true
		}
	}
	return Entry{}, false
}
