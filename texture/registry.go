package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/duskwillow/moviemaker/internal/mmlog"
)

// Registry is a named/id-keyed cache of decoded images. Entries live from
// insertion to process exit; there is no eviction. Two inserts under the
// same id overwrite silently — a debug-level line is logged when that
// happens.
type Registry struct {
	bySource string // asset search root used to resolve relative paths
	byID     map[string]Texture
	counter  int
}

// NewRegistry creates an empty registry that resolves relative asset paths
// against sourceRoot.
func NewRegistry(sourceRoot string) *Registry {
	return &Registry{
		bySource: sourceRoot,
		byID:     make(map[string]Texture),
	}
}

func (r *Registry) insert(id string, t Texture) {
	if _, exists := r.byID[id]; exists {
		mmlog.Get().Debug("texture: overwriting existing id", "id", id)
	}
	r.byID[id] = t
}

// LoadFromPath resolves sourceRoot/relPath, decodes it as an image, and
// inserts it under id. Returns the id back for convenience chaining.
func (r *Registry) LoadFromPath(relPath, id string) (string, error) {
	full := filepath.Join(r.bySource, relPath)
	f, err := os.Open(full)
	if err != nil {
		return "", fmt.Errorf("texture: open %s: %w", full, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("texture: decode %s: %w", full, err)
	}

	r.insert(id, newTexture(id, img))
	return id, nil
}

// InsertSynth inserts a bitmap produced in memory. The id is a stringified
// monotonic counter; name is optional and enables later lookup via ByName.
func (r *Registry) InsertSynth(bitmap image.Image, name string) string {
	r.counter++
	id := strconv.Itoa(r.counter)
	t := newTexture(id, bitmap)
	t.Name = name
	r.insert(id, t)
	return id
}

// Get returns the texture stored under id. Callers are expected to have
// preloaded every id they reference — a miss is a programming error, not a
// recoverable runtime condition, so Get panics rather than returning an
// error.
func (r *Registry) Get(id string) Texture {
	t, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("texture: unloaded texture id %q", id))
	}
	return t
}

// ByName performs a linear search for a texture inserted with the given
// name. Only used at scene-build time, so linear scan is fine.
func (r *Registry) ByName(name string) (Texture, bool) {
	for _, t := range r.byID {
		if t.Name == name {
			return t, true
		}
	}
	return Texture{}, false
}
