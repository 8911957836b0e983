package bloom

import (
	"reflect"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"

	"opal/internal/common"
)

// Hasher reduces a key to the stable content hash fed to a Family.
// Sum64 must depend only on the bytes of its input.
type Hasher interface {
	Name() string
	Sum64(data []byte) uint64
}

type murmur3Hasher struct{}

func (murmur3Hasher) Name() string             { return "murmur3" }
func (murmur3Hasher) Sum64(data []byte) uint64 { return murmur3.Sum64(data) }

type xxHasher struct{}

func (xxHasher) Name() string             { return "xxhash" }
func (xxHasher) Sum64(data []byte) uint64 { return xxhash.Sum64(data) }

var (
	// Murmur3 is the default hasher.
	Murmur3 Hasher = murmur3Hasher{}
	XXHash  Hasher = xxHasher{}
)

var (
	hashersMu sync.RWMutex
	hashers   = map[string]Hasher{}
)

func init() {
	RegisterHasher(Murmur3)
	RegisterHasher(XXHash)
}

// RegisterHasher makes h available to NewFromSerialized under h.Name().
// It panics if the name is invalid or already taken.
func RegisterHasher(h Hasher) {
	if h == nil {
		panic("bloom: RegisterHasher of nil hasher")
	}
	name := h.Name()
	if !validTag(name) {
		panic("bloom: invalid hasher name " + name)
	}
	hashersMu.Lock()
	defer hashersMu.Unlock()
	if _, dup := hashers[name]; dup {
		panic("bloom: RegisterHasher called twice for " + name)
	}
	hashers[name] = h
}

// HasherByName returns the registered hasher called name.
func HasherByName(name string) (Hasher, error) {
	hashersMu.RLock()
	h, ok := hashers[name]
	hashersMu.RUnlock()
	if !ok {
		return nil, common.Errorf(common.KindConfiguration, "HasherByName", "unknown hasher %q", name)
	}
	return h, nil
}

// encodeHasher returns the name recorded for h in the full serialized form.
// The name must resolve back to a hasher of the same type.
func encodeHasher(op string, h Hasher) (string, error) {
	name := h.Name()
	if !validTag(name) {
		return "", common.Errorf(common.KindConfiguration, op, "invalid hasher name %q", name)
	}
	registered, err := HasherByName(name)
	if err != nil {
		return "", common.Wrapf(common.KindConfiguration, op, err, "hasher %T", h)
	}
	if reflect.TypeOf(registered) != reflect.TypeOf(h) {
		return "", common.Errorf(common.KindConfiguration, op,
			"hasher %T is not the one registered as %q", h, name)
	}
	return name, nil
}

// Hashers lists the registered hasher names in sorted order.
func Hashers() []string {
	hashersMu.RLock()
	defer hashersMu.RUnlock()
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validTag accepts the names used as serialized-form fields: [a-z0-9-]+.
func validTag(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
