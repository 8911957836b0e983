package bloom

import (
	"strings"

	"opal/internal/common"
)

// DefaultFamilyKind tags DefaultFamily in serialized filters.
const DefaultFamilyKind = "default"

// seedStreamStart is the fixed state of the splitmix64 stream that
// produces every DefaultFamily's seeds ("opal-blm").
const seedStreamStart uint64 = 0x6f70616c2d626c6d

// DefaultFamily derives function i as seeds[i] XOR h, reduced mod maxHash+1.
// Seeds are the upper halves of a splitmix64 stream started at a constant,
// so two families with the same count are identical in every process and a
// family of count k is a prefix of one of count k+1.
type DefaultFamily struct {
	seeds []uint32
}

var _ SerializableFamily = (*DefaultFamily)(nil)

// NewDefaultFamily creates a family of k functions.
func NewDefaultFamily(k int) (*DefaultFamily, error) {
	if k <= 0 {
		return nil, common.Errorf(common.KindConfiguration, "NewDefaultFamily", "function count must be positive, got %d", k)
	}
	return &DefaultFamily{seeds: defaultSeeds(k)}, nil
}

func defaultSeeds(k int) []uint32 {
	seeds := make([]uint32, k)
	state := seedStreamStart
	for i := range seeds {
		seeds[i] = uint32(splitmix64(&state) >> 32)
	}
	return seeds
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// NewDefaultFamilyFromParams parses Params output. The short form "<k>"
// regenerates the seeds; the long form "<k>:<seed>,<seed>,..." must list
// exactly k seeds of 8 hex digits each.
func NewDefaultFamilyFromParams(params string) (*DefaultFamily, error) {
	const op = "NewDefaultFamilyFromParams"
	countText, seedText, long := strings.Cut(params, ":")
	k, err := common.ParseUint(op, "function count", countText)
	if err != nil {
		return nil, err
	}
	if k == 0 || k > maxFunctions {
		return nil, common.Errorf(common.KindParse, op, "function count %d out of range [1, %d]", k, maxFunctions)
	}
	if !long {
		return &DefaultFamily{seeds: defaultSeeds(int(k))}, nil
	}

	fields := strings.Split(seedText, ",")
	if uint64(len(fields)) != k {
		return nil, common.Errorf(common.KindParse, op, "function count %d but %d seeds", k, len(fields))
	}
	seeds := make([]uint32, k)
	for i, field := range fields {
		seeds[i], err = common.ParseHex32(op, "seed", field)
		if err != nil {
			return nil, err
		}
	}
	return &DefaultFamily{seeds: seeds}, nil
}

func (f *DefaultFamily) FunctionCount() int {
	return len(f.seeds)
}

func (f *DefaultFamily) ComputeHash(index int, maxHash uint64, h uint64) (uint64, error) {
	if err := checkFunctionIndex("ComputeHash", index, len(f.seeds)); err != nil {
		return 0, err
	}
	return reduce(uint64(f.seeds[index])^h, maxHash), nil
}

// Seeds returns a copy of the per-function seeds.
func (f *DefaultFamily) Seeds() []uint32 {
	return append([]uint32(nil), f.seeds...)
}

func (f *DefaultFamily) Kind() string {
	return DefaultFamilyKind
}

// Params returns "<k>:<seed>,<seed>,..." with seeds as 8 hex digits.
func (f *DefaultFamily) Params() string {
	var sb strings.Builder
	sb.WriteString(common.FormatUint(uint64(len(f.seeds))))
	sb.WriteByte(':')
	for i, s := range f.seeds {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(common.FormatHex32(s))
	}
	return sb.String()
}
