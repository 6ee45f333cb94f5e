package bst

import (
	"fmt"
	"math/bits"
	"slices"
	"testing"

	"github.com/openacid/testkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flightCodes = []string{"GA010", "GA039", "GA100", "GA201", "GA305"}

func TestBuildWorkedExample(t *testing.T) {
	root := Build(flightCodes)
	require.NotNil(t, root)

	assert.Equal(t, "GA100", root.Data)
	require.NotNil(t, root.Left)
	assert.Equal(t, "GA039", root.Left.Data)
	require.NotNil(t, root.Left.Left)
	assert.Equal(t, "GA010", root.Left.Left.Data)
	assert.Nil(t, root.Left.Right)

	require.NotNil(t, root.Right)
	assert.Equal(t, "GA305", root.Right.Data)
	require.NotNil(t, root.Right.Left)
	assert.Equal(t, "GA201", root.Right.Left.Data)
	assert.Nil(t, root.Right.Right)

	assert.True(t, root.Left.Left.IsLeaf())
	assert.False(t, root.IsLeaf())
}

func TestBuildEmpty(t *testing.T) {
	assert.Nil(t, Build(nil))
	assert.Nil(t, Build([]string{}))
	assert.Equal(t, 0, Height(nil))
	assert.Equal(t, 0, Len(nil))
	assert.Empty(t, Collect(nil))
}

func TestBuildEvenLengthRootIsUpperMiddle(t *testing.T) {
	tests := []struct {
		codes []string
		root  string
	}{
		{[]string{"A", "B"}, "B"},
		{[]string{"A", "B", "C", "D"}, "C"},
		{[]string{"A", "B", "C", "D", "E", "F"}, "D"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(len(tt.codes)), func(t *testing.T) {
			assert.Equal(t, tt.root, Build(tt.codes).Data)
		})
	}
}

func TestInOrderReproducesInput(t *testing.T) {
	for n := 0; n <= 64; n++ {
		codes := sequence(n)
		assert.Equal(t, codes, Collect(Build(codes)), "n=%d", n)
	}
}

func TestInOrderIsRestartable(t *testing.T) {
	seq := InOrder(Build(flightCodes))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, flightCodes, first)
	assert.Equal(t, first, second)
}

func TestInOrderStopsEarly(t *testing.T) {
	var got []string
	for code := range InOrder(Build(flightCodes)) {
		got = append(got, code)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"GA010", "GA039"}, got)
}

func TestHeightIsBalanced(t *testing.T) {
	for n := 1; n <= 200; n++ {
		root := Build(sequence(n))
		assert.Equal(t, bits.Len(uint(n)), Height(root), "n=%d", n)
		assert.Equal(t, n, Len(root), "n=%d", n)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	codes := sequence(37)
	a, b := Build(codes), Build(codes)
	assert.True(t, Equal(a, b))
	assert.Equal(t, Collect(a), Collect(b))
	assert.False(t, Equal(a, Build(codes[:36])))
}

func TestSearchPath(t *testing.T) {
	root := Build(flightCodes)

	tests := []struct {
		target string
		want   []string
		found  bool
	}{
		{"GA100", []string{"GA100"}, true},
		{"GA010", []string{"GA100", "GA039", "GA010"}, true},
		{"GA039", []string{"GA100", "GA039"}, true},
		{"GA201", []string{"GA100", "GA305", "GA201"}, true},
		{"GA305", []string{"GA100", "GA305"}, true},
		{"GA999", nil, false},
		{"GA000", nil, false},
		{"GA150", nil, false},
		{"", nil, false},
		{"ga100", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			path, found := SearchPath(root, tt.target)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, path)
			assert.Equal(t, tt.found, Contains(root, tt.target))
		})
	}
}

func TestSearchPathEmptyTree(t *testing.T) {
	path, found := SearchPath(nil, "GA100")
	assert.False(t, found)
	assert.Nil(t, path)
}

func TestSearchPathEveryMember(t *testing.T) {
	codes := sequence(50)
	root := Build(codes)

	for _, code := range codes {
		path, found := SearchPath(root, code)
		require.True(t, found, code)
		assert.Equal(t, root.Data, path[0])
		assert.Equal(t, code, path[len(path)-1])
		assert.LessOrEqual(t, len(path), Height(root))
	}

	for _, code := range []string{"AA000", "ZZ999", "GA0005"} {
		_, found := SearchPath(root, code)
		assert.False(t, found, code)
	}
}

// Key corpora from testkeys exercise the properties on realistic string
// distributions, including shared prefixes and mixed lengths.
func TestPropertiesOnKeyCorpus(t *testing.T) {
	names := testkeys.AssetNames()
	if len(names) == 0 {
		t.Skip("no key corpus available")
	}

	keys := slices.Clone(testkeys.Load(names[0]))
	slices.Sort(keys)
	keys = slices.Compact(keys)
	if len(keys) > 5000 {
		keys = keys[:5000]
	}

	root := Build(keys)
	assert.Equal(t, keys, Collect(root))
	assert.Equal(t, bits.Len(uint(len(keys))), Height(root))

	for i := 0; i < len(keys); i += 97 {
		path, found := SearchPath(root, keys[i])
		require.True(t, found, keys[i])
		assert.Equal(t, keys[i], path[len(path)-1])
	}
}

// sequence returns n sorted, unique flight codes.
func sequence(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("GA%05d", i*7)
	}
	return out
}
