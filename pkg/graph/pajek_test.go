package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertArclist(t *testing.T) {
	in := "*Vertices 4\n*Arcs\n1 2\n3 1\n4 2\n"
	var out bytes.Buffer

	res, err := ConvertArclist(strings.NewReader(in), &out)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Vertices)
	assert.Equal(t, 3, res.Arcs)
	assert.Equal(t, 0, res.OutOfRange)
	assert.Equal(t, "*Vertices 4\n1\n2\n3\n4\n*Arcs\n1 2\n3 1\n4 2\n", out.String())
}

func TestConvertArclistCaseInsensitiveHeaders(t *testing.T) {
	in := "*vertices 2\n*ARCS\n1 2\n"
	var out bytes.Buffer

	res, err := ConvertArclist(strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Vertices)
	assert.Equal(t, "*Vertices 2\n1\n2\n*Arcs\n1 2\n", out.String())
}

func TestConvertArclistDropsBlankLines(t *testing.T) {
	in := "*Vertices 2\n*Arcs\n1 2\n\n2 1\n\n"
	var out bytes.Buffer

	res, err := ConvertArclist(strings.NewReader(in), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Arcs)
	assert.Equal(t, "*Vertices 2\n1\n2\n*Arcs\n1 2\n2 1\n", out.String())
}

func TestConvertArclistErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{name: "empty input", in: ""},
		{name: "missing vertices header", in: "*Arcs\n1 2\n"},
		{name: "bad vertex count", in: "*Vertices x\n*Arcs\n"},
		{name: "negative vertex count", in: "*Vertices -1\n*Arcs\n"},
		{name: "missing arcs header", in: "*Vertices 2\n"},
		{name: "wrong second header", in: "*Vertices 2\n*Edges\n1 2\n"},
		{name: "malformed arc line", in: "*Vertices 2\n*Arcs\n1 2 3\n"},
		{name: "non-numeric arc", in: "*Vertices 2\n*Arcs\n1 b\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := ConvertArclist(strings.NewReader(tc.in), &out)
			assert.Error(t, err)
			// nothing may reach the output on a failed conversion
			assert.Zero(t, out.Len())
		})
	}
}

func TestConvertArclistOutOfRange(t *testing.T) {
	in := "*Vertices 3\n*Arcs\n1 2\n0 3\n2 9\n3 1\n"
	var out bytes.Buffer

	res, err := ConvertArclist(strings.NewReader(in), &out)
	require.NoError(t, err)

	// out-of-range endpoints are counted but the lines still pass through
	assert.Equal(t, 2, res.OutOfRange)
	assert.Equal(t, 4, res.Arcs)
	assert.Contains(t, out.String(), "0 3\n")
	assert.Contains(t, out.String(), "2 9\n")
}

func TestReadPajekCompact(t *testing.T) {
	in := "*Vertices 3\n*Arcs\n1 2\n3 1\n"
	g, err := ReadPajek(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.ArcCount())
	assert.True(t, g.HasArc(1, 2))
	assert.True(t, g.HasArc(3, 1))
}

func TestReadPajekExplicitVertices(t *testing.T) {
	in := "*Vertices 3\n1\n2\n3\n*Arcs\n1 2\n3 1\n"
	g, err := ReadPajek(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, []Arc{{1, 2}, {3, 1}}, g.Arcs())
}

func TestReadPajekVertexLabels(t *testing.T) {
	in := "*Vertices 2\n1 \"alpha\"\n2 \"beta\"\n*Arcs\n2 1\n"
	g, err := ReadPajek(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Arc{{2, 1}}, g.Arcs())
}

func TestReadPajekBothLayoutsAgree(t *testing.T) {
	compact := "*Vertices 4\n*Arcs\n1 2\n2 3\n4 1\n"
	explicit := "*Vertices 4\n1\n2\n3\n4\n*Arcs\n1 2\n2 3\n4 1\n"

	g1, err := ReadPajek(strings.NewReader(compact))
	require.NoError(t, err)
	g2, err := ReadPajek(strings.NewReader(explicit))
	require.NoError(t, err)

	assert.Equal(t, g1.NodeCount(), g2.NodeCount())
	assert.Equal(t, g1.Arcs(), g2.Arcs())
}

func TestReadPajekErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{name: "empty input", in: ""},
		{name: "no vertices header", in: "*Arcs\n1 2\n"},
		{name: "no arcs section", in: "*Vertices 2\n1\n2\n"},
		{name: "unexpected section", in: "*Vertices 2\n*Edges\n1 2\n"},
		{name: "vertex out of range", in: "*Vertices 2\n1\n3\n*Arcs\n"},
		{name: "bad vertex line", in: "*Vertices 2\nalpha\n*Arcs\n"},
		{name: "arc endpoint out of range", in: "*Vertices 2\n*Arcs\n1 3\n"},
		{name: "arc endpoint zero", in: "*Vertices 2\n*Arcs\n0 1\n"},
		{name: "self-arc", in: "*Vertices 2\n*Arcs\n2 2\n"},
		{name: "malformed arc line", in: "*Vertices 2\n*Arcs\n1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadPajek(strings.NewReader(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestWritePajek(t *testing.T) {
	g, err := NewDirected(3)
	require.NoError(t, err)
	require.NoError(t, g.AddArc(3, 1))
	require.NoError(t, g.AddArc(1, 2))
	require.NoError(t, g.AddArc(1, 3))

	var out bytes.Buffer
	require.NoError(t, g.WritePajek(&out))
	assert.Equal(t, "*Vertices 3\n1\n2\n3\n*Arcs\n1 2\n1 3\n3 1\n", out.String())
}

func TestWritePajekRoundTrip(t *testing.T) {
	g, err := NewDirected(5)
	require.NoError(t, err)
	for _, a := range []Arc{{1, 5}, {5, 2}, {2, 1}, {4, 3}} {
		require.NoError(t, g.AddArc(a.From, a.To))
	}

	var out bytes.Buffer
	require.NoError(t, g.WritePajek(&out))

	back, err := ReadPajek(&out)
	require.NoError(t, err)
	assert.Equal(t, g.NodeCount(), back.NodeCount())
	assert.Equal(t, g.Arcs(), back.Arcs())
}

func TestConvertThenReadPajek(t *testing.T) {
	in := "*Vertices 3\n*Arcs\n1 2\n2 3\n"
	var converted bytes.Buffer
	_, err := ConvertArclist(strings.NewReader(in), &converted)
	require.NoError(t, err)

	g, err := ReadPajek(&converted)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, []Arc{{1, 2}, {2, 3}}, g.Arcs())
}
