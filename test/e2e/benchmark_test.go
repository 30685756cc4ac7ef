package e2e_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/nestrep/internal/generator"
	"github.com/mcncl/nestrep/internal/models"
	"github.com/mcncl/nestrep/internal/parser"
)

// buildNested creates a dictionary tree of the given depth and width
func buildNested(depth, width int) *models.NestableDictionary[string] {
	d := models.NewNestableDictionary[string](width + 2)
	_ = d.AddKeyed("leaf_value", models.NewScalar("data with, reserved | chars"))
	_ = d.AddKeyed("tags", models.NewArray("a", "b", "null"))
	if depth <= 0 {
		return d
	}
	for i := 0; i < width; i++ {
		child, _ := models.NewCollection[string](buildNested(depth-1, width))
		_ = d.AddKeyed(fmt.Sprintf("nested_%d_%d", depth, i), child)
	}
	return d
}

// buildWide creates a list with many scalar and array entries
func buildWide(n int) *models.NestableList[string] {
	l := models.NewNestableList[string](n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			_ = l.Add(models.NewScalar(fmt.Sprintf("value_%d", i)))
		} else {
			_ = l.Add(models.NewArray(fmt.Sprintf("%d", i), ""))
		}
	}
	return l
}

func benchmarkEncode(b *testing.B, c models.Collection[string]) {
	g := generator.NewGenerator[string](models.StringCodec{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.EncodeCollection(c); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecode(b *testing.B, c models.Collection[string]) {
	s, err := generator.NewGenerator[string](models.StringCodec{}).EncodeCollection(c)
	require.NoError(b, err)
	p := parser.NewParser[string](models.StringCodec{}, nil)
	b.SetBytes(int64(len(s)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.DecodeNew(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeDeepNesting(b *testing.B) { benchmarkEncode(b, buildNested(5, 3)) }
func BenchmarkDecodeDeepNesting(b *testing.B) { benchmarkDecode(b, buildNested(5, 3)) }
func BenchmarkEncodeWide(b *testing.B)        { benchmarkEncode(b, buildWide(5000)) }
func BenchmarkDecodeWide(b *testing.B)        { benchmarkDecode(b, buildWide(5000)) }
