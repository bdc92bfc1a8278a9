package mapped

import (
	"strings"
	"testing"
)

func benchmarkDoc() string {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("line of perfectly ordinary document text\n")
	}
	return sb.String()
}

func benchmarkText(doc string) Text {
	pieces := make([]Piece, 0, 128)
	step := len(doc) / 64
	for i := 0; i < 64; i++ {
		start := i * step
		pieces = append(pieces, Range(start, start+step/2))
		pieces = append(pieces, Lit("<gap>"))
	}
	return New(doc, pieces...)
}

func BenchmarkMap(b *testing.B) {
	text := benchmarkText(benchmarkDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		text.Map(i % text.Len())
	}
}

func BenchmarkMapClosest(b *testing.B) {
	text := benchmarkText(benchmarkDoc())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		text.MapClosest(i % text.Len())
	}
}

func BenchmarkMapDeepChain(b *testing.B) {
	text := Identity(benchmarkDoc())
	for d := 0; d < 16; d++ {
		text = Derive(text, Range(1, text.Len()-1))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		text.Map(i % text.Len())
	}
}

func BenchmarkConcatMap(b *testing.B) {
	doc := benchmarkDoc()
	base := Identity(doc)
	parts := make([]Text, 0, 64)
	step := len(doc) / 64
	for i := 0; i < 64; i++ {
		parts = append(parts, base.Slice(i*step, (i+1)*step))
	}
	text := Concat(parts...)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		text.Map(i % text.Len())
	}
}

func BenchmarkLineMapperPosition(b *testing.B) {
	doc := benchmarkDoc()
	text := Identity(doc).Slice(len(doc)/4, len(doc)/2)
	lm := NewLineMapper(text)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lm.Position(i % text.Len())
	}
}
