package scanner

import (
	"testing"
)

func benchContent() string {
	return largeFixture(1000, map[int]string{
		250: "eval(payload)",
		750: "rm -rf /tmp/scratch",
	})
}

func BenchmarkScanBaseline(b *testing.B) {
	s := New()
	content := benchContent()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Scan(content)
	}
}

func BenchmarkScanOptimizedFull(b *testing.B) {
	s := New()
	content := benchContent()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ScanOptimized(content, FullOptions())
	}
}

func BenchmarkScanOptimizedQuick(b *testing.B) {
	s := New()
	content := benchContent()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ScanOptimized(content, QuickOptions())
	}
}
