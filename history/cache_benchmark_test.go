package history

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// BenchmarkCacheKeyGeneration measures file name derivation for typical keys
func BenchmarkCacheKeyGeneration(b *testing.B) {
	keys := make([]string, 1000)
	charset := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/_-."
	for i := range keys {
		path := make([]byte, rand.Intn(100)+20)
		for j := range path {
			path[j] = charset[rand.Intn(len(charset))]
		}
		keys[i] = "9fceb02d0ae598e95dc970b74767f19372d61af8:" + string(path)
	}

	fc := &FileCache{cacheDir: b.TempDir()}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fc.generateCacheKey(keys[i%len(keys)])
	}
}

// BenchmarkCacheManager_EarliestYear compares cache writes and reads
func BenchmarkCacheManager_EarliestYear(b *testing.B) {
	cacheManager, err := NewCacheManager(b.TempDir())
	require.NoError(b, err)

	b.Run("SetEarliestYear", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := cacheManager.SetEarliestYear(fmt.Sprintf("head:file_%d.go", i%100), 2000+i%25); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("GetEarliestYear", func(b *testing.B) {
		require.NoError(b, cacheManager.SetEarliestYear("head:main.go", 2019))

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if year, found := cacheManager.GetEarliestYear("head:main.go"); !found || year != 2019 {
				b.Fatal("cache miss or wrong year")
			}
		}
	})
}
